// This file is part of ZXCore.
//
// ZXCore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ZXCore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ZXCore.  If not, see <https://www.gnu.org/licenses/>.

package television_test

import (
	"errors"
	"testing"

	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/test"
)

type renderer struct {
	width, height int
	frames        []int
	pixel         uint32
	ended         bool
}

func (r *renderer) Resize(_ specification.Spec, width int, height int) error {
	r.width = width
	r.height = height
	return nil
}

func (r *renderer) NewFrame(frameNum int, screen []uint32) error {
	r.frames = append(r.frames, frameNum)
	r.pixel = screen[0]
	return nil
}

func (r *renderer) EndRendering() error {
	r.ended = true
	return nil
}

type mixer struct {
	samples int
	err     error
}

func (m *mixer) SetAudio(audioData []int16) error {
	m.samples += len(audioData)
	return nil
}

func (m *mixer) EndMixing() error {
	return m.err
}

func TestTelevision(t *testing.T) {
	tv := television.NewTelevision(specification.Spec48K)
	tv.SetFPSCap(false)

	r := &renderer{}
	test.DemandSuccess(t, tv.AddPixelRenderer(r))
	test.ExpectEquality(t, r.width, specification.Spec48K.ScanlineWidth())
	test.ExpectEquality(t, r.height, specification.Spec48K.ScanlinesTotal())

	// adding twice has no effect
	test.DemandSuccess(t, tv.AddPixelRenderer(r))

	screen := make([]uint32, r.width*r.height)
	screen[0] = 0xff00ff
	test.ExpectSuccess(t, tv.NewFrame(1, screen))
	test.ExpectSuccess(t, tv.NewFrame(2, screen))
	test.ExpectEquality(t, len(r.frames), 2)
	test.ExpectEquality(t, r.frames[1], 2)
	test.ExpectEquality(t, r.pixel, uint32(0xff00ff))
	test.ExpectEquality(t, tv.GetFrameNum(), 2)

	test.ExpectSuccess(t, tv.SetSpec(specification.SpecPentagon))
	test.ExpectEquality(t, r.width, specification.SpecPentagon.ScanlineWidth())
	test.ExpectEquality(t, tv.GetSpec().Model, specification.ModelPentagon)

	m := &mixer{}
	tv.AddAudioMixer(m)
	test.ExpectSuccess(t, tv.SetAudio(make([]int16, 1764)))
	test.ExpectEquality(t, m.samples, 1764)

	m.err = errors.New("test error")
	test.ExpectFailure(t, tv.End())
	test.ExpectSuccess(t, r.ended)
}

func TestFrameTrigger(t *testing.T) {
	tv := television.NewTelevision(specification.Spec128K)
	tv.SetFPSCap(false)

	r := &renderer{}
	tv.AddFrameTrigger(r)

	// frame triggers are not resized
	test.ExpectEquality(t, r.width, 0)

	test.ExpectSuccess(t, tv.NewFrame(10, []uint32{0x123456}))
	test.ExpectEquality(t, len(r.frames), 1)
	test.ExpectEquality(t, r.pixel, uint32(0x123456))
	test.ExpectSuccess(t, tv.End())
}
