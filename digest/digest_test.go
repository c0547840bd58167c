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

package digest_test

import (
	"strings"
	"testing"

	"github.com/zxcore/zxcore/digest"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/test"
)

var zeroHash = strings.Repeat("0", 40)

func TestVideo(t *testing.T) {
	tv := television.NewTelevision(specification.Spec48K)
	tv.SetFPSCap(false)

	dig, err := digest.NewVideo(tv)
	test.DemandSuccess(t, err)
	test.DemandImplements[digest.Digest](t, dig)
	test.ExpectEquality(t, dig.Hash(), zeroHash)

	spec := specification.Spec48K
	screen := make([]uint32, spec.ScanlineWidth()*spec.ScanlinesTotal())

	test.DemandSuccess(t, tv.NewFrame(1, screen))
	first := dig.Hash()
	test.ExpectInequality(t, first, zeroHash)
	test.ExpectEquality(t, dig.Frame(), 1)

	// the same frame a second time gives a different hash because the hashes
	// are chained
	test.DemandSuccess(t, tv.NewFrame(2, screen))
	test.ExpectInequality(t, dig.Hash(), first)

	// but the chain is repeatable
	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zeroHash)
	test.DemandSuccess(t, tv.NewFrame(1, screen))
	test.ExpectEquality(t, dig.Hash(), first)

	// the alpha channel is not included in the hash
	dig.ResetDigest()
	for i := range screen {
		screen[i] = 0xff000000
	}
	test.DemandSuccess(t, tv.NewFrame(1, screen))
	test.ExpectEquality(t, dig.Hash(), first)

	// a single changed pixel
	dig.ResetDigest()
	screen[100] = 0xff0000d7
	test.DemandSuccess(t, tv.NewFrame(1, screen))
	test.ExpectInequality(t, dig.Hash(), first)
}

func TestAudio(t *testing.T) {
	tv := television.NewTelevision(specification.Spec48K)

	a := digest.NewAudio(tv)
	b := digest.NewAudio(tv)
	test.DemandImplements[digest.Digest](t, a)

	data := make([]int16, hardware.AudioBufferFrames*2)
	for i := range data {
		data[i] = int16(i * 7)
	}

	// both digests receive the same data through the television
	for range 5 {
		test.DemandSuccess(t, tv.SetAudio(data))
	}
	test.ExpectSuccess(t, tv.End())

	test.ExpectInequality(t, a.Hash(), zeroHash)
	test.ExpectEquality(t, a.Hash(), b.Hash())

	// a different stream
	data[0]++
	b.ResetDigest()
	for range 5 {
		test.DemandSuccess(t, b.SetAudio(data))
	}
	test.DemandSuccess(t, b.EndMixing())
	test.ExpectInequality(t, a.Hash(), b.Hash())
}

func run(t *testing.T, frames int) (string, string) {
	t.Helper()

	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), nil)
	test.DemandSuccess(t, err)
	env.Normalise()

	tv := television.NewTelevision(specification.Spec128K)
	tv.SetFPSCap(false)

	vid, err := digest.NewVideo(tv)
	test.DemandSuccess(t, err)
	aud := digest.NewAudio(tv)

	zx, err := hardware.NewSpectrum(env, tv, cpu.NewIdle(), specification.Spec128K)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zx.RunForFrameCount(frames, nil))
	test.DemandSuccess(t, tv.End())

	return vid.Hash(), aud.Hash()
}

func TestRegression(t *testing.T) {
	v1, a1 := run(t, 20)
	v2, a2 := run(t, 20)
	test.ExpectEquality(t, v1, v2)
	test.ExpectEquality(t, a1, a2)

	v3, _ := run(t, 21)
	test.ExpectInequality(t, v1, v3)
}
