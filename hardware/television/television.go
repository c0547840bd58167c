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

package television

import (
	"fmt"

	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television/limiter"
)

// SampleFreq is the frequency of the audio sent to the AudioMixers.
const SampleFreq = 44100

// PixelRenderer implementations display, or otherwise work with, the visual
// output of the machine. For example digest.Video.
type PixelRenderer interface {
	FrameTrigger

	// Resize is called when the renderer is added to the television and when
	// the specification changes. The width and height are the size of the
	// screen buffers that will be sent to NewFrame().
	Resize(spec specification.Spec, width int, height int) error

	// some renderers may need to conclude and/or dispose of resources gently.
	// for simplicity, the PixelRenderer should be considered unusable after
	// EndRendering() has been called
	EndRendering() error
}

// FrameTrigger implementations listen for NewFrame events. FrameTrigger is a
// subset of PixelRenderer.
//
// The screen argument is the ScreenBuffer of the ULA. It is only valid for the
// duration of the call and must be copied if it is needed afterwards.
type FrameTrigger interface {
	NewFrame(frameNum int, screen []uint32) error
}

// AudioMixer implementations work with sound; most probably playing it. An
// example of an AudioMixer that does not play sound but otherwise works with
// it is the digest.Audio type.
type AudioMixer interface {
	// audio data is interleaved stereo at SampleFreq. the slice is only valid
	// for the duration of the call
	SetAudio(audioData []int16) error

	// some mixers may need to conclude and/or dispose of resources gently.
	// for simplicity, the AudioMixer should be considered unusable after
	// EndMixing() has been called
	EndMixing() error
}

// Television is the fan-out point for the output of the machine. The
// television does not present anything itself. PixelRenderers, FrameTriggers
// and AudioMixers are added to perform those tasks.
type Television struct {
	spec specification.Spec

	renderers     []PixelRenderer
	frameTriggers []FrameTrigger
	mixers        []AudioMixer

	lmtr *limiter.Limiter

	// the number of the most recent frame
	frameNum int
}

// NewTelevision is the preferred method of initialisation for the Television
// type.
func NewTelevision(spec specification.Spec) *Television {
	tv := &Television{
		lmtr: limiter.NewLimiter(),
	}
	tv.SetSpec(spec)
	return tv
}

func (tv *Television) String() string {
	return fmt.Sprintf("FR=%04d", tv.frameNum)
}

// SetSpec changes the specification. Every PixelRenderer is resized.
func (tv *Television) SetSpec(spec specification.Spec) error {
	tv.spec = spec
	tv.lmtr.SetRefreshRate(float32(spec.FramesPerSecond()))

	for _, r := range tv.renderers {
		err := r.Resize(spec, spec.ScanlineWidth(), spec.ScanlinesTotal())
		if err != nil {
			return err
		}
	}
	return nil
}

// GetSpec returns the current specification.
func (tv *Television) GetSpec() specification.Spec {
	return tv.spec
}

// GetFrameNum returns the number of the most recent frame.
func (tv *Television) GetFrameNum() int {
	return tv.frameNum
}

// AddPixelRenderer registers an (additional) implementation of PixelRenderer.
func (tv *Television) AddPixelRenderer(r PixelRenderer) error {
	for _, o := range tv.renderers {
		if o == r {
			return nil
		}
	}
	tv.renderers = append(tv.renderers, r)
	return r.Resize(tv.spec, tv.spec.ScanlineWidth(), tv.spec.ScanlinesTotal())
}

// AddFrameTrigger registers an (additional) implementation of FrameTrigger.
func (tv *Television) AddFrameTrigger(f FrameTrigger) {
	for _, o := range tv.frameTriggers {
		if o == f {
			return
		}
	}
	tv.frameTriggers = append(tv.frameTriggers, f)
}

// AddAudioMixer registers an (additional) implementation of AudioMixer.
func (tv *Television) AddAudioMixer(m AudioMixer) {
	for _, o := range tv.mixers {
		if o == m {
			return
		}
	}
	tv.mixers = append(tv.mixers, m)
}

// NewFrame is called by the hardware at the end of every frame. The frame is
// forwarded to every PixelRenderer and FrameTrigger and then the frame
// limiter is applied.
func (tv *Television) NewFrame(frameNum int, screen []uint32) error {
	tv.frameNum = frameNum

	for _, r := range tv.renderers {
		err := r.NewFrame(frameNum, screen)
		if err != nil {
			return err
		}
	}

	for _, f := range tv.frameTriggers {
		err := f.NewFrame(frameNum, screen)
		if err != nil {
			return err
		}
	}

	tv.lmtr.CheckFrame()
	tv.lmtr.MeasureActual()

	return nil
}

// SetAudio forwards a buffer of audio to every AudioMixer.
func (tv *Television) SetAudio(audioData []int16) error {
	for _, m := range tv.mixers {
		err := m.SetAudio(audioData)
		if err != nil {
			return err
		}
	}
	return nil
}

// End the television. EndRendering() and EndMixing() are called on every
// PixelRenderer and AudioMixer. The first error encountered is returned but
// every renderer and mixer is ended regardless.
func (tv *Television) End() error {
	var err error

	for _, r := range tv.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = e
		}
	}

	for _, m := range tv.mixers {
		if e := m.EndMixing(); e != nil && err == nil {
			err = e
		}
	}

	tv.lmtr.Stop()

	return err
}

// SetFPSCap sets whether the emulation should wait for the frame limiter.
func (tv *Television) SetFPSCap(set bool) {
	tv.lmtr.Active = set
}

// SetFPS requests the number frames per second. This overrides the frame rate
// of the specification. A negative value restores the specification's frame
// rate.
func (tv *Television) SetFPS(fps float32) {
	tv.lmtr.SetLimit(fps)
}

// GetReqFPS returns the requested number of frames per second. Compare with
// GetActualFPS() to check for accuracy.
func (tv *Television) GetReqFPS() float32 {
	return tv.lmtr.IdealFPS.Load().(float32)
}

// GetActualFPS returns the measured number of frames per second.
func (tv *Television) GetActualFPS() float32 {
	return tv.lmtr.Measured.Load().(float32)
}
