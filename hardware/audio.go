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

package hardware

import (
	"math"

	"github.com/zxcore/zxcore/hardware/television"
)

// the number of t-states between audio samples
const audioSampleTStates = 79

// AudioBufferFrames is the number of stereo frames in every buffer sent to
// the television. One fiftieth of a second at television.SampleFreq.
const AudioBufferFrames = television.SampleFreq / 50

type audio struct {
	// the beeper is sampled after every step and averaged over the period of
	// an audio sample
	beeperSum   int
	beeperCount int

	// t-states since the last audio sample
	sinceSample int

	// interleaved stereo
	buffer []int16
	n      int
}

func (a *audio) reset() {
	if a.buffer == nil {
		a.buffer = make([]int16, AudioBufferFrames*2)
	}
	a.beeperSum = 0
	a.beeperCount = 0
	a.sinceSample = 0
	a.n = 0
}

func clamp16(v int) int16 {
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

func (zx *Spectrum) updateAudio(delta int) error {
	devices := zx.Peripherals.AudioDevices()
	for _, d := range devices {
		d.Update(delta)
	}

	a := &zx.audio
	a.beeperSum += int(zx.ULA.Sound())
	a.beeperCount++
	a.sinceSample += delta

	if a.sinceSample < audioSampleTStates {
		return nil
	}

	beeper := a.beeperSum / a.beeperCount
	a.beeperSum = 0
	a.beeperCount = 0

	for a.sinceSample >= audioSampleTStates {
		l := beeper
		r := beeper
		for _, d := range devices {
			dl, dr := d.Sample()
			l += int(dl)
			r += int(dr)
		}

		a.buffer[a.n] = clamp16(l)
		a.buffer[a.n+1] = clamp16(r)
		a.n += 2

		if a.n >= len(a.buffer) {
			a.n = 0
			if zx.TV != nil {
				err := zx.TV.SetAudio(a.buffer)
				if err != nil {
					return err
				}
			}
		}

		a.sinceSample -= audioSampleTStates
	}

	return nil
}
