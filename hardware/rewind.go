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
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/snapshot"
)

// Sentinal errors.
const (
	RewindEmpty = "rewind: no states recorded"
)

// RewindState is a snapshot of the machine at the end of a frame.
type RewindState struct {
	Frame int
	State *snapshot.State
}

func (s RewindState) String() string {
	return fmt.Sprintf("%d", s.Frame)
}

// Rewind keeps a history of machine states. When enabled, a snapshot is
// taken at the end of every frame. The oldest states are forgotten once the
// history is full.
type Rewind struct {
	zx *Spectrum

	enabled bool

	steps    []RewindState
	position int
}

// the maximum number of steps to store before the earliest steps are
// forgotten.
const maxRewindSteps = 100

func newRewind(zx *Spectrum) *Rewind {
	return &Rewind{
		zx:    zx,
		steps: make([]RewindState, 0, maxRewindSteps),
	}
}

// SetEnabled turns the recording of states on or off. The history is reset
// in either case.
func (r *Rewind) SetEnabled(enabled bool) {
	r.enabled = enabled
	r.Reset()
}

// Enabled returns true if states are being recorded.
func (r *Rewind) Enabled() bool {
	return r.enabled
}

// Reset rewind system to zero, taking a snapshot of the current state if
// recording is enabled.
func (r *Rewind) Reset() {
	r.steps = r.steps[:0]
	r.position = 0
	if r.enabled {
		r.append()
	}
}

func (r *Rewind) endFrame() {
	if r.enabled {
		r.append()
	}
}

func (r *Rewind) append() {
	s := RewindState{
		Frame: r.zx.frame,
		State: r.zx.Snapshot(),
	}

	// a new state after a rewind forgets the states after the current
	// position
	if r.position < len(r.steps) {
		r.steps = r.steps[:r.position]
	}
	r.steps = append(r.steps, s)

	// maintain maximum length
	if len(r.steps) > maxRewindSteps {
		r.steps = r.steps[1:]
	}

	r.position = len(r.steps)
}

// State returns the number of states and the current position.
func (r *Rewind) State() (int, int) {
	return len(r.steps), r.position - 1
}

// Frames returns the first and last frames in the history.
func (r *Rewind) Frames() (int, int) {
	if len(r.steps) == 0 {
		return 0, 0
	}
	return r.steps[0].Frame, r.steps[len(r.steps)-1].Frame
}

// SetPosition moves the machine to the state at the position in the history.
func (r *Rewind) SetPosition(pos int) error {
	if len(r.steps) == 0 {
		return curated.Errorf(RewindEmpty)
	}

	pos = min(max(pos, 0), len(r.steps)-1)
	s := r.steps[pos]

	// plumb in a copy of the stored state. we don't want the machine to
	// change what we have stored in our history
	err := r.zx.plumb(s.State.Copy())
	if err != nil {
		return err
	}
	r.zx.frame = s.Frame

	r.position = pos + 1
	return nil
}

// GotoCurrent sets the position to the last in the history.
func (r *Rewind) GotoCurrent() error {
	return r.SetPosition(len(r.steps) - 1)
}

// GotoFrame searches the history for the frame number. Goes to nearest frame
// if frame number is not present. Returns true if exact frame number was found
// and false if not.
func (r *Rewind) GotoFrame(frame int) (bool, error) {
	// binary search for frame number
	b := 0
	t := len(r.steps) - 1
	for b <= t {
		m := (t + b) / 2

		if r.steps[m].Frame == frame {
			return true, r.SetPosition(m)
		}

		if r.steps[m].Frame < frame {
			b = m + 1
		} else {
			t = m - 1
		}
	}

	return false, r.SetPosition(b)
}
