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

package tape

import "fmt"

// Block is a single block on the tape. The concrete types are PulseTrain,
// DataSequence, Pause and Stop.
type Block interface {
	fmt.Stringer
	isBlock()
}

// Pulse is a run of pulses of the same duration.
type Pulse struct {
	// duration of each pulse in t-states. a duration of zero is not an edge
	// but a change of level. see PulseTrain
	Duration int
	Count    int
}

// PulseTrain is a sequence of pulses. Used for pilot tones and sync pulses.
// The signal is low at the start of the block.
//
// A pulse with a duration of zero and a count of more than one flips the
// signal count times without any time elapsing. In other words, the level is
// flipped if the count is odd.
type PulseTrain struct {
	Pulses []Pulse
}

func (PulseTrain) isBlock() {}

func (blk PulseTrain) String() string {
	n := 0
	for _, p := range blk.Pulses {
		n += p.Count
	}
	return fmt.Sprintf("pulses: %d", n)
}

// DataSequence is a sequence of data bits.
type DataSequence struct {
	// level of the signal at the start of the block
	InitialLevel int

	// number of bits in the block. bits are taken from Data most significant
	// bit first
	Bits int

	// duration of the pulse after the last bit. zero if there is no tail
	Tail int

	// the pulse sequences for zero and one bits
	Zero []int
	One  []int

	Data []uint8

	// the data is in the format expected by the ROM loading routine. the
	// first byte is the flag and the last byte is the checksum
	Standard bool
}

func (DataSequence) isBlock() {}

func (blk DataSequence) String() string {
	if blk.Standard && len(blk.Data) > 0 {
		if blk.Data[0] < 0x80 {
			return fmt.Sprintf("header: %d bytes", len(blk.Data))
		}
		return fmt.Sprintf("data: %d bytes", len(blk.Data))
	}
	return fmt.Sprintf("bits: %d", blk.Bits)
}

// Pause holds the signal at a fixed level.
type Pause struct {
	Duration     int
	InitialLevel int
}

func (Pause) isBlock() {}

func (blk Pause) String() string {
	return fmt.Sprintf("pause: %d", blk.Duration)
}

// Stop stops the tape.
type Stop struct {
	// only stop the tape on 48K machines
	Only48K bool
}

func (Stop) isBlock() {}

func (blk Stop) String() string {
	if blk.Only48K {
		return "stop (48K)"
	}
	return "stop"
}
