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

import (
	"github.com/zxcore/zxcore/notifications"
)

// flip the level of the signal without it counting as an edge.
func (d *Deck) flip() {
	d.level = 1 - d.level
	d.flipped = true
	if d.level == 0 {
		d.sound = 0
	} else {
		d.sound = soundHigh
	}
}

func (d *Deck) edgeFlip() {
	d.flip()
	d.edges++
}

// schedule the edge, accounting for time that has already elapsed. returns
// false if the edge has already passed, in which case the accumulated time
// is reduced by the length of the edge.
func (d *Deck) schedule() bool {
	diff := d.edge - d.clock
	if diff > 0 {
		d.edge = diff
		d.clock = 0
		return true
	}
	d.clock = -diff
	return false
}

func (d *Deck) nextBlock() {
	for {
		d.cursor++
		if d.cursor >= len(d.blocks) {
			d.cursor--
			d.stop()
			return
		}

		switch blk := d.blocks[d.cursor].(type) {
		case PulseTrain:
			d.state = PlayingPulseTrain
			d.pulseIdx = -1
			d.repeat = 0
			if d.level != 0 {
				d.flip()
			}
			if !d.nextPulse(blk) {
				continue
			}

		case DataSequence:
			d.state = PlayingData
			d.bitIdx = -1
			d.dataIdx = -1
			d.shifter = 0
			d.bitPulse = 0
			if d.level != blk.InitialLevel {
				d.flip()
			}
			if !d.nextDataBit(blk) {
				continue
			}

		case Pause:
			d.state = Pausing
			if d.level != blk.InitialLevel {
				d.flip()
			}
			d.edge = blk.Duration
			if !d.schedule() {
				continue
			}

		case Stop:
			if blk.Only48K && !d.machine48K {
				continue
			}
			d.stop()
		}

		break
	}

	d.env.Notify(notifications.NotifyTapeNextBlock)
}

// returns false if there are no more pulses in the pulse train
func (d *Deck) nextPulse(blk PulseTrain) bool {
	for d.pulseIdx < len(blk.Pulses)-1 {
		d.pulseIdx++
		p := blk.Pulses[d.pulseIdx]
		d.repeat = p.Count

		// change of level
		if p.Duration == 0 && d.repeat > 1 {
			if d.repeat&0x01 == 0x01 {
				d.flip()
			}
			continue
		}

		d.edge = p.Duration
		if d.edge > 0 && d.schedule() {
			return true
		}

		d.edgeFlip()
		d.repeat--
		if d.repeat <= 0 {
			continue
		}
		return true
	}

	return false
}

func (blk DataSequence) sequence(bit int) []int {
	if bit == 0 {
		return blk.Zero
	}
	return blk.One
}

// plays the pulses of the current bit from the current pulse. returns true if
// an edge has been scheduled
func (d *Deck) bitPulses(seq []int) bool {
	for d.bitPulse < len(seq) {
		d.edge = seq[d.bitPulse]
		if d.edge > 0 && d.schedule() {
			return true
		}
		d.edgeFlip()
		d.bitPulse++
	}
	return false
}

// returns false if there are no more bits (or tail) in the data sequence
func (d *Deck) nextDataBit(blk DataSequence) bool {
	for d.bitIdx < blk.Bits-1 {
		d.bitIdx++
		if d.shifter == 0 {
			d.dataIdx++
			if d.dataIdx >= len(blk.Data) {
				// data is shorter than the number of bits says
				return false
			}
			d.shifter = 0x80
			d.dataByte = blk.Data[d.dataIdx]
		}

		if d.dataByte&d.shifter == 0 {
			d.bit = 0
		} else {
			d.bit = 1
		}
		d.shifter >>= 1
		d.bitPulse = 0

		if d.bitPulses(blk.sequence(d.bit)) {
			return true
		}
	}

	d.bit = -1

	if blk.Tail > 0 {
		d.edge = blk.Tail
		if d.schedule() {
			return true
		}
		d.edgeFlip()
		return false
	}

	// make sure the loader sees a final edge if this is the end of the tape
	if d.cursor == len(d.blocks)-1 {
		d.edge = synthesisedEdge
		return true
	}

	return false
}

func (d *Deck) onEdge() {
	d.edgeFlip()

	if d.cursor < 0 || d.cursor >= len(d.blocks) {
		d.stop()
		return
	}

	switch blk := d.blocks[d.cursor].(type) {
	case PulseTrain:
		d.repeat--
		if d.repeat > 0 {
			d.edge = blk.Pulses[d.pulseIdx].Duration
			if diff := d.edge - d.clock; diff > 0 {
				d.edge = diff
				d.clock = 0
			}
			return
		}
		if !d.nextPulse(blk) {
			d.nextBlock()
		}

	case DataSequence:
		if d.bit < 0 {
			d.nextBlock()
			return
		}
		d.bitPulse++
		if d.bitPulses(blk.sequence(d.bit)) {
			return
		}
		if !d.nextDataBit(blk) {
			d.nextBlock()
		}

	default:
		d.nextBlock()
	}
}
