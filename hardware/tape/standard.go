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

// timings in t-states of the standard ROM encoding
const (
	PilotPulse      = 2168
	PilotHeader     = 8063
	PilotData       = 3223
	SyncFirstPulse  = 667
	SyncSecondPulse = 735
	ZeroPulse       = 855
	OnePulse        = 1710
	TailPulse       = 945
)

// number of t-states in a millisecond
const msTStates = 3500

// StandardBlocks builds the blocks for a payload in the format used by the
// ROM saving routine. The first byte of the data is the flag byte and the
// last byte is the checksum. The pause is in milliseconds. A pause of zero
// means no pause block.
func StandardBlocks(data []uint8, pause int) []Block {
	pilot := PilotData
	if len(data) > 0 && data[0] < 0x80 {
		pilot = PilotHeader
	}

	blocks := []Block{
		PulseTrain{
			Pulses: []Pulse{
				{Duration: PilotPulse, Count: pilot},
				{Duration: SyncFirstPulse, Count: 1},
				{Duration: SyncSecondPulse, Count: 1},
			},
		},
		DataSequence{
			// the pilot and sync leave the signal high
			InitialLevel: (pilot + 2) & 0x01,
			Bits:         len(data) * 8,
			Tail:         TailPulse,
			Zero:         []int{ZeroPulse, ZeroPulse},
			One:          []int{OnePulse, OnePulse},
			Data:         data,
			Standard:     true,
		},
	}

	if pause > 0 {
		blocks = append(blocks, Pause{Duration: pause * msTStates})
	}

	return blocks
}

// Checksum returns the XOR of all bytes. A standard block with a correct
// checksum byte will return zero.
func Checksum(data []uint8) uint8 {
	var c uint8
	for _, d := range data {
		c ^= d
	}
	return c
}
