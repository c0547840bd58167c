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

package ula

const (
	borderBits = 0x07
	micBit     = 0x08
	earBit     = 0x10
	tapeBit    = 0x40
)

// sound levels of the beeper
const (
	beeperLow  = 0
	beeperHigh = 0x7fff / 2
	micBoost   = beeperHigh / 5
)

// Responds returns true if the ULA responds to the port. The ULA responds to
// every even port.
func Responds(port uint16) bool {
	return port&0x01 == 0x00
}

// In returns the value read from the ULA port. The high byte of the port
// selects the keyboard half-rows to read. Bit 6 is the EAR input.
func (ula *ULA) In(port uint16) uint8 {
	result := uint8(0xff)

	for row := range 8 {
		if port&(0x100<<row) == 0 {
			result &= ula.keyLine[row]
		}
	}

	result = (result & 0x1f) | 0xa0

	if ula.ear != nil && ula.ear.EarActive() {
		if ula.ear.EarHigh() {
			result |= tapeBit
		} else {
			result &^= tapeBit
		}
	} else {
		mask := uint8(earBit)
		if ula.issue2 {
			mask |= micBit
		}
		if ula.lastOut&mask == 0 {
			result &^= tapeBit
		} else {
			result |= tapeBit
		}
	}

	return result
}

// Out writes a value to the ULA port. A change in border colour brings the
// screen up to date with the clock before the change.
func (ula *ULA) Out(value uint8, clock int) {
	ula.lastOut = value

	border := value & borderBits
	if border != ula.border {
		ula.Flush(clock)
		ula.border = border
	}

	if ula.ear != nil && ula.ear.EarActive() {
		return
	}

	beep := value & earBit
	if beep != ula.beepLast {
		if beep == 0 {
			ula.beeper = beeperLow
		} else {
			ula.beeper = beeperHigh
		}
		if value&micBit != 0 {
			ula.beeper += micBoost
		}
		ula.beepLast = beep
	}
}

// LastOut is the last value written to the ULA port.
func (ula *ULA) LastOut() uint8 {
	return ula.lastOut
}

// Sound returns the current level of the beeper. When the tape is playing the
// tape signal is heard instead.
func (ula *ULA) Sound() int16 {
	if ula.ear != nil && ula.ear.EarActive() {
		return ula.ear.EarSound()
	}
	return ula.beeper
}
