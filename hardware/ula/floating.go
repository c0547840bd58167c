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

import "github.com/zxcore/zxcore/hardware/specification"

// FloatingBus returns the value on the data bus when no device responds to a
// port read. During the display the ULA is fetching bitmap and attribute
// bytes and the last of those is seen on the bus. The bool is false if the
// bus is idle, in which case the caller should use 0xff.
//
// Only the Sinclair machines have a floating bus of this kind.
func (ula *ULA) FloatingBus(clock int) (uint8, bool) {
	switch ula.spec.Model {
	case specification.Model16K, specification.Model48K, specification.Model128K, specification.ModelPlus2:
	default:
		return 0xff, false
	}

	if ula.display == nil {
		return 0xff, false
	}

	t := clock - (ula.spec.DisplayStart + ula.late)
	if t < 0 {
		return 0xff, false
	}

	y := t / ula.spec.TStatesPerLine
	x := t % ula.spec.TStatesPerLine
	if y >= specification.ScreenHeight || x >= specification.LineDisplayTStates {
		return 0xff, false
	}

	col := (x >> 3) << 1
	data := ula.display.DisplayData()

	switch x & 0x07 {
	case 2:
		return data[bitmapOffset(y, col)], true
	case 3:
		return data[ula.attr[bitmapOffset(y, col)]], true
	case 4:
		return data[bitmapOffset(y, col+1)], true
	case 5:
		return data[ula.attr[bitmapOffset(y, col+1)]], true
	}

	return 0xff, false
}
