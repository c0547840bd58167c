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
	"github.com/zxcore/zxcore/hardware/specification"
)

// bits of port 0x7ffd
const (
	pagingBank    = 0x07
	pagingScreen  = 0x08
	pagingROM     = 0x10
	pagingLockBit = 0x20
)

// bits of port 0x1ffd
const (
	pagingSpecial   = 0x01
	pagingConfig    = 0x06
	pagingROMHigh   = 0x04
	pagingMotor     = 0x08
	pagingConfigPos = 1
)

// the RAM banks of the four slots for each of the special paging
// configurations of the +2A and +3
var specialConfigs = [4][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{4, 5, 6, 3},
	{4, 7, 6, 3},
}

// page decodes writes to the paging ports. Returns true if the write was to a
// paging port, even if paging is locked.
func (zx *Spectrum) page(port uint16, data uint8, clock int) bool {
	switch zx.Spec.Paging {
	case specification.PagingClassic, specification.PagingPentagon:
		if port&0x8002 != 0x0000 {
			return false
		}
		if zx.pagingLocked {
			return true
		}
		zx.port7FFD = data

	case specification.PagingPlus3:
		switch {
		case port&0xc002 == 0x4000:
			if zx.pagingLocked {
				return true
			}
			zx.port7FFD = data
		case port&0xf002 == 0x1000:
			if zx.pagingLocked {
				return true
			}
			zx.port1FFD = data
		default:
			return false
		}

	default:
		return false
	}

	zx.applyPaging(clock)
	return true
}

// applyPaging binds memory according to the paging ports. The screen is
// flushed before the displayed bank changes.
func (zx *Spectrum) applyPaging(clock int) {
	if zx.Spec.Paging == specification.PagingNone {
		return
	}

	if zx.Spec.Paging == specification.PagingPlus3 && zx.port1FFD&pagingSpecial == pagingSpecial {
		cfg := specialConfigs[(zx.port1FFD&pagingConfig)>>pagingConfigPos]
		for slot, bank := range cfg {
			zx.Mem.BindRAM16(slot, bank)
		}
	} else {
		rom := int(zx.port7FFD&pagingROM) >> 4
		if zx.Spec.Paging == specification.PagingPlus3 {
			rom |= int(zx.port1FFD&pagingROMHigh) >> 1
		}
		zx.Mem.BindROM16(0, rom)
		zx.Mem.BindRAM16(1, 5)
		zx.Mem.BindRAM16(2, 2)
		zx.Mem.BindRAM16(3, int(zx.port7FFD&pagingBank))
	}

	display := 5
	if zx.port7FFD&pagingScreen == pagingScreen {
		display = 7
	}
	if display != zx.displayBank {
		zx.ULA.Flush(clock)
		zx.Mem.SetDisplayBank(display)
		zx.displayBank = display
	}

	// the pentagon has no paging lock
	zx.pagingLocked = zx.Spec.Paging != specification.PagingPentagon && zx.port7FFD&pagingLockBit == pagingLockBit
}

// Paging returns the last values written to the paging ports and whether
// paging is locked.
func (zx *Spectrum) Paging() (uint8, uint8, bool) {
	return zx.port7FFD, zx.port1FFD, zx.pagingLocked
}

// DiskMotor returns true if the disk drive motor is on. Only meaningful for
// models with a disk drive.
func (zx *Spectrum) DiskMotor() bool {
	return zx.Spec.HasDisk && zx.port1FFD&pagingMotor == pagingMotor
}
