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

package peripherals

import (
	"fmt"

	"github.com/zxcore/zxcore/hardware/ula"
)

// ports of the ULA+
const (
	ULAPlusRegisterPort = 0xbf3b
	ULAPlusDataPort     = 0xff3b
)

// the group bits of the register port
const (
	ulaPlusGroupMask    = 0xc0
	ulaPlusPaletteGroup = 0x00
	ulaPlusModeGroup    = 0x40
)

// the palette before it is changed by the program
var ulaPlusDefault = [64]uint32{
	0x000000, 0x404040, 0xff0000, 0xff6a00, 0xffd800, 0xb6ff00, 0x4cff00, 0x00ff21,
	0x00ff90, 0x00ffff, 0x0094ff, 0x0026ff, 0x4800ff, 0xb200ff, 0xff00dc, 0xff006e,
	0xffffff, 0x808080, 0x7f0000, 0x7f3300, 0x7f6a00, 0x5b7f00, 0x267f00, 0x007f0e,
	0x007f46, 0x007f7f, 0x004a7f, 0x00137f, 0x21007f, 0x57007f, 0x7f006e, 0x7f0037,
	0xa0a0a0, 0x303030, 0xff7f7f, 0xffb27f, 0xffe97f, 0xdaff7f, 0xa5ff7f, 0x7fff8e,
	0x7fffc5, 0x7fffff, 0x7fc9ff, 0x7f92ff, 0xa17fff, 0xd67fff, 0xff7fed, 0xff7fb6,
	0xc0c0c0, 0x606060, 0x7f3f3f, 0x7f593f, 0x7f743f, 0x6d7f3f, 0x527f3f, 0x3f7f47,
	0x3f7f62, 0x3f7f7f, 0x3f647f, 0x3f497f, 0x503f7f, 0x6b3f7f, 0x7f3f76, 0x7f3f5b,
}

// ULAPlus is the ULA+ palette extension. It implements the ula.PaletteOverride
// interface.
type ULAPlus struct {
	host Host

	// palette entries as 24bit RGB values
	palette [64]uint32

	// the last value written to the register port
	register uint8

	// the selected palette entry. only meaningful when the register is in the
	// palette group
	entry int

	// the last value written to the data port
	lastOut uint8

	enabled bool
}

// NewULAPlus is the preferred method of initialisation for the ULAPlus type.
func NewULAPlus() *ULAPlus {
	up := &ULAPlus{}
	up.palette = ulaPlusDefault
	return up
}

func (up *ULAPlus) String() string {
	return fmt.Sprintf("ULA+: enabled=%v register=%02x", up.enabled, up.register)
}

// ID implements the Device interface.
func (up *ULAPlus) ID() ID {
	return IDULAPlus
}

// Register implements the Device interface.
func (up *ULAPlus) Register(host Host) {
	up.host = host
	host.SetPaletteOverride(up)
}

// Unregister implements the Device interface.
func (up *ULAPlus) Unregister(host Host) {
	host.SetPaletteOverride(nil)
	up.host = nil
}

// Reset implements the Device interface. The palette itself is not reset.
func (up *ULAPlus) Reset() {
	up.register = 0
	up.entry = 0
	up.lastOut = 0
	up.enabled = false
}

// In implements the Port interface.
func (up *ULAPlus) In(port uint16) (uint8, bool) {
	if port == ULAPlusDataPort {
		return up.lastOut, true
	}
	return 0xff, false
}

// Out implements the Port interface.
func (up *ULAPlus) Out(port uint16, data uint8) bool {
	switch port {
	case ULAPlusRegisterPort:
		up.register = data
		if data&ulaPlusGroupMask == ulaPlusPaletteGroup {
			up.entry = int(data & 0x3f)
		}
		return true

	case ULAPlusDataPort:
		if up.lastOut != data && up.host != nil {
			up.host.FlushScreen()
		}
		up.lastOut = data

		switch up.register & ulaPlusGroupMask {
		case ulaPlusModeGroup:
			up.enabled = data&0x01 == 0x01
		case ulaPlusPaletteGroup:
			up.palette[up.entry] = ExpandG3R3B2(data)
		}
		return true
	}

	return false
}

// PaletteActive implements the ula.PaletteOverride interface.
func (up *ULAPlus) PaletteActive() bool {
	return up.enabled
}

// PaletteEntry implements the ula.PaletteOverride interface.
func (up *ULAPlus) PaletteEntry(n int) uint32 {
	return 0xff000000 | up.palette[n&0x3f]
}

// State returns the value of the register port and whether the palette is
// enabled.
func (up *ULAPlus) State() (uint8, bool) {
	return up.register, up.enabled
}

// SetState is the inverse of State().
func (up *ULAPlus) SetState(register uint8, enabled bool) {
	up.register = register
	if register&ulaPlusGroupMask == ulaPlusPaletteGroup {
		up.entry = int(register & 0x3f)
	}
	up.enabled = enabled
}

// PaletteBytes returns the palette in the packed G3R3B2 format.
func (up *ULAPlus) PaletteBytes() [64]uint8 {
	var p [64]uint8
	for i, c := range up.palette {
		p[i] = PackG3R3B2(c)
	}
	return p
}

// SetPaletteBytes replaces the palette with entries in the packed G3R3B2
// format.
func (up *ULAPlus) SetPaletteBytes(p [64]uint8) {
	for i, v := range p {
		up.palette[i] = ExpandG3R3B2(v)
	}
}

// replicate the bits of a three bit value (hml) to fill eight bits as
// hmlhmlml
func replicate3(v uint32) uint32 {
	return v<<5 | v<<2 | v&0x03
}

// ExpandG3R3B2 converts a packed G3R3B2 value to a 24bit RGB value. The two
// bit blue component is extended to three bits by using the low bit as the
// middle bit.
func ExpandG3R3B2(v uint8) uint32 {
	r := uint32(v>>2) & 0x07
	g := uint32(v>>5) & 0x07
	bh := uint32(v>>1) & 0x01
	bl := uint32(v) & 0x01
	b := bh<<2 | bl<<1 | bl
	return replicate3(r)<<16 | replicate3(g)<<8 | replicate3(b)
}

// PackG3R3B2 converts a 24bit RGB value to the packed G3R3B2 format.
func PackG3R3B2(c uint32) uint8 {
	r := uint8(c>>16) >> 5
	g := uint8(c>>8) >> 5
	b := uint8(c) >> 6
	return g<<5 | r<<2 | b
}

// make sure the type satisfies the interface
var _ ula.PaletteOverride = (*ULAPlus)(nil)
