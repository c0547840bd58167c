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

// Palette is the list of sixteen base colours. The second eight are the
// bright versions of the first eight.
type Palette [16]uint32

// DefaultPalette is the palette used by the ULA unless told otherwise.
var DefaultPalette = Palette{
	0xff000000, 0xff0000d7, 0xffd70000, 0xffd700d7,
	0xff00d700, 0xff00d7d7, 0xffd7d700, 0xffd7d7d7,
	0xff000000, 0xff0000ff, 0xffff0000, 0xffff00ff,
	0xff00ff00, 0xff00ffff, 0xffffff00, 0xffffffff,
}

// PaletteOverride is implemented by devices that replace the base palette. The
// ULA+ is such a device.
type PaletteOverride interface {
	// returns true if the override palette should be used
	PaletteActive() bool

	// entry in the override palette. the layout of the palette is the ULA+
	// layout of four groups of sixteen: eight ink colours followed by eight
	// paper colours. the groups are selected by the flash and bright bits
	PaletteEntry(n int) uint32
}
