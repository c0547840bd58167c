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

import (
	"github.com/zxcore/zxcore/hardware/specification"
)

// Display is the source of the displayed bitmap and attributes. Implemented by
// the memory controller.
type Display interface {
	// the first 8K of the displayed bank
	DisplayData() []uint8
}

// Ear is the source of the EAR input. Implemented by the tape deck.
type Ear interface {
	// true if the tape is driving the EAR input
	EarActive() bool

	// the current level of the signal
	EarHigh() bool

	// the sound level of the signal
	EarSound() int16
}

// values in the raster table that are not display offsets
const (
	rasterSkip   = -2
	rasterBorder = -1
)

// ULA is the Uncommitted Logic Array.
type ULA struct {
	spec specification.Spec
	late int

	display  Display
	ear      Ear
	override PaletteOverride

	// the image produced by the ULA
	ScreenBuffer []uint32

	Palette Palette

	// attribute offset for every bitmap offset of the display
	attr []uint16

	// what is being drawn for every t-state in the frame. values of zero or
	// above are the display offset of the bitmap byte
	raster []int16

	// t-state of the top-left pixel of the screen buffer
	ulaStart int

	// t-state the screen has been rendered up to and the index into the
	// screen buffer of the next pixel
	last   int
	cursor int

	// the whole of the frame has been rendered
	fullyPainted bool

	flashOn    bool
	flashCount int

	border uint8

	// port state
	keyLine  [8]uint8
	keyNext  [8]uint8
	lastOut  uint8
	issue2   bool
	beeper   int16
	beepLast uint8
}

// NewULA is the preferred method of initialisation for the ULA type.
func NewULA(spec specification.Spec, late bool, display Display) *ULA {
	ula := &ULA{
		display: display,
		Palette: DefaultPalette,
	}
	ula.SetSpec(spec, late)
	ula.Reset()
	return ula
}

// SetSpec changes the timing and geometry of the ULA.
func (ula *ULA) SetSpec(spec specification.Spec, late bool) {
	ula.spec = spec
	ula.late = 0
	if late {
		ula.late = 1
	}

	ula.ulaStart = spec.ULAStart(ula.late)
	ula.ScreenBuffer = make([]uint32, spec.ScanlineWidth()*spec.ScanlinesTotal())
	ula.buildAttributeMap()
	ula.buildRaster()
	ula.ResetCursor()
}

// Spec returns the current specification.
func (ula *ULA) Spec() specification.Spec {
	return ula.spec
}

// Reset the ULA to its power-on state. The keyboard is released.
func (ula *ULA) Reset() {
	for i := range ula.keyLine {
		ula.keyLine[i] = 0xff
		ula.keyNext[i] = 0xff
	}
	ula.border = 7
	ula.lastOut = 0
	ula.beeper = 0
	ula.beepLast = 0
	ula.flashOn = false
	ula.flashCount = 0
	ula.ResetCursor()
}

// AttachEar connects the EAR input to a source. Can be nil.
func (ula *ULA) AttachEar(ear Ear) {
	ula.ear = ear
}

// SetPaletteOverride installs a replacement palette. Can be nil.
func (ula *ULA) SetPaletteOverride(override PaletteOverride) {
	ula.override = override
}

// SetIssue2 selects the behaviour of the EAR bit when the tape is not
// playing.
func (ula *ULA) SetIssue2(issue2 bool) {
	ula.issue2 = issue2
}

// the attribute map is derived from the way the bitmap is addressed:
//
//	010Y7Y6 Y2Y1Y0 Y5Y4Y3 X4X3X2X1X0
func (ula *ULA) buildAttributeMap() {
	ula.attr = make([]uint16, 6144)
	for f := range ula.attr {
		hi := (f >> 8) & 0xff
		lo := f & 0xff

		y := hi & 0x07
		y |= (lo & 0xe0) >> 2
		y |= (hi & 0x18) << 3

		ula.attr[f] = uint16(0x1800 + ((y >> 3) << 5) + (lo & 0x1f))
	}
}

// bitmap offset for the pixel line and character column
func bitmapOffset(y int, col int) int {
	return ((y & 0xc0) << 5) | ((y & 0x07) << 8) | ((y & 0x38) << 2) | col
}

func (ula *ULA) buildRaster() {
	ula.raster = make([]int16, ula.spec.FrameLength)
	for i := range ula.raster {
		ula.raster[i] = rasterSkip
	}

	tpl := ula.spec.TStatesPerLine
	lines := ula.spec.ScanlinesTotal()

	for line := range lines {
		for x := 0; x < specification.LinePixelTStates; x += 4 {
			t := ula.ulaStart + line*tpl + x
			if t < 0 || t >= len(ula.raster) {
				continue
			}

			y := line - ula.spec.BorderTop
			if y >= 0 && y < specification.ScreenHeight && x >= specification.LineDisplayOffset &&
				x < specification.LineDisplayOffset+specification.LineDisplayTStates {
				col := (x - specification.LineDisplayOffset) / 4
				ula.raster[t] = int16(bitmapOffset(y, col))
			} else {
				ula.raster[t] = rasterBorder
			}
		}
	}
}
