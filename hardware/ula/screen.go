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

// Flush brings the screen buffer up to date with the clock value.
func (ula *ULA) Flush(clock int) {
	if clock < ula.ulaStart {
		return
	}

	if clock >= ula.spec.FrameLength {
		clock = ula.spec.FrameLength - 1
		ula.fullyPainted = true
	}

	elapsed := clock + 1 - ula.last
	if elapsed <= 0 {
		return
	}

	// four t-states for every byte
	n := (elapsed + 3) >> 2

	var data []uint8
	if ula.display != nil {
		data = ula.display.DisplayData()
	}

	for range n {
		if ula.last >= len(ula.raster) {
			break
		}

		switch r := ula.raster[ula.last]; {
		case r >= 0:
			ula.displayByte(data, int(r))
		case r == rasterBorder:
			ula.borderByte()
		}

		ula.last += 4
	}
}

func (ula *ULA) displayByte(data []uint8, offset int) {
	var pixels, attr uint8
	if data != nil {
		pixels = data[offset]
		attr = data[ula.attr[offset]]
	}

	bright := int(attr&0x40) >> 3
	flash := int(attr >> 7)
	ink := int(attr & 0x07)
	paper := int(attr>>3) & 0x07

	var inkCol, paperCol uint32

	if ula.override != nil && ula.override.PaletteActive() {
		group := ((flash << 1) + (bright >> 3)) << 4
		inkCol = ula.override.PaletteEntry(group + ink)
		paperCol = ula.override.PaletteEntry(group + paper + 8)
	} else {
		inkCol = ula.Palette[ink+bright]
		paperCol = ula.Palette[paper+bright]
		if ula.flashOn && flash != 0 {
			inkCol, paperCol = paperCol, inkCol
		}
	}

	if ula.cursor+8 > len(ula.ScreenBuffer) {
		return
	}

	for range 8 {
		if pixels&0x80 == 0x80 {
			ula.ScreenBuffer[ula.cursor] = inkCol
		} else {
			ula.ScreenBuffer[ula.cursor] = paperCol
		}
		ula.cursor++
		pixels <<= 1
	}
}

func (ula *ULA) borderByte() {
	var col uint32
	if ula.override != nil && ula.override.PaletteActive() {
		col = ula.override.PaletteEntry(int(ula.border) + 8)
	} else {
		col = ula.Palette[ula.border]
	}

	if ula.cursor+8 > len(ula.ScreenBuffer) {
		return
	}

	for range 8 {
		ula.ScreenBuffer[ula.cursor] = col
		ula.cursor++
	}
}

// ResetCursor moves the render position to the top-left of the screen buffer.
func (ula *ULA) ResetCursor() {
	ula.cursor = 0
	ula.last = ula.ulaStart
	ula.fullyPainted = false
}

// EndFrame completes the rendering of the frame and prepares for the next
// one. The flash phase is toggled every sixteen frames.
func (ula *ULA) EndFrame() {
	if !ula.fullyPainted {
		ula.Flush(ula.spec.FrameLength)
	}

	ula.flashCount++
	if ula.flashCount > 15 {
		ula.flashOn = !ula.flashOn
		ula.flashCount = 0
	}

	ula.ResetCursor()
}

// FlashOn returns the current flash phase.
func (ula *ULA) FlashOn() bool {
	return ula.flashOn
}

// Border returns the current border colour.
func (ula *ULA) Border() uint8 {
	return ula.border
}

// SetBorder changes the border colour without affecting the render. Used when
// restoring a snapshot.
func (ula *ULA) SetBorder(border uint8) {
	ula.border = border & 0x07
}

// FullyPainted returns true if the screen buffer has been rendered to the end
// of the frame.
func (ula *ULA) FullyPainted() bool {
	return ula.fullyPainted
}

// Position returns the t-state the screen has been rendered up to.
func (ula *ULA) Position() int {
	return ula.last
}
