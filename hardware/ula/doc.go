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

// Package ula emulates the Uncommitted Logic Array of the ZX Spectrum.
//
// The ULA generates the raster image, reads the keyboard matrix, samples the
// EAR input and drives the beeper. In this emulation it is also responsible
// for the floating bus.
//
// The raster image is produced lazily. Every four t-states of the raster
// produce one byte (eight pixels) of the ScreenBuffer. Rather than rendering
// every four t-states the screen is brought up to date with Flush() only when
// something visible is about to change: a write to the displayed bitmap or
// attributes, a change to the border colour and at the end of the frame.
//
// The ScreenBuffer includes the border and is indexed by:
//
//	(scanline * width) + column
//
// Pixel values are 32bit ARGB. The alpha channel is always opaque.
package ula
