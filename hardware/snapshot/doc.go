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

// Package snapshot converts between the three common Spectrum snapshot
// formats and the State type. The formats are:
//
//	SNA	fixed layout. 48K and 128K variants identified by length
//	Z80	versioned header with optionally compressed memory pages
//	SZX	tagged chunks. the most complete of the three
//
// Loading is a two stage process. The file is parsed into a State and
// validated. Only when that has succeeded is the State applied to the
// hardware, by the hardware package. A failed load never leaves the machine
// in a partially restored condition.
//
// Saving is the reverse. The hardware produces a State and the State is
// encoded by one of the Save functions.
//
// Memory in the State is stored by 16K RAM bank number. For the 48K models
// the three banks of RAM are banks 5, 2 and 0 for the address ranges 0x4000,
// 0x8000 and 0xc000 respectively. This is the same arrangement as the 128K
// models after a reset.
package snapshot
