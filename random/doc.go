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

// Package random provides random numbers to the emulation. The numbers are
// sensitive to the time within the emulation (the frame number and the clock
// within that frame) and to a base seed.
//
// The base seed is taken from the wall clock at program start. It can be
// replaced with Reseed(), or ignored altogether by setting the ZeroSeed
// field. ZeroSeed is useful for normalised emulations where the results must
// be the same every time, for example in regression tests.
package random
