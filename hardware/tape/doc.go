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

// Package tape implements the tape deck of the ZX Spectrum.
//
// A tape is a list of blocks. Each block is one of PulseTrain, DataSequence,
// Pause or Stop. The deck plays the blocks by scheduling edge events. When
// an edge event occurs the level of the signal is flipped and the time to the
// next edge is calculated. The signal is presented to the ULA through the Ear
// interface.
//
// The deck is advanced by the hardware after every instruction with the
// number of t-states the instruction took. Time that elapses beyond an edge
// is carried over to the next edge.
//
// # Loader detection
//
// The Detector watches the port reads made by the program. If the program is
// seen to be polling the EAR bit in a tight loop that counts with a single
// register, the detector locks on to the address of the loop. Locking can
// start the tape automatically and selects the block loading strategy if fast
// loading is enabled.
//
// There are two loading strategies. The pulse strategy plays every edge with
// exact timing and works with any loader. The block strategy copies a whole
// standard data block into memory when the ROM loading routine is entered
// and fast forwards the tape while a detected loop is waiting for an edge.
//
// # Traps
//
// The execution unit calls two traps. OnDecA() skips the delay loop at the
// start of the ROM edge detection routine. OnCompareA() is the entry to the
// ROM loading routine and is where block loading takes place.
package tape
