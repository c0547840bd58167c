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

// Package cpu defines the interface between the Spectrum hardware and the Z80
// execution unit. The execution unit itself (instruction decoding, flags,
// interrupt acknowledgement) is not part of this module. Any implementation
// of the CPU interface can be attached to the hardware.
//
// The hardware installs its callbacks into the execution unit with Attach().
// Every callback that takes time is given the current clock value and returns
// the clock value after the access. The execution unit is the owner of the
// clock. The hardware never reads a clock value other than the one it is
// given.
//
// The Traps interface is optional. It is implemented by the hardware for the
// benefit of the tape loader and is called by the execution unit at two
// specific points: after a DEC A instruction and when PC reaches the compare
// at the start of the ROM loading routine.
//
// The Idle type is a minimal execution unit. It fetches and discards opcodes
// and responds to interrupts in mode 1. It is useful for tests and for
// running the hardware without a processor.
package cpu
