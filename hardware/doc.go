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

// Package hardware is the base package for the Spectrum emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Spectrum type is the root of the emulation and contains external
// references to all the sub-systems. From here, the emulation can either be
// started to run continuously (with optional callback to check for
// continuation); or it can be stepped one instruction at a time.
//
// The execution unit is not part of this package. Any implementation of the
// cpu.CPU interface can be given to NewSpectrum(). The Spectrum installs
// itself into the execution unit as the memory and port bus and as the tape
// loader traps.
//
// Every call to Step() is followed by the same sequence of post-step hooks:
// audio accumulation, tape advancement, keyboard refresh and, if the frame
// has ended, the end of frame bookkeeping. At the end of every frame the
// screen buffer is sent to the television and the NotifyFrameEnd notice is
// sent to the environment.
//
// The machine state can be captured with Snapshot() and restored with
// Plumb(). The snapshot package converts these states to and from the
// supported file formats.
package hardware
