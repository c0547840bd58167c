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

package cpu

// Bus is the set of callbacks the hardware installs into the execution unit.
//
// Every method is given the clock at the start of the access and returns the
// clock at the end of it, including any contention.
type Bus interface {
	// Fetch is an opcode read. Timing is identical to Read.
	Fetch(address uint16, clock int) (uint8, int)

	Read(address uint16, clock int) (uint8, int)
	Write(address uint16, data uint8, clock int) int

	// word accesses are low byte first
	ReadWord(address uint16, clock int) (uint16, int)
	WriteWord(address uint16, data uint16, clock int) int

	In(port uint16, clock int) (uint8, int)
	Out(port uint16, data uint8, clock int) int

	// Contend is called for the internal cycles of an instruction that place
	// the address on the bus without accessing memory. The time argument is
	// the length of each cycle and count the number of cycles.
	Contend(address uint16, time int, count int, clock int) int
}

// Traps are called by the execution unit to allow the tape loader to
// accelerate the ROM loading routines. They are called after the instruction
// that triggered them has completed.
type Traps interface {
	// called after a DEC A instruction
	OnDecA()

	// called when a CP instruction is executed. the hardware checks the
	// program counter itself
	OnCompareA()
}

// CPU is the interface to the Z80 execution unit.
type CPU interface {
	// the register file. changes made through the pointer are seen by the
	// execution unit
	Registers() *Registers

	// the clock counter. the hardware rewinds the clock by the frame length at
	// the end of every frame
	TStates() int
	SetTStates(clock int)

	// execute one instruction
	Step()

	// accept a maskable interrupt. the hardware only calls this when IFF1 is
	// set and EILast() is false
	Interrupt()

	// true if the previous instruction was EI. interrupts are not accepted
	// immediately after EI
	EILast() bool
	SetEILast(eiLast bool)

	HardReset()
	UserReset()

	Halted() bool
	SetHalted(halted bool)

	// install the hardware callbacks. traps can be nil
	Attach(bus Bus, traps Traps)
}
