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

// opcodes the Idle execution unit understands. everything else is treated
// as a NOP.
const (
	opHALT = 0x76
	opDI   = 0xf3
	opEI   = 0xfb
)

// Idle is a minimal execution unit. Opcodes are fetched with the correct M1
// timing but only HALT, DI and EI have any effect.
type Idle struct {
	regs   Registers
	clock  int
	halted bool
	eiLast bool

	bus   Bus
	traps Traps
}

// NewIdle is the preferred method of initialisation for the Idle type.
func NewIdle() *Idle {
	mc := &Idle{}
	mc.HardReset()
	return mc
}

// Registers implements the CPU interface.
func (mc *Idle) Registers() *Registers {
	return &mc.regs
}

// TStates implements the CPU interface.
func (mc *Idle) TStates() int {
	return mc.clock
}

// SetTStates implements the CPU interface.
func (mc *Idle) SetTStates(clock int) {
	mc.clock = clock
}

// Attach implements the CPU interface.
func (mc *Idle) Attach(bus Bus, traps Traps) {
	mc.bus = bus
	mc.traps = traps
}

// Step implements the CPU interface.
func (mc *Idle) Step() {
	mc.eiLast = false

	var op uint8
	op, mc.clock = mc.bus.Fetch(mc.regs.PC, mc.clock)

	// refresh cycle
	mc.clock++
	mc.regs.R = (mc.regs.R & 0x80) | ((mc.regs.R + 1) & 0x7f)

	// a halted processor executes NOPs without advancing PC
	if mc.halted {
		return
	}

	mc.regs.PC++

	switch op {
	case opHALT:
		mc.halted = true
	case opDI:
		mc.regs.IFF1 = false
		mc.regs.IFF2 = false
	case opEI:
		mc.regs.IFF1 = true
		mc.regs.IFF2 = true
		mc.eiLast = true
	}
}

// Interrupt implements the CPU interface.
func (mc *Idle) Interrupt() {
	mc.regs.IFF1 = false
	mc.regs.IFF2 = false

	// PC already points to the instruction after the HALT
	mc.halted = false

	mc.regs.R = (mc.regs.R & 0x80) | ((mc.regs.R + 1) & 0x7f)

	// acknowledge
	mc.clock += 7

	mc.regs.SP -= 2
	mc.clock = mc.bus.WriteWord(mc.regs.SP, mc.regs.PC, mc.clock)

	if mc.regs.IM == 2 {
		mc.regs.PC, mc.clock = mc.bus.ReadWord(uint16(mc.regs.I)<<8|0xff, mc.clock)
	} else {
		mc.regs.PC = 0x0038
	}
	mc.regs.MemPtr = mc.regs.PC
}

// EILast implements the CPU interface.
func (mc *Idle) EILast() bool {
	return mc.eiLast
}

// SetEILast implements the CPU interface.
func (mc *Idle) SetEILast(eiLast bool) {
	mc.eiLast = eiLast
}

// HardReset implements the CPU interface. Registers are set to 0xff as they
// are on a cold boot.
func (mc *Idle) HardReset() {
	mc.regs = Registers{
		A: 0xff, F: 0xff, B: 0xff, C: 0xff, D: 0xff, E: 0xff, H: 0xff, L: 0xff,
		AltAF: 0xffff, AltBC: 0xffff, AltDE: 0xffff, AltHL: 0xffff,
		IX: 0xffff, IY: 0xffff, SP: 0xffff,
	}
	mc.UserReset()
}

// UserReset implements the CPU interface.
func (mc *Idle) UserReset() {
	mc.regs.PC = 0
	mc.regs.I = 0
	mc.regs.R = 0
	mc.regs.IFF1 = false
	mc.regs.IFF2 = false
	mc.regs.IM = 0
	mc.regs.MemPtr = 0
	mc.halted = false
	mc.eiLast = false
	mc.clock = 0
}

// Halted implements the CPU interface.
func (mc *Idle) Halted() bool {
	return mc.halted
}

// SetHalted implements the CPU interface.
func (mc *Idle) SetHalted(halted bool) {
	mc.halted = halted
}
