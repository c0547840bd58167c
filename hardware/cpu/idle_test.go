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

package cpu_test

import (
	"testing"

	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/test"
)

type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Fetch(address uint16, clock int) (uint8, int) {
	return b.mem[address], clock + 3
}

func (b *flatBus) Read(address uint16, clock int) (uint8, int) {
	return b.mem[address], clock + 3
}

func (b *flatBus) Write(address uint16, data uint8, clock int) int {
	b.mem[address] = data
	return clock + 3
}

func (b *flatBus) ReadWord(address uint16, clock int) (uint16, int) {
	return uint16(b.mem[address]) | uint16(b.mem[address+1])<<8, clock + 6
}

func (b *flatBus) WriteWord(address uint16, data uint16, clock int) int {
	b.mem[address] = uint8(data)
	b.mem[address+1] = uint8(data >> 8)
	return clock + 6
}

func (b *flatBus) In(_ uint16, clock int) (uint8, int) {
	return 0xff, clock + 4
}

func (b *flatBus) Out(_ uint16, _ uint8, clock int) int {
	return clock + 4
}

func (b *flatBus) Contend(_ uint16, time int, count int, clock int) int {
	return clock + time*count
}

func TestIdle(t *testing.T) {
	mc := cpu.NewIdle()
	test.DemandImplements[cpu.CPU](t, mc)

	b := &flatBus{}
	mc.Attach(b, nil)

	// power on values
	test.ExpectEquality(t, mc.Registers().AF(), uint16(0xffff))
	test.ExpectEquality(t, mc.Registers().PC, uint16(0))

	// NOP
	mc.Step()
	test.ExpectEquality(t, mc.TStates(), 4)
	test.ExpectEquality(t, mc.Registers().PC, uint16(1))
	test.ExpectEquality(t, mc.Registers().R, uint8(1))

	// EI
	b.mem[1] = 0xfb
	mc.Step()
	test.ExpectSuccess(t, mc.Registers().IFF1)
	test.ExpectSuccess(t, mc.EILast())

	// HALT
	b.mem[2] = 0x76
	mc.Step()
	test.ExpectFailure(t, mc.EILast())
	test.ExpectSuccess(t, mc.Halted())
	test.ExpectEquality(t, mc.Registers().PC, uint16(3))

	// the halted processor does not advance
	mc.Step()
	test.ExpectEquality(t, mc.Registers().PC, uint16(3))
	test.ExpectEquality(t, mc.TStates(), 16)

	// the interrupt pushes the address of the instruction after the HALT
	mc.Registers().SP = 0x8000
	mc.Interrupt()
	test.ExpectFailure(t, mc.Halted())
	test.ExpectFailure(t, mc.Registers().IFF1)
	test.ExpectEquality(t, mc.Registers().PC, uint16(0x0038))
	test.ExpectEquality(t, mc.Registers().SP, uint16(0x7ffe))
	test.ExpectEquality(t, b.mem[0x7ffe], uint8(0x03))
	test.ExpectEquality(t, b.mem[0x7fff], uint8(0x00))
	test.ExpectEquality(t, mc.TStates(), 29)
}

func TestIdleIM2(t *testing.T) {
	mc := cpu.NewIdle()
	b := &flatBus{}
	mc.Attach(b, nil)

	regs := mc.Registers()
	regs.IM = 2
	regs.I = 0x80
	regs.SP = 0xc000
	regs.PC = 0x1234
	b.mem[0x80ff] = 0x00
	b.mem[0x8100] = 0x90

	mc.Interrupt()
	test.ExpectEquality(t, regs.PC, uint16(0x9000))
	test.ExpectEquality(t, regs.MemPtr, uint16(0x9000))
	test.ExpectEquality(t, b.mem[0xbffe], uint8(0x34))
	test.ExpectEquality(t, b.mem[0xbfff], uint8(0x12))

	mc.UserReset()
	test.ExpectEquality(t, regs.PC, uint16(0))
	test.ExpectEquality(t, regs.IM, uint8(0))
	test.ExpectEquality(t, mc.TStates(), 0)

	mc.SetEILast(true)
	test.ExpectSuccess(t, mc.EILast())
	mc.Step()
	test.ExpectFailure(t, mc.EILast())
}
