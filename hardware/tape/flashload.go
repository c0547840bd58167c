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

package tape

import (
	"math/bits"

	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/notifications"
)

// address of the compare instruction at the start of the ROM loading routine
const romLoadEntry = 0x056b

// opcodes of the JR NZ instruction that follows the DEC A of the ROM delay
// loop
const (
	opJRNZ   = 0x20
	jrNZBack = 0xfd
)

// OnDecA is the trap for the DEC A instruction. The delay loop at the start
// of the ROM edge detection routine is skipped. The time the loop would have
// taken is added to the tape.
func (d *Deck) OnDecA(regs *cpu.Registers, mem Memory) {
	if !d.playing || !d.env.Prefs.Accelerate.Get().(bool) {
		return
	}

	if regs.A == 0 || mem.Peek(regs.PC) != opJRNZ || mem.Peek(regs.PC+1) != jrNZBack {
		return
	}

	d.clock += (int(regs.A-1) << 4) + 23
	regs.PC += 2
	regs.A = 0
	regs.F |= cpu.FlagZ
}

// OnCompareA is the trap for the CP instruction at the entry to the ROM
// loading routine. If fast loading is enabled the next standard block on the
// tape is loaded directly into memory.
func (d *Deck) OnCompareA(regs *cpu.Registers, mem Memory) {
	if !d.Inserted() || regs.PC != romLoadEntry || !d.env.Prefs.FastLoad.Get().(bool) {
		return
	}

	d.SetMode(ModeBlock)
	d.strategy.LoadBlock(d, regs, mem)
}

// findStandard returns the index of the next standard data block. Only pulse
// trains and pauses can be skipped. Returns -1 if there is no such block.
func (d *Deck) findStandard() int {
	start := max(d.cursor, 0)
	if d.cursor >= 0 && d.cursor < len(d.blocks) {
		switch d.blocks[d.cursor].(type) {
		case DataSequence, Stop:
			start++
		}
	}

	for i := start; i < len(d.blocks); i++ {
		switch blk := d.blocks[i].(type) {
		case DataSequence:
			if blk.Standard {
				return i
			}
			return -1
		case PulseTrain, Pause:
		default:
			return -1
		}
	}

	return -1
}

// flashLoad performs the work of the ROM LD-BYTES routine. On entry IX is the
// destination, DE is the length and the flag byte is in A'. The routine
// returns to the caller of LD-BYTES with the carry flag set on success.
func (d *Deck) flashLoad(regs *cpu.Registers, mem Memory) bool {
	idx := d.findStandard()
	if idx == -1 {
		return false
	}
	data := d.blocks[idx].(DataSequence).Data

	regs.H = 0
	flag := true

	for n := 0; ; n++ {
		// end of data before the requested length
		if n >= len(data) {
			regs.A = regs.C & 0x20
			regs.B = 0
			regs.F = cpu.FlagZ | cpu.FlagH
			break
		}

		regs.L = data[n]
		regs.H ^= regs.L

		// the checksum byte. the parity in H must be zero
		if regs.DE() == 0 {
			regs.A = regs.H
			regs.F = compareFlags(regs.A, 1)
			break
		}

		if flag {
			flag = false
			regs.A = uint8(regs.AltAF>>8) ^ regs.L
			regs.F = logicFlags(regs.A)
			if regs.F&cpu.FlagZ == 0 {
				break
			}
			continue
		}

		mem.Poke(regs.IX, regs.L)
		regs.IX++
		regs.SetDE(regs.DE() - 1)
	}

	// return from LD-BYTES
	regs.PC = uint16(mem.Peek(regs.SP+1))<<8 | uint16(mem.Peek(regs.SP))
	regs.SP += 2
	regs.MemPtr = regs.PC

	d.cursor = idx
	if d.playing {
		d.nextBlock()
	}

	logger.Logf(d.env, logTag, "block loaded: %s", d.blocks[idx])
	d.env.Notify(notifications.NotifyTapeFlashLoad)

	return true
}

// flags for the result of a logical operation
func logicFlags(v uint8) uint8 {
	f := v & (cpu.FlagS | cpu.Flag5 | cpu.Flag3)
	if v == 0 {
		f |= cpu.FlagZ
	}
	if bits.OnesCount8(v)&0x01 == 0 {
		f |= cpu.FlagPV
	}
	return f
}

// flags for CP n with the accumulator a
func compareFlags(a uint8, n uint8) uint8 {
	r := a - n
	f := r&cpu.FlagS | n&(cpu.Flag5|cpu.Flag3) | cpu.FlagN
	if r == 0 {
		f |= cpu.FlagZ
	}
	if a&0x0f < n&0x0f {
		f |= cpu.FlagH
	}
	if (a^n)&(a^r)&0x80 != 0 {
		f |= cpu.FlagPV
	}
	if a < n {
		f |= cpu.FlagC
	}
	return f
}
