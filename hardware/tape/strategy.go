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
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/logger"
)

// Mode of the loading strategy.
type Mode int

// List of valid Mode values.
const (
	ModePulse Mode = iota
	ModeBlock
)

func (m Mode) String() string {
	switch m {
	case ModePulse:
		return "pulse"
	case ModeBlock:
		return "block"
	}
	return "unknown"
}

// Memory is the untimed access to memory required by the loading strategies.
type Memory interface {
	Peek(address uint16) uint8
	Poke(address uint16, data uint8)
}

// Strategy is the way the deck delivers tape data to the program.
type Strategy interface {
	Mode() Mode

	// LoadBlock is called on entry to the ROM loading routine. Returns true if
	// a block was loaded
	LoadBlock(d *Deck, regs *cpu.Registers, mem Memory) bool

	// Sample is called when the detected loop reads the EAR port
	Sample(d *Deck, regs *cpu.Registers)
}

// every edge is played with exact timing
type pulseStrategy struct{}

func (pulseStrategy) Mode() Mode {
	return ModePulse
}

func (pulseStrategy) LoadBlock(_ *Deck, _ *cpu.Registers, _ Memory) bool {
	return false
}

func (pulseStrategy) Sample(_ *Deck, _ *cpu.Registers) {
}

// standard blocks are copied directly to memory and detected loops are fast
// forwarded to the next edge
type blockStrategy struct{}

func (blockStrategy) Mode() Mode {
	return ModeBlock
}

func (blockStrategy) LoadBlock(d *Deck, regs *cpu.Registers, mem Memory) bool {
	return d.flashLoad(regs, mem)
}

func (blockStrategy) Sample(d *Deck, regs *cpu.Registers) {
	if !d.env.Prefs.Accelerate.Get().(bool) {
		return
	}
	d.accelerate(regs)
}

// SetMode selects the loading strategy.
func (d *Deck) SetMode(mode Mode) {
	if mode == d.strategy.Mode() {
		return
	}
	switch mode {
	case ModeBlock:
		d.strategy = blockStrategy{}
	default:
		d.strategy = pulseStrategy{}
	}
}

// fast forward the detected loop until an edge occurs or the counting
// register reaches its limit.
func (d *Deck) accelerate(regs *cpu.Registers) {
	reg := d.detector.register(regs)
	if reg == nil || d.detector.step <= 0 {
		return
	}

	d.flipped = false
	for d.playing && *reg != 0xff && *reg != 0x01 {
		d.clock += d.detector.step
		if d.clock >= d.edge {
			d.clock -= d.edge
			d.onEdge()
		}
		*reg = uint8(int(*reg) + d.detector.diff)
		if d.flipped {
			break
		}
	}

	d.edgeConsumed = true
}

// OnPortIn should be called by the hardware whenever the ULA port is read.
func (d *Deck) OnPortIn(regs *cpu.Registers, clock int) {
	if !d.Inserted() {
		return
	}

	if d.playing {
		if locked, pc := d.detector.Locked(); locked && pc == regs.PC {
			if d.autoStarted {
				d.timeout = Timeout
			}
			d.detector.clock = clock
			d.strategy.Sample(d, regs)
			return
		}
	}

	if d.detector.Sample(regs, clock, d.frame) {
		d.onLock(regs.PC)
	}
}

func (d *Deck) onLock(pc uint16) {
	logger.Logf(d.env, logTag, "loader detected at %#04x", pc)

	if d.env.Prefs.FastLoad.Get().(bool) {
		d.SetMode(ModeBlock)
	}

	if !d.playing && d.env.Prefs.AutoPlay.Get().(bool) {
		d.Start()
		d.autoStarted = true
		d.timeout = Timeout
	}
}
