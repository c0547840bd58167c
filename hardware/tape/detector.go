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
)

// the number of consecutive counting samples required before the detector
// locks on to a loop
const lockCount = 8

// a loop that takes longer than this number of t-states between port reads
// is not an edge detection loop
const maxLoopTStates = 96

// Detector looks for loading loops. A loading loop reads the EAR port and
// counts the number of iterations in a single register, until an edge is
// seen.
type Detector struct {
	count int

	// values at the previous sample
	pc    uint16
	regs  [7]uint8
	clock int
	frame int

	locked   bool
	lockedPC uint16

	// the register that is counting, the direction it counts in and the
	// number of t-states of each iteration
	reg  int
	diff int
	step int
}

// Reset the detector.
func (det *Detector) Reset() {
	*det = Detector{}
}

// Locked returns true if the detector has locked on to a loop, along with
// the address of the loop.
func (det *Detector) Locked() (bool, uint16) {
	return det.locked, det.lockedPC
}

func sampleRegisters(regs *cpu.Registers) [7]uint8 {
	return [7]uint8{regs.A, regs.B, regs.C, regs.D, regs.E, regs.H, regs.L}
}

// Sample the registers at a port read. Returns true if the detector locked
// on to a loop with this sample.
func (det *Detector) Sample(regs *cpu.Registers, clock int, frame int) bool {
	if frame != det.frame {
		det.count = 0
	}

	cur := sampleRegisters(regs)
	elapsed := clock - det.clock
	lockedNow := false

	if elapsed > 0 && elapsed < maxLoopTStates && regs.PC == det.pc {
		changed := 0
		which := -1
		diff := 0
		for i := range cur {
			if cur[i] != det.regs[i] {
				changed++
				which = i
				diff = int(cur[i]) - int(det.regs[i])
			}
		}

		if changed == 1 && (diff == 1 || diff == -1) {
			det.count++
			det.reg = which
			det.diff = diff
			det.step = elapsed
			if det.count >= lockCount && !(det.locked && det.lockedPC == regs.PC) {
				det.locked = true
				det.lockedPC = regs.PC
				lockedNow = true
			}
		} else {
			det.count = 0
		}
	} else {
		det.count = 0
	}

	det.pc = regs.PC
	det.regs = cur
	det.clock = clock
	det.frame = frame

	return lockedNow
}

// register returns a pointer to the counting register.
func (det *Detector) register(regs *cpu.Registers) *uint8 {
	switch det.reg {
	case 0:
		return &regs.A
	case 1:
		return &regs.B
	case 2:
		return &regs.C
	case 3:
		return &regs.D
	case 4:
		return &regs.E
	case 5:
		return &regs.H
	case 6:
		return &regs.L
	}
	return nil
}
