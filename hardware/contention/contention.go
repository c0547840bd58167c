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

// Package contention implements the memory and port contention of the ZX
// Spectrum family.
//
// When the ULA is fetching display data the processor is held for a number
// of t-states if it accesses a contended bank. The number of t-states depends
// only on the clock value and is precomputed for the whole frame. The tables
// are immutable after creation.
//
// Port contention is split into an early and a late phase. The execution unit
// samples (or drives) the port between the two phases. Together the phases
// always account for four t-states plus any contention:
//
//	contended | bit 0 reset | result
//	----------+-------------+-----------------
//	no        | no          | N:4
//	no        | yes         | N:1 C:3
//	yes       | yes         | C:1 C:3
//	yes       | no          | C:1 C:1 C:1 C:1
//
// Where N is an uncontended cycle and C a contended one.
package contention

import (
	"github.com/zxcore/zxcore/hardware/specification"
)

// the longest an instruction can overrun the end of the frame, including the
// contention it suffers on the way
const slack = 256

// Table of contention delays for a frame.
type Table struct {
	delays []uint8

	// ports and internal cycles are never contended
	memoryOnly bool
}

// NewTable is the preferred method of initialisation for the Table type.
// Late timings move the contention window forward by one t-state.
func NewTable(spec specification.Spec, late bool) *Table {
	tab := &Table{
		delays:     make([]uint8, spec.FrameLength+slack),
		memoryOnly: spec.MemoryContentionOnly,
	}

	if !spec.Contended {
		return tab
	}

	start := spec.ContentionStart
	if late {
		start++
	}

	for y := range specification.ScreenHeight {
		t := start + y*spec.TStatesPerLine
		for x := range specification.LineDisplayTStates {
			tab.delays[t+x] = uint8(spec.Pattern[x%len(spec.Pattern)])
		}
	}

	return tab
}

// Delay returns the number of t-states a contended access starting at clock
// will be delayed.
func (tab *Table) Delay(clock int) int {
	if clock < 0 || clock >= len(tab.delays) {
		return 0
	}
	return int(tab.delays[clock])
}

// Contend implements the internal cycles of an instruction that place an
// address on the bus. There are count cycles of time t-states each. The
// updated clock is returned.
func (tab *Table) Contend(contended bool, time int, count int, clock int) int {
	if !contended || tab.memoryOnly {
		return clock + count*time
	}
	for range count {
		clock += tab.Delay(clock) + time
	}
	return clock
}

// PortEarly is the first cycle of a port access. The contended argument is
// whether the port address falls into a contended bank.
func (tab *Table) PortEarly(contended bool, clock int) int {
	if contended && !tab.memoryOnly {
		clock += tab.Delay(clock)
	}
	return clock + 1
}

// PortLate is the remaining three cycles of a port access.
func (tab *Table) PortLate(port uint16, contended bool, clock int) int {
	if tab.memoryOnly {
		return clock + 3
	}

	if port&0x01 == 0x00 {
		return clock + tab.Delay(clock) + 3
	}

	if contended {
		for range 3 {
			clock += tab.Delay(clock) + 1
		}
		return clock
	}

	return clock + 3
}

// Port is a complete port access. Equivalent to PortEarly() followed by
// PortLate().
func (tab *Table) Port(port uint16, contended bool, clock int) int {
	return tab.PortLate(port, contended, tab.PortEarly(contended, clock))
}
