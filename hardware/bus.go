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

package hardware

import (
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/ula"
)

// bus connects the execution unit to the rest of the machine. It implements
// both the cpu.Bus and cpu.Traps interfaces.
type bus struct {
	zx *Spectrum
}

// Fetch implements the cpu.Bus interface.
func (b *bus) Fetch(address uint16, clock int) (uint8, int) {
	return b.zx.Mem.Fetch(address, clock)
}

// Read implements the cpu.Bus interface.
func (b *bus) Read(address uint16, clock int) (uint8, int) {
	return b.zx.Mem.Read(address, clock)
}

// Write implements the cpu.Bus interface.
func (b *bus) Write(address uint16, data uint8, clock int) int {
	return b.zx.Mem.Write(address, data, clock)
}

// ReadWord implements the cpu.Bus interface.
func (b *bus) ReadWord(address uint16, clock int) (uint16, int) {
	return b.zx.Mem.ReadWord(address, clock)
}

// WriteWord implements the cpu.Bus interface.
func (b *bus) WriteWord(address uint16, data uint16, clock int) int {
	return b.zx.Mem.WriteWord(address, data, clock)
}

// Contend implements the cpu.Bus interface.
func (b *bus) Contend(address uint16, time int, count int, clock int) int {
	return b.zx.Mem.Contend(address, time, count, clock)
}

// In implements the cpu.Bus interface.
//
// The ULA responds to every even port. Reading the ULA port is also the point
// at which the tape loader detector samples the registers. Odd ports are
// offered to the attached devices. If no device responds the value of the
// floating bus is returned.
func (b *bus) In(port uint16, clock int) (uint8, int) {
	zx := b.zx

	contended := zx.Mem.Contended(port)
	clock = zx.table.PortEarly(contended, clock)

	var data uint8
	if ula.Responds(port) {
		zx.Tape.OnPortIn(zx.CPU.Registers(), clock)
		data = zx.ULA.In(port)
	} else if v, ok := zx.Peripherals.In(port); ok {
		data = v
	} else {
		data, _ = zx.ULA.FloatingBus(clock)
	}

	return data, zx.table.PortLate(port, contended, clock)
}

// Out implements the cpu.Bus interface.
func (b *bus) Out(port uint16, data uint8, clock int) int {
	zx := b.zx

	contended := zx.Mem.Contended(port)
	clock = zx.table.PortEarly(contended, clock)

	if ula.Responds(port) {
		zx.ULA.Out(data, clock)
	}
	zx.page(port, data, clock)
	zx.Peripherals.Out(port, data)

	return zx.table.PortLate(port, contended, clock)
}

// OnDecA implements the cpu.Traps interface.
func (b *bus) OnDecA() {
	if !b.zx.basicROM() {
		return
	}
	b.zx.Tape.OnDecA(b.zx.CPU.Registers(), b.zx.Mem)
}

// OnCompareA implements the cpu.Traps interface.
func (b *bus) OnCompareA() {
	if !b.zx.basicROM() {
		return
	}
	b.zx.Tape.OnCompareA(b.zx.CPU.Registers(), b.zx.Mem)
}

// basicROM returns true if the 48K BASIC ROM is paged into the bottom of
// memory. The 48K BASIC ROM is always the last ROM.
func (zx *Spectrum) basicROM() bool {
	read, _ := zx.Mem.Binding(0)
	return read == memory.ROMIndex((zx.Spec.ROMs-1)*2)
}
