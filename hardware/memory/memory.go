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

package memory

import (
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/contention"
	"github.com/zxcore/zxcore/hardware/specification"
)

// Access is the type of memory access reported to an Observer.
type Access int

// List of valid Access values.
const (
	AccessFetch Access = iota
	AccessRead
	AccessWrite
)

// Observer is notified of every timed memory access. Useful for debugging and
// tracing. It is not notified of Peek() or Poke().
type Observer interface {
	MemoryAccess(access Access, address uint16, data uint8, clock int)
}

// Screen is the part of the screen renderer used by the memory controller.
type Screen interface {
	// bring the screen up to date with the clock value
	Flush(clock int)
}

// the size of the bitmap and attributes in the displayed bank
const displaySize = 0x1b00

// Memory is the memory controller.
type Memory struct {
	arena [arenaSize]Bank

	// arena indices for each 8K window
	read  [8]int
	write [8]int

	table *contention.Table

	// arena index of the bank containing the displayed screen
	displayBank int

	screen   Screen
	observer Observer
}

// NewMemory is the preferred method of initialisation for the Memory type. The
// memory is bound to the 48K memory map until the hardware says otherwise.
func NewMemory(spec specification.Spec, table *contention.Table) *Memory {
	mem := &Memory{}

	for i := range numRAM {
		mem.arena[RAMIndex(i)].Kind = RAM
		mem.arena[RAMIndex(i)].Index = i
	}
	for i := range numROM {
		mem.arena[ROMIndex(i)].Kind = ROM
		mem.arena[ROMIndex(i)].Index = i
	}
	mem.arena[arenaJunk].Kind = Junk
	mem.arena[arenaUnconnected].Kind = Junk
	mem.arena[arenaUnconnected].Index = 1

	mem.SetSpec(spec, table)

	return mem
}

// SetSpec changes the contended banks and the contention table. The memory
// map is set to the default for the model.
func (mem *Memory) SetSpec(spec specification.Spec, table *contention.Table) {
	mem.table = table

	for i := range numRAM {
		mem.arena[RAMIndex(i)].Contended = false
	}

	var contended []int
	switch spec.Model {
	case specification.Model16K, specification.Model48K:
		contended = []int{5}
	case specification.Model128K, specification.ModelPlus2:
		contended = []int{1, 3, 5, 7}
	case specification.ModelPlus2A, specification.ModelPlus3:
		contended = []int{4, 5, 6, 7}
	}

	if spec.Contended {
		for _, b := range contended {
			mem.arena[RAMIndex(b*2)].Contended = true
			mem.arena[RAMIndex(b*2+1)].Contended = true
		}
	}

	for i := range mem.arena[arenaUnconnected].Data {
		mem.arena[arenaUnconnected].Data[i] = 0xff
	}

	mem.BindROM16(0, 0)
	mem.BindRAM16(1, 5)
	if spec.RAMBanks == 1 {
		mem.Unconnected16(2)
		mem.Unconnected16(3)
	} else {
		mem.BindRAM16(2, 2)
		mem.BindRAM16(3, 0)
	}
	mem.SetDisplayBank(5)
}

// AttachScreen connects the screen renderer to the memory controller.
func (mem *Memory) AttachScreen(screen Screen) {
	mem.screen = screen
}

// AttachObserver connects an Observer to the memory. Can be nil.
func (mem *Memory) AttachObserver(observer Observer) {
	mem.observer = observer
}

// Bind the arena bank to the 8K window. If writable is false then writes to
// the window are discarded.
func (mem *Memory) Bind(page int, bank int, writable bool) {
	page &= 0x07
	mem.read[page] = bank
	if writable && mem.arena[bank].Kind == RAM {
		mem.write[page] = bank
	} else {
		mem.write[page] = arenaJunk
	}
}

// BindRAM16 binds the 16K RAM bank to the 16K slot (0 to 3).
func (mem *Memory) BindRAM16(slot int, bank int) {
	mem.Bind(slot*2, RAMIndex(bank*2), true)
	mem.Bind(slot*2+1, RAMIndex(bank*2+1), true)
}

// BindROM16 binds the 16K ROM to the 16K slot (0 to 3).
func (mem *Memory) BindROM16(slot int, rom int) {
	mem.Bind(slot*2, ROMIndex(rom*2), false)
	mem.Bind(slot*2+1, ROMIndex(rom*2+1), false)
}

// Unconnected16 leaves the 16K slot (0 to 3) unconnected. Reads return 0xff
// and writes are discarded.
func (mem *Memory) Unconnected16(slot int) {
	mem.Bind(slot*2, arenaUnconnected, false)
	mem.Bind(slot*2+1, arenaUnconnected, false)
}

// Binding returns the arena indices of the read and write banks for the 8K
// window.
func (mem *Memory) Binding(page int) (int, int) {
	return mem.read[page&0x07], mem.write[page&0x07]
}

// Bank returns the bank at the arena index.
func (mem *Memory) Bank(index int) *Bank {
	return &mem.arena[index]
}

// SetDisplayBank selects the 16K RAM bank the ULA displays. Only banks 5 and
// 7 are displayable.
func (mem *Memory) SetDisplayBank(bank int) {
	mem.displayBank = RAMIndex(bank * 2)
}

// DisplayData returns the first 8K of the displayed bank. The returned slice
// refers to the memory itself.
func (mem *Memory) DisplayData() []uint8 {
	return mem.arena[mem.displayBank].Data[:]
}

// Contended returns true if the address is in a contended bank.
func (mem *Memory) Contended(address uint16) bool {
	return mem.arena[mem.read[address>>13]].Contended
}

// Read implements the cpu.Bus interface.
func (mem *Memory) Read(address uint16, clock int) (uint8, int) {
	b := &mem.arena[mem.read[address>>13]]
	if b.Contended {
		clock += mem.table.Delay(clock)
	}
	data := b.Data[address&0x1fff]
	if mem.observer != nil {
		mem.observer.MemoryAccess(AccessRead, address, data, clock)
	}
	return data, clock + 3
}

// Fetch implements the cpu.Bus interface.
func (mem *Memory) Fetch(address uint16, clock int) (uint8, int) {
	b := &mem.arena[mem.read[address>>13]]
	if b.Contended {
		clock += mem.table.Delay(clock)
	}
	data := b.Data[address&0x1fff]
	if mem.observer != nil {
		mem.observer.MemoryAccess(AccessFetch, address, data, clock)
	}
	return data, clock + 3
}

// Write implements the cpu.Bus interface.
func (mem *Memory) Write(address uint16, data uint8, clock int) int {
	idx := mem.write[address>>13]
	b := &mem.arena[idx]
	if b.Contended {
		clock += mem.table.Delay(clock)
	}

	// the screen is brought up to date with the end of the write cycle. the
	// new value is seen by display fetches after that
	offset := address & 0x1fff
	if idx == mem.displayBank && offset < displaySize && b.Data[offset] != data {
		if mem.screen != nil {
			mem.screen.Flush(clock + 3)
		}
	}

	b.Data[offset] = data
	if mem.observer != nil {
		mem.observer.MemoryAccess(AccessWrite, address, data, clock)
	}
	return clock + 3
}

// ReadWord implements the cpu.Bus interface.
func (mem *Memory) ReadWord(address uint16, clock int) (uint16, int) {
	var lo, hi uint8
	lo, clock = mem.Read(address, clock)
	hi, clock = mem.Read(address+1, clock)
	return uint16(hi)<<8 | uint16(lo), clock
}

// WriteWord implements the cpu.Bus interface.
func (mem *Memory) WriteWord(address uint16, data uint16, clock int) int {
	clock = mem.Write(address, uint8(data), clock)
	return mem.Write(address+1, uint8(data>>8), clock)
}

// Contend implements the cpu.Bus interface.
func (mem *Memory) Contend(address uint16, time int, count int, clock int) int {
	return mem.table.Contend(mem.Contended(address), time, count, clock)
}

// Peek returns the value at the address without any timing.
func (mem *Memory) Peek(address uint16) uint8 {
	return mem.arena[mem.read[address>>13]].Data[address&0x1fff]
}

// Poke writes the value to the address without any timing. Writes to
// read-only windows are discarded.
func (mem *Memory) Poke(address uint16, data uint8) {
	mem.arena[mem.write[address>>13]].Data[address&0x1fff] = data
}

// Sentinal errors.
const (
	WrongSize = "memory: %s: data should be %d bytes not %d"
)

// LoadROM copies a 16K ROM image into the arena.
func (mem *Memory) LoadROM(rom int, data []uint8) error {
	if len(data) != BankSize*2 {
		return curated.Errorf(WrongSize, "rom", BankSize*2, len(data))
	}
	copy(mem.arena[ROMIndex(rom*2)].Data[:], data[:BankSize])
	copy(mem.arena[ROMIndex(rom*2+1)].Data[:], data[BankSize:])
	return nil
}

// RAM16 returns a copy of the 16K RAM bank.
func (mem *Memory) RAM16(bank int) []uint8 {
	d := make([]uint8, 0, BankSize*2)
	d = append(d, mem.arena[RAMIndex(bank*2)].Data[:]...)
	d = append(d, mem.arena[RAMIndex(bank*2+1)].Data[:]...)
	return d
}

// SetRAM16 replaces the contents of the 16K RAM bank.
func (mem *Memory) SetRAM16(bank int, data []uint8) error {
	if len(data) != BankSize*2 {
		return curated.Errorf(WrongSize, "ram", BankSize*2, len(data))
	}
	copy(mem.arena[RAMIndex(bank*2)].Data[:], data[:BankSize])
	copy(mem.arena[RAMIndex(bank*2+1)].Data[:], data[BankSize:])
	return nil
}

// ClearRAM sets every RAM bank to zero.
func (mem *Memory) ClearRAM() {
	for i := range numRAM {
		clear(mem.arena[RAMIndex(i)].Data[:])
	}
}
