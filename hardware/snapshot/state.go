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

package snapshot

import (
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/specification"
)

// BankSize is the size of a RAM bank in a snapshot.
const BankSize = 16384

// the number of 16K RAM banks in the largest machine
const numBanks = 8

// the RAM banks occupying 0x4000, 0x8000 and 0xc000 in the 48K memory map
var banks48K = [3]int{5, 2, 0}

// AY is the state of the AY-3-8912 sound chip.
type AY struct {
	Selected  uint8
	Registers [16]uint8
}

// Palette is the state of the ULA+ palette extension. Entries are in the
// packed G3R3B2 format.
type Palette struct {
	Enabled  bool
	Register uint8
	Entries  [64]uint8
}

// Tape records the tape that was inserted when the snapshot was made. Data is
// nil if the tape is not embedded in the snapshot, in which case Filename is
// the name of the tape file.
type Tape struct {
	Block     int
	Extension string
	Filename  string
	Data      []uint8
}

// DiskFile is a disk image inserted in a drive.
type DiskFile struct {
	Drive    int
	Filename string
	Embedded bool
}

// Disk is the state of the floppy disk interface.
type Disk struct {
	Drives  int
	MotorOn bool
	Files   []DiskFile
}

// State is the machine state shared by all snapshot formats. Fields that a
// format does not support are left at their zero value on load and ignored
// on save.
type State struct {
	Spec specification.Spec

	Registers cpu.Registers
	Halted    bool
	EILast    bool
	TStates   int

	Border   uint8
	Port7FFD uint8
	Port1FFD uint8
	PortFE   uint8

	Issue2      bool
	LateTimings bool
	Joystick    uint8

	// RAM banks by bank number. a nil entry is a bank not present in the
	// snapshot
	RAM [numBanks][]uint8

	// optional devices. nil if not present
	AY      *AY
	Palette *Palette
	Tape    *Tape
	Disk    *Disk

	// the name of the program that created the snapshot, if known
	Creator string
}

// NewState is the preferred method of initialisation for the State type.
// Every RAM bank used by the specification is allocated and zeroed.
func NewState(spec specification.Spec) *State {
	st := &State{Spec: spec}
	for _, b := range st.Banks() {
		st.RAM[b] = make([]uint8, BankSize)
	}
	return st
}

// Banks returns the bank numbers used by the State's specification, in the
// order they appear in the memory map.
func (st *State) Banks() []int {
	switch st.Spec.RAMBanks {
	case 1:
		return banks48K[:1]
	case 3:
		return banks48K[:]
	}
	return []int{0, 1, 2, 3, 4, 5, 6, 7}
}

// PagedBank returns the RAM bank paged into 0xc000.
func (st *State) PagedBank() int {
	if !st.Spec.Is128K() {
		return 0
	}
	return int(st.Port7FFD & 0x07)
}

// bank returns the RAM bank, allocating it if necessary.
func (st *State) bank(b int) []uint8 {
	if st.RAM[b] == nil {
		st.RAM[b] = make([]uint8, BankSize)
	}
	return st.RAM[b]
}

// location translates an address in the upper 48K of the memory map to a
// bank and an offset in that bank. The bank at 0xc000 is the paged bank.
func (st *State) location(address uint16) (int, int) {
	offset := int(address & 0x3fff)
	switch address >> 14 {
	case 1:
		return 5, offset
	case 2:
		return 2, offset
	}
	return st.PagedBank(), offset
}

// Peek returns the byte at the address. Addresses in ROM and in banks not
// present in the State return zero.
func (st *State) Peek(address uint16) uint8 {
	if address < 0x4000 {
		return 0
	}
	b, o := st.location(address)
	if st.RAM[b] == nil {
		return 0
	}
	return st.RAM[b][o]
}

// Poke writes the byte to the address. Writes to ROM are ignored.
func (st *State) Poke(address uint16, data uint8) {
	if address < 0x4000 {
		return
	}
	b, o := st.location(address)
	st.bank(b)[o] = data
}

// Copy returns a deep copy of the State.
func (st *State) Copy() *State {
	n := *st
	for i, b := range st.RAM {
		if b != nil {
			n.RAM[i] = append([]uint8(nil), b...)
		}
	}
	if st.AY != nil {
		ay := *st.AY
		n.AY = &ay
	}
	if st.Palette != nil {
		p := *st.Palette
		n.Palette = &p
	}
	if st.Tape != nil {
		t := *st.Tape
		t.Data = append([]uint8(nil), st.Tape.Data...)
		n.Tape = &t
	}
	if st.Disk != nil {
		d := *st.Disk
		d.Files = append([]DiskFile(nil), st.Disk.Files...)
		n.Disk = &d
	}
	return &n
}
