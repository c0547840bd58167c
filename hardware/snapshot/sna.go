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
	"encoding/binary"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/specification"
)

// lengths of the SNA variants
const (
	snaHeader = 27

	// 48K. the header followed by the 48K memory map
	sna48K = snaHeader + 3*BankSize

	// 128K. banks 5, 2 and the paged bank, followed by PC, the paging
	// register, the TR-DOS flag and the remaining five banks
	sna128K = sna48K + 4 + 5*BankSize

	// as above but when the paged bank is 2 or 5 it is stored twice
	sna128KLong = sna128K + BankSize
)

// LoadSNA parses a snapshot in the SNA format.
func LoadSNA(data []uint8) (*State, error) {
	var st *State

	switch len(data) {
	case sna48K:
		st = NewState(specification.Spec48K)
	case sna128K, sna128KLong:
		st = NewState(specification.Spec128K)
	default:
		return nil, curated.Errorf(UnsupportedLength, len(data))
	}

	le := binary.LittleEndian
	r := &st.Registers

	r.I = data[0]
	r.AltHL = le.Uint16(data[1:])
	r.AltDE = le.Uint16(data[3:])
	r.AltBC = le.Uint16(data[5:])
	r.AltAF = le.Uint16(data[7:])
	r.SetHL(le.Uint16(data[9:]))
	r.SetDE(le.Uint16(data[11:]))
	r.SetBC(le.Uint16(data[13:]))
	r.IY = le.Uint16(data[15:])
	r.IX = le.Uint16(data[17:])
	r.IFF2 = data[19]&0x04 == 0x04
	r.IFF1 = r.IFF2
	r.R = data[20]
	r.SetAF(le.Uint16(data[21:]))
	r.SP = le.Uint16(data[23:])
	r.IM = data[25] & 0x03
	st.Border = data[26] & 0x07
	st.PortFE = st.Border

	if !st.Spec.Is128K() {
		for i, b := range banks48K {
			copy(st.RAM[b], data[snaHeader+i*BankSize:])
		}

		// the program counter was pushed onto the stack when the snapshot
		// was made
		r.PC = uint16(st.Peek(r.SP)) | uint16(st.Peek(r.SP+1))<<8
		r.SP += 2

		return st, nil
	}

	// the paging register must be read before the paged bank can be placed
	r.PC = le.Uint16(data[sna48K:])
	st.Port7FFD = data[sna48K+2]
	paged := st.PagedBank()

	if (paged == 2 || paged == 5) && len(data) != sna128KLong {
		return nil, curated.Errorf(Truncated, "sna", "memory")
	}

	copy(st.RAM[5], data[snaHeader:])
	copy(st.RAM[2], data[snaHeader+BankSize:])
	copy(st.RAM[paged], data[snaHeader+2*BankSize:])

	offset := sna48K + 4
	for b := range numBanks {
		if b == 5 || b == 2 || b == paged {
			continue
		}
		copy(st.RAM[b], data[offset:])
		offset += BankSize
	}

	return st, nil
}

// SaveSNA encodes the State in the SNA format. 16K and 48K models produce the
// 48K variant and every other model the 128K variant.
func SaveSNA(st *State) ([]uint8, error) {
	if !st.Spec.Is128K() {
		data := make([]uint8, sna48K)

		// the program counter is pushed onto the stack in the copy of the
		// memory. the State itself is unchanged
		sp := st.Registers.SP - 2
		snaRegisters(st, data, sp)

		for i, b := range banks48K {
			if st.RAM[b] != nil {
				copy(data[snaHeader+i*BankSize:], st.RAM[b])
			}
		}

		push := func(address uint16, v uint8) {
			if address >= 0x4000 {
				data[snaHeader+int(address)-0x4000] = v
			}
		}
		push(sp, uint8(st.Registers.PC))
		push(sp+1, uint8(st.Registers.PC>>8))

		return data, nil
	}

	paged := st.PagedBank()

	data := make([]uint8, sna128K)
	if paged == 2 || paged == 5 {
		data = make([]uint8, sna128KLong)
	}

	snaRegisters(st, data, st.Registers.SP)

	bank := func(offset int, b int) {
		if st.RAM[b] != nil {
			copy(data[offset:offset+BankSize], st.RAM[b])
		}
	}

	bank(snaHeader, 5)
	bank(snaHeader+BankSize, 2)
	bank(snaHeader+2*BankSize, paged)

	binary.LittleEndian.PutUint16(data[sna48K:], st.Registers.PC)
	data[sna48K+2] = st.Port7FFD
	data[sna48K+3] = 0

	offset := sna48K + 4
	for b := range numBanks {
		if b == 5 || b == 2 || b == paged {
			continue
		}
		bank(offset, b)
		offset += BankSize
	}

	return data, nil
}

// snaRegisters writes the 27 byte header. The stack pointer is an argument
// because the 48K variant stores the value after PC has been pushed.
func snaRegisters(st *State, data []uint8, sp uint16) {
	le := binary.LittleEndian
	r := &st.Registers

	data[0] = r.I
	le.PutUint16(data[1:], r.AltHL)
	le.PutUint16(data[3:], r.AltDE)
	le.PutUint16(data[5:], r.AltBC)
	le.PutUint16(data[7:], r.AltAF)
	le.PutUint16(data[9:], r.HL())
	le.PutUint16(data[11:], r.DE())
	le.PutUint16(data[13:], r.BC())
	le.PutUint16(data[15:], r.IY)
	le.PutUint16(data[17:], r.IX)
	if r.IFF2 {
		data[19] = 0x04
	}
	data[20] = r.R
	le.PutUint16(data[21:], r.AF())
	le.PutUint16(data[23:], sp)
	data[25] = r.IM
	data[26] = st.Border & 0x07
}
