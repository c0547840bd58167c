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
	"bytes"
	"encoding/binary"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/specification"
)

// lengths of the Z80 header and of the extended header for each version
const (
	z80Header   = 30
	z80V2       = 23
	z80V3       = 54
	z80V3Paging = 55
)

// bits in byte 12 of the header
const (
	z80FlagR7         = 0x01
	z80FlagCompressed = 0x20
)

// bits in byte 37 of the header
const (
	z80AYInUse  = 0x04
	z80Modified = 0x80
)

// the end of a version 1 compressed memory image
var z80EndMarker = []uint8{0x00, rleMarker, rleMarker, 0x00}

// hardware types of the extended header
const (
	z80Type48K      = 0
	z80Type48KIF1   = 1
	z80TypeSamRam   = 2
	z80Type128KV2   = 3
	z80Type128K     = 4
	z80Type128KIF1  = 5
	z80Type128KMGT  = 6
	z80TypePlus3    = 7
	z80TypePlus3Alt = 8
	z80TypePentagon = 9
	z80TypePlus2    = 12
	z80TypePlus2A   = 13
)

// z80Spec returns the specification for the hardware type in the extended
// header. The meaning of types 3 and 4 depends on the header version.
func z80Spec(hardware uint8, version int, modified bool) (specification.Spec, error) {
	var spec specification.Spec

	switch hardware {
	case z80Type48K, z80Type48KIF1:
		spec = specification.Spec48K
		if modified {
			spec = specification.Spec16K
		}
	case z80Type128KV2:
		if version == z80V2 {
			spec = specification.Spec128K
		} else {
			spec = specification.Spec48K
		}
	case z80Type128K, z80Type128KIF1, z80Type128KMGT:
		spec = specification.Spec128K
		if modified {
			spec = specification.SpecPlus2
		}
	case z80TypePlus3, z80TypePlus3Alt:
		spec = specification.SpecPlus3
		if modified {
			spec = specification.SpecPlus2A
		}
	case z80TypePentagon:
		spec = specification.SpecPentagon
	case z80TypePlus2:
		spec = specification.SpecPlus2
	case z80TypePlus2A:
		spec = specification.SpecPlus2A
	default:
		return spec, curated.Errorf(UnsupportedHardware, "z80", hardware)
	}

	return spec, nil
}

// z80Hardware is the inverse of z80Spec for version 3 headers.
func z80Hardware(spec specification.Spec) (uint8, bool) {
	switch spec.Model {
	case specification.Model16K:
		return z80Type48K, true
	case specification.Model48K:
		return z80Type48K, false
	case specification.Model128K:
		return z80Type128K, false
	case specification.ModelPlus2:
		return z80TypePlus2, false
	case specification.ModelPlus2A:
		return z80TypePlus2A, false
	case specification.ModelPlus3:
		return z80TypePlus3, false
	}
	return z80TypePentagon, false
}

// the bank that a page of the Z80 format is loaded into. pages 0 to 2 are ROM
// and are ignored. the second return value is false for ROM pages
func z80Bank(spec specification.Spec, page uint8) (int, bool, error) {
	if page <= 2 {
		return 0, false, nil
	}

	if spec.Is128K() {
		if page > 10 {
			return 0, false, curated.Errorf(BadPage, "z80", page)
		}
		return int(page) - 3, true, nil
	}

	switch page {
	case 4:
		return 2, true, nil
	case 5:
		return 0, true, nil
	case 8:
		return 5, true, nil
	}
	return 0, false, curated.Errorf(BadPage, "z80", page)
}

// the page number of a bank. the inverse of z80Bank
func z80Page(spec specification.Spec, bank int) uint8 {
	if spec.Is128K() {
		return uint8(bank + 3)
	}
	switch bank {
	case 2:
		return 4
	case 0:
		return 5
	}
	return 8
}

// LoadZ80 parses a snapshot in the Z80 format. All three versions of the
// format are supported.
func LoadZ80(data []uint8) (*State, error) {
	if len(data) < z80Header {
		return nil, curated.Errorf(Truncated, "z80", "header")
	}

	le := binary.LittleEndian

	flags := data[12]
	if flags == 0xff {
		flags = 0x01
	}

	st := &State{}
	r := &st.Registers

	r.A = data[0]
	r.F = data[1]
	r.SetBC(le.Uint16(data[2:]))
	r.SetHL(le.Uint16(data[4:]))
	r.PC = le.Uint16(data[6:])
	r.SP = le.Uint16(data[8:])
	r.I = data[10]
	r.R = data[11]&0x7f | (flags&z80FlagR7)<<7
	r.SetDE(le.Uint16(data[13:]))
	r.AltBC = le.Uint16(data[15:])
	r.AltDE = le.Uint16(data[17:])
	r.AltHL = le.Uint16(data[19:])
	r.AltAF = uint16(data[21])<<8 | uint16(data[22])
	r.IY = le.Uint16(data[23:])
	r.IX = le.Uint16(data[25:])
	r.IFF1 = data[27] != 0
	r.IFF2 = data[28] != 0
	r.IM = data[29] & 0x03

	st.Issue2 = data[29]&0x04 == 0x04
	st.Border = (flags >> 1) & 0x07
	st.PortFE = st.Border

	// version 1 is a 48K memory image
	if r.PC != 0 {
		img := data[z80Header:]
		if flags&z80FlagCompressed == z80FlagCompressed {
			var err error
			img, err = Decompress(bytes.TrimSuffix(img, z80EndMarker), 3*BankSize)
			if err != nil {
				return nil, err
			}
		} else if len(img) < 3*BankSize {
			return nil, curated.Errorf(Truncated, "z80", "memory")
		}

		st.Spec = specification.Spec48K
		for i, b := range banks48K {
			st.RAM[b] = append([]uint8(nil), img[i*BankSize:(i+1)*BankSize]...)
		}

		return st, nil
	}

	if len(data) < z80Header+2 {
		return nil, curated.Errorf(Truncated, "z80", "header")
	}

	version := int(le.Uint16(data[z80Header:]))
	switch version {
	case z80V2, z80V3, z80V3Paging:
	default:
		return nil, curated.Errorf(UnsupportedVersion, "z80", version)
	}

	offset := z80Header + 2
	if len(data) < offset+version {
		return nil, curated.Errorf(Truncated, "z80", "header")
	}
	ext := data[offset : offset+version]

	spec, err := z80Spec(ext[2], version, ext[5]&z80Modified == z80Modified)
	if err != nil {
		return nil, err
	}

	st.Spec = spec
	for _, b := range st.Banks() {
		st.RAM[b] = make([]uint8, BankSize)
	}

	r.PC = le.Uint16(ext[0:])
	if spec.Is128K() {
		st.Port7FFD = ext[3]
	}

	if spec.HasAY || ext[5]&z80AYInUse == z80AYInUse {
		st.AY = &AY{Selected: ext[6] & 0x0f}
		copy(st.AY.Registers[:], ext[7:23])
	}

	if version != z80V2 {
		low := int(le.Uint16(ext[23:]))
		high := int(ext[25])
		quarter := spec.FrameLength / 4
		st.TStates = ((high+1)%4+1)*quarter - (low + 1)
		if st.TStates < 0 || st.TStates >= spec.FrameLength {
			st.TStates = 0
		}
	}

	if version == z80V3Paging && spec.Paging == specification.PagingPlus3 {
		st.Port1FFD = ext[54]
	}

	offset += version
	for offset < len(data) {
		if len(data)-offset < 3 {
			return nil, curated.Errorf(Truncated, "z80", "page header")
		}

		length := int(le.Uint16(data[offset:]))
		page := data[offset+2]
		offset += 3

		var raw []uint8
		if length == 0xffff {
			if len(data)-offset < BankSize {
				return nil, curated.Errorf(Truncated, "z80", "page")
			}
			raw = data[offset : offset+BankSize]
			offset += BankSize
		} else {
			if len(data)-offset < length {
				return nil, curated.Errorf(Truncated, "z80", "page")
			}
			raw, err = Decompress(data[offset:offset+length], BankSize)
			if err != nil {
				return nil, err
			}
			offset += length
		}

		b, ok, err := z80Bank(spec, page)
		if err != nil {
			return nil, err
		}
		if ok {
			copy(st.bank(b), raw)
		}
	}

	return st, nil
}

// SaveZ80 encodes the State as a version 3 Z80 file with compressed memory
// pages. The longer version 3 header is used by models with the 0x1ffd paging
// register.
func SaveZ80(st *State) ([]uint8, error) {
	le := binary.LittleEndian
	r := &st.Registers

	version := z80V3
	if st.Spec.Paging == specification.PagingPlus3 {
		version = z80V3Paging
	}

	data := make([]uint8, z80Header+2+version)

	data[0] = r.A
	data[1] = r.F
	le.PutUint16(data[2:], r.BC())
	le.PutUint16(data[4:], r.HL())
	le.PutUint16(data[8:], r.SP)
	data[10] = r.I
	data[11] = r.R & 0x7f
	data[12] = (r.R>>7)&z80FlagR7 | (st.Border&0x07)<<1
	le.PutUint16(data[13:], r.DE())
	le.PutUint16(data[15:], r.AltBC)
	le.PutUint16(data[17:], r.AltDE)
	le.PutUint16(data[19:], r.AltHL)
	data[21] = uint8(r.AltAF >> 8)
	data[22] = uint8(r.AltAF)
	le.PutUint16(data[23:], r.IY)
	le.PutUint16(data[25:], r.IX)
	if r.IFF1 {
		data[27] = 0x01
	}
	if r.IFF2 {
		data[28] = 0x01
	}
	data[29] = r.IM & 0x03
	if st.Issue2 {
		data[29] |= 0x04
	}

	le.PutUint16(data[z80Header:], uint16(version))
	ext := data[z80Header+2:]

	hardware, modified := z80Hardware(st.Spec)
	le.PutUint16(ext[0:], r.PC)
	ext[2] = hardware
	ext[3] = st.Port7FFD
	if modified {
		ext[5] |= z80Modified
	}

	if st.AY != nil {
		if !st.Spec.HasAY {
			ext[5] |= z80AYInUse
		}
		ext[6] = st.AY.Selected
		copy(ext[7:23], st.AY.Registers[:])
	}

	quarter := st.Spec.FrameLength / 4
	tstates := st.TStates
	if tstates < 0 || tstates >= st.Spec.FrameLength {
		tstates = 0
	}
	le.PutUint16(ext[23:], uint16(quarter-tstates%quarter-1))
	ext[25] = uint8((tstates/quarter + 3) % 4)

	if version == z80V3Paging {
		ext[54] = st.Port1FFD
	}

	for _, b := range st.Banks() {
		raw := st.RAM[b]
		if raw == nil {
			raw = make([]uint8, BankSize)
		}

		var hdr [3]uint8
		hdr[2] = z80Page(st.Spec, b)

		c := Compress(raw)
		if len(c) >= BankSize {
			le.PutUint16(hdr[:], 0xffff)
			data = append(data, hdr[:]...)
			data = append(data, raw...)
		} else {
			le.PutUint16(hdr[:], uint16(len(c)))
			data = append(data, hdr[:]...)
			data = append(data, c...)
		}
	}

	return data, nil
}
