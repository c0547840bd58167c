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
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/specification"
)

// the SZX file header
const (
	szxMagic  = "ZXST"
	szxMajor  = 1
	szxMinor  = 4
	szxHeader = 8

	// flags in the header
	szxAlternateTimings = 0x01

	// the largest embedded tape that will be decompressed
	maxTapeSize = 16 * 1024 * 1024
)

// creator information written to the CRTR chunk
const (
	creatorName  = "ZXCore"
	creatorMajor = 1
	creatorMinor = 0
)

// chunk identifiers
const (
	chunkCreator  = "CRTR"
	chunkZ80Regs  = "Z80R"
	chunkSpecRegs = "SPCR"
	chunkKeyboard = "KEYB"
	chunkAY       = "AY\x00\x00"
	chunkPalette  = "PLTT"
	chunkRAMPage  = "RAMP"
	chunkTape     = "TAPE"
	chunkPlus3    = "+3\x00\x00"
	chunkDisk     = "DSK\x00"
)

// fixed lengths of chunks. some chunks are followed by variable length data
const (
	lenCreator  = 36
	lenZ80Regs  = 37
	lenSpecRegs = 8
	lenKeyboard = 5
	lenAY       = 18
	lenPalette  = 66
	lenRAMPage  = 3
	lenTape     = 28
	lenPlus3    = 2
	lenDisk     = 7
)

// chunk flags
const (
	z80RegsEILast = 0x01
	z80RegsHalted = 0x02

	keyboardIssue2 = 0x01

	paletteEnabled = 0x01

	ramPageCompressed = 0x01

	tapeEmbedded   = 0x01
	tapeCompressed = 0x02

	diskEmbedded = 0x01
)

// LoadSZX parses a snapshot in the SZX format. Chunks that are not recognised
// are skipped.
func LoadSZX(data []uint8) (*State, error) {
	if len(data) < szxHeader {
		return nil, curated.Errorf(Truncated, "szx", "header")
	}
	if string(data[:4]) != szxMagic {
		return nil, curated.Errorf(BadMagic)
	}
	if data[4] != szxMajor {
		return nil, curated.Errorf(UnsupportedVersion, "szx", data[4])
	}

	spec, ok := specification.SearchSZX(data[6])
	if !ok {
		return nil, curated.Errorf(UnsupportedHardware, "szx", data[6])
	}

	st := NewState(spec)
	st.LateTimings = data[7]&szxAlternateTimings == szxAlternateTimings

	le := binary.LittleEndian

	offset := szxHeader
	for offset < len(data) {
		if len(data)-offset < 8 {
			return nil, curated.Errorf(Truncated, "szx", "chunk header")
		}

		id := string(data[offset : offset+4])
		size := int(le.Uint32(data[offset+4:]))
		offset += 8

		if size > len(data)-offset {
			return nil, curated.Errorf(Truncated, "szx", strings.TrimRight(id, "\x00"))
		}

		chunk := data[offset : offset+size]
		offset += size

		if err := st.szxChunk(id, chunk); err != nil {
			return nil, err
		}
	}

	// MEMPTR was recorded as a single byte before version 1.4
	if data[5] < 4 {
		st.Registers.MemPtr &= 0x00ff
	}

	return st, nil
}

// szxChunk decodes a single chunk into the State.
func (st *State) szxChunk(id string, c []uint8) error {
	need := func(n int) error {
		if len(c) < n {
			return curated.Errorf(Truncated, "szx", strings.TrimRight(id, "\x00"))
		}
		return nil
	}

	le := binary.LittleEndian

	switch id {
	case chunkCreator:
		if err := need(lenCreator); err != nil {
			return err
		}
		st.Creator = cString(c[:32])

	case chunkZ80Regs:
		if err := need(lenZ80Regs); err != nil {
			return err
		}
		r := &st.Registers
		r.F, r.A = c[0], c[1]
		r.C, r.B = c[2], c[3]
		r.E, r.D = c[4], c[5]
		r.L, r.H = c[6], c[7]
		r.AltAF = le.Uint16(c[8:])
		r.AltBC = le.Uint16(c[10:])
		r.AltDE = le.Uint16(c[12:])
		r.AltHL = le.Uint16(c[14:])
		r.IX = le.Uint16(c[16:])
		r.IY = le.Uint16(c[18:])
		r.SP = le.Uint16(c[20:])
		r.PC = le.Uint16(c[22:])
		r.I = c[24]
		r.R = c[25]
		r.IFF1 = c[26] != 0
		r.IFF2 = c[27] != 0
		r.IM = c[28] & 0x03
		st.TStates = int(le.Uint32(c[29:]))
		if st.TStates >= st.Spec.FrameLength {
			st.TStates = 0
		}
		st.EILast = c[34]&z80RegsEILast == z80RegsEILast
		st.Halted = c[34]&z80RegsHalted == z80RegsHalted
		r.MemPtr = le.Uint16(c[35:])

	case chunkSpecRegs:
		if err := need(lenSpecRegs); err != nil {
			return err
		}
		st.Border = c[0] & 0x07
		st.Port7FFD = c[1]
		st.Port1FFD = c[2]
		st.PortFE = c[3]

	case chunkKeyboard:
		if err := need(lenKeyboard); err != nil {
			return err
		}
		st.Issue2 = le.Uint32(c)&keyboardIssue2 == keyboardIssue2
		st.Joystick = c[4]

	case chunkAY:
		if err := need(lenAY); err != nil {
			return err
		}
		st.AY = &AY{Selected: c[1] & 0x0f}
		copy(st.AY.Registers[:], c[2:18])

	case chunkPalette:
		if err := need(lenPalette); err != nil {
			return err
		}
		st.Palette = &Palette{
			Enabled:  c[0]&paletteEnabled == paletteEnabled,
			Register: c[1],
		}
		copy(st.Palette.Entries[:], c[2:66])

	case chunkRAMPage:
		if err := need(lenRAMPage); err != nil {
			return err
		}
		page := int(c[2])
		if page >= numBanks {
			return curated.Errorf(BadPage, "szx", page)
		}

		raw := c[lenRAMPage:]
		if le.Uint16(c)&ramPageCompressed == ramPageCompressed {
			var err error
			raw, err = inflate(raw, BankSize)
			if err != nil {
				return err
			}
		}
		if len(raw) != BankSize {
			return curated.Errorf(PageSize, "szx", page, len(raw))
		}
		st.RAM[page] = append([]uint8(nil), raw...)

	case chunkTape:
		if err := need(lenTape); err != nil {
			return err
		}
		flags := le.Uint16(c[2:])
		size := int(le.Uint32(c[8:]))
		if err := need(lenTape + size); err != nil {
			return err
		}
		payload := c[lenTape : lenTape+size]

		st.Tape = &Tape{
			Block:     int(le.Uint16(c)),
			Extension: cString(c[12:28]),
		}

		if flags&tapeEmbedded != tapeEmbedded {
			st.Tape.Filename = cString(payload)
			break
		}

		if flags&tapeCompressed == tapeCompressed {
			uncompressed := int(le.Uint32(c[4:]))
			if uncompressed > maxTapeSize {
				return curated.Errorf(TapeSize, "szx", uncompressed)
			}

			var err error
			payload, err = inflate(payload, uncompressed)
			if err != nil {
				return err
			}
			if len(payload) != uncompressed {
				return curated.Errorf(Truncated, "szx", "tape")
			}
		}
		st.Tape.Data = append([]uint8(nil), payload...)

	case chunkPlus3:
		if err := need(lenPlus3); err != nil {
			return err
		}
		if st.Disk == nil {
			st.Disk = &Disk{}
		}
		st.Disk.Drives = int(c[0])
		st.Disk.MotorOn = c[1] != 0

	case chunkDisk:
		if err := need(lenDisk); err != nil {
			return err
		}
		if st.Disk == nil {
			st.Disk = &Disk{}
		}
		f := DiskFile{
			Drive:    int(c[2]),
			Embedded: le.Uint16(c)&diskEmbedded == diskEmbedded,
		}
		if !f.Embedded {
			f.Filename = cString(c[lenDisk:])
		}
		st.Disk.Files = append(st.Disk.Files, f)
	}

	return nil
}

// SaveSZX encodes the State in the SZX format.
func SaveSZX(st *State) ([]uint8, error) {
	le := binary.LittleEndian

	var buf bytes.Buffer

	buf.WriteString(szxMagic)
	buf.WriteByte(szxMajor)
	buf.WriteByte(szxMinor)
	buf.WriteByte(st.Spec.SZXID)
	if st.LateTimings {
		buf.WriteByte(szxAlternateTimings)
	} else {
		buf.WriteByte(0)
	}

	crtr := make([]uint8, lenCreator)
	copy(crtr[:31], creatorName)
	le.PutUint16(crtr[32:], creatorMajor)
	le.PutUint16(crtr[34:], creatorMinor)
	writeChunk(&buf, chunkCreator, crtr)

	r := &st.Registers
	z80r := make([]uint8, lenZ80Regs)
	z80r[0], z80r[1] = r.F, r.A
	z80r[2], z80r[3] = r.C, r.B
	z80r[4], z80r[5] = r.E, r.D
	z80r[6], z80r[7] = r.L, r.H
	le.PutUint16(z80r[8:], r.AltAF)
	le.PutUint16(z80r[10:], r.AltBC)
	le.PutUint16(z80r[12:], r.AltDE)
	le.PutUint16(z80r[14:], r.AltHL)
	le.PutUint16(z80r[16:], r.IX)
	le.PutUint16(z80r[18:], r.IY)
	le.PutUint16(z80r[20:], r.SP)
	le.PutUint16(z80r[22:], r.PC)
	z80r[24] = r.I
	z80r[25] = r.R
	z80r[26] = boolByte(r.IFF1)
	z80r[27] = boolByte(r.IFF2)
	z80r[28] = r.IM
	le.PutUint32(z80r[29:], uint32(max(st.TStates, 0)))
	z80r[33] = uint8(st.Spec.InterruptPeriod)
	if st.EILast {
		z80r[34] |= z80RegsEILast
	}
	if st.Halted {
		z80r[34] |= z80RegsHalted
	}
	le.PutUint16(z80r[35:], r.MemPtr)
	writeChunk(&buf, chunkZ80Regs, z80r)

	writeChunk(&buf, chunkSpecRegs, []uint8{
		st.Border & 0x07, st.Port7FFD, st.Port1FFD, st.PortFE, 0, 0, 0, 0,
	})

	keyb := make([]uint8, lenKeyboard)
	if st.Issue2 {
		le.PutUint32(keyb, keyboardIssue2)
	}
	keyb[4] = st.Joystick
	writeChunk(&buf, chunkKeyboard, keyb)

	if st.Palette != nil {
		pltt := make([]uint8, lenPalette)
		pltt[0] = boolByte(st.Palette.Enabled)
		pltt[1] = st.Palette.Register
		copy(pltt[2:], st.Palette.Entries[:])
		writeChunk(&buf, chunkPalette, pltt)
	}

	if st.AY != nil {
		ay := make([]uint8, lenAY)
		ay[1] = st.AY.Selected
		copy(ay[2:], st.AY.Registers[:])
		writeChunk(&buf, chunkAY, ay)
	}

	for _, b := range st.Banks() {
		raw := st.RAM[b]
		if raw == nil {
			raw = make([]uint8, BankSize)
		}

		c, err := deflate(raw)
		if err != nil {
			return nil, err
		}

		ramp := make([]uint8, lenRAMPage, lenRAMPage+len(c))
		le.PutUint16(ramp, ramPageCompressed)
		ramp[2] = uint8(b)
		writeChunk(&buf, chunkRAMPage, append(ramp, c...))
	}

	if st.Spec.HasDisk {
		plus3 := []uint8{1, 0}
		if st.Disk != nil {
			plus3[0] = uint8(st.Disk.Drives)
			plus3[1] = boolByte(st.Disk.MotorOn)
		}
		writeChunk(&buf, chunkPlus3, plus3)

		// embedded disk images are not preserved
		if st.Disk != nil {
			for _, f := range st.Disk.Files {
				if f.Embedded {
					continue
				}
				dsk := make([]uint8, lenDisk)
				dsk[2] = uint8(f.Drive)
				dsk = append(dsk, f.Filename...)
				dsk = append(dsk, 0)
				writeChunk(&buf, chunkDisk, dsk)
			}
		}
	}

	if st.Tape != nil && (st.Tape.Filename != "" || st.Tape.Data != nil) {
		tape := make([]uint8, lenTape)
		le.PutUint16(tape, uint16(st.Tape.Block))
		copy(tape[12:27], st.Tape.Extension)

		var payload []uint8
		if st.Tape.Data != nil {
			c, err := deflate(st.Tape.Data)
			if err != nil {
				return nil, err
			}
			le.PutUint16(tape[2:], tapeEmbedded|tapeCompressed)
			le.PutUint32(tape[4:], uint32(len(st.Tape.Data)))
			payload = c
		} else {
			payload = append([]uint8(st.Tape.Filename), 0)
		}
		le.PutUint32(tape[8:], uint32(len(payload)))
		writeChunk(&buf, chunkTape, append(tape, payload...))
	}

	return buf.Bytes(), nil
}

func writeChunk(buf *bytes.Buffer, id string, data []uint8) {
	var hdr [8]uint8
	copy(hdr[:4], id)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(data)))
	buf.Write(hdr[:])
	buf.Write(data)
}

// inflate reads no more than one byte past the expected size of the
// decompressed data. the caller checks the length of the result
func inflate(data []uint8, expected int) ([]uint8, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf(CompressionError, "szx", err)
	}
	defer r.Close()

	d, err := io.ReadAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, curated.Errorf(CompressionError, "szx", err)
	}
	return d, nil
}

func deflate(data []uint8) ([]uint8, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, curated.Errorf(CompressionError, "szx", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, curated.Errorf(CompressionError, "szx", err)
	}
	if err := w.Close(); err != nil {
		return nil, curated.Errorf(CompressionError, "szx", err)
	}
	return buf.Bytes(), nil
}

// cString returns the string up to the first zero byte.
func cString(b []uint8) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
