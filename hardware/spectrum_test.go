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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/peripherals"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/snapshot"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/notifications"
	"github.com/zxcore/zxcore/test"
)

// attachedCPU is an Idle execution unit that keeps hold of the bus and traps
// it is attached to
type attachedCPU struct {
	*cpu.Idle
	bus   cpu.Bus
	traps cpu.Traps
}

func (p *attachedCPU) Attach(bus cpu.Bus, traps cpu.Traps) {
	p.bus = bus
	p.traps = traps
	p.Idle.Attach(bus, traps)
}

type machine struct {
	zx  *hardware.Spectrum
	p   *attachedCPU
	env *environment.Environment
	ch  *notifications.Channel
}

func newMachine(t *testing.T, spec specification.Spec) machine {
	t.Helper()

	ch := notifications.NewChannel(256)
	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), ch)
	test.DemandSuccess(t, err)
	env.Normalise()

	tv := television.NewTelevision(spec)
	tv.SetFPSCap(false)

	p := &attachedCPU{Idle: cpu.NewIdle()}
	zx, err := hardware.NewSpectrum(env, tv, p, spec)
	test.DemandSuccess(t, err)

	return machine{zx: zx, p: p, env: env, ch: ch}
}

func contains(notices []notifications.Notice, n notifications.Notice) bool {
	for _, v := range notices {
		if v == n {
			return true
		}
	}
	return false
}

func TestFrame(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	m.ch.Drain()

	err := m.zx.RunForFrameCount(1, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.zx.Frame(), 1)
	test.ExpectEquality(t, m.zx.TV.GetFrameNum(), 1)
	test.ExpectSuccess(t, contains(m.ch.Drain(), notifications.NotifyFrameEnd))

	// the clock is carried over into the next frame
	test.ExpectSuccess(t, m.p.TStates() < specification.Spec48K.InterruptPeriod)
}

func TestInterrupts(t *testing.T) {
	m := newMachine(t, specification.Spec48K)

	// EI followed by HALT at the start of the ROM and at the interrupt
	// routine. there is no RET so every interrupt is seen on the stack
	rom := make([]uint8, memory.BankSize*2)
	rom[0x0000] = 0xfb
	rom[0x0001] = 0x76
	rom[0x0038] = 0xfb
	rom[0x0039] = 0x76
	test.DemandSuccess(t, m.zx.LoadROMs(rom))

	err := m.zx.RunForFrameCount(10, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.p.Registers().SP, uint16(0xffff-2*10))
	test.ExpectFailure(t, m.zx.ResetComplete())

	err = m.zx.RunForFrameCount(90, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.p.Registers().SP, uint16(0xffff-2*100))
	test.ExpectSuccess(t, m.zx.ResetComplete())

	// the most recent interrupt was accepted in mode 1
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x003a))

	m.zx.Reset(false)
	test.ExpectFailure(t, m.zx.ResetComplete())
	test.ExpectEquality(t, m.zx.Frame(), 0)
}

func TestROMSize(t *testing.T) {
	m := newMachine(t, specification.Spec128K)
	err := m.zx.LoadROMs(make([]uint8, memory.BankSize*2))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.ROMSize))
	test.ExpectSuccess(t, m.zx.LoadROMs(make([]uint8, memory.BankSize*4)))
}

func TestPaging128K(t *testing.T) {
	m := newMachine(t, specification.Spec128K)
	b := m.p.bus

	read, _ := m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.ROMIndex(0))
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(0))

	b.Out(0x7ffd, 0x03, 0)
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(6))

	b.Out(0x7ffd, 0x10, 0)
	read, _ = m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.ROMIndex(2))
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(0))

	// shadow screen
	bank7 := make([]uint8, memory.BankSize*2)
	bank7[0] = 0xaa
	test.DemandSuccess(t, m.zx.Mem.SetRAM16(7, bank7))
	test.ExpectInequality(t, m.zx.Mem.DisplayData()[0], uint8(0xaa))
	b.Out(0x7ffd, 0x08, 0)
	test.ExpectEquality(t, m.zx.Mem.DisplayData()[0], uint8(0xaa))

	// locked paging ignores further writes
	b.Out(0x7ffd, 0x21, 0)
	b.Out(0x7ffd, 0x04, 0)
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(2))
	p7ffd, p1ffd, locked := m.zx.Paging()
	test.ExpectEquality(t, p7ffd, uint8(0x21))
	test.ExpectEquality(t, p1ffd, uint8(0x00))
	test.ExpectSuccess(t, locked)

	// reset releases the lock
	m.zx.Reset(false)
	_, _, locked = m.zx.Paging()
	test.ExpectFailure(t, locked)
	b.Out(0x7ffd, 0x04, 0)
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(8))
}

func TestPagingPlus3(t *testing.T) {
	m := newMachine(t, specification.SpecPlus3)
	b := m.p.bus

	// all RAM configuration
	b.Out(0x1ffd, 0x01, 0)
	read, write := m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.RAMIndex(0))
	test.ExpectEquality(t, write, memory.RAMIndex(0))
	read, _ = m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(6))

	b.Out(0x1ffd, 0x07, 0)
	read, _ = m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.RAMIndex(8))
	read, _ = m.zx.Mem.Binding(2)
	test.ExpectEquality(t, read, memory.RAMIndex(14))

	// four ROMs selected by bit 4 of 7ffd and bit 2 of 1ffd
	b.Out(0x1ffd, 0x04, 0)
	b.Out(0x7ffd, 0x10, 0)
	read, _ = m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.ROMIndex(6))

	// motor bit
	test.ExpectFailure(t, m.zx.DiskMotor())
	b.Out(0x1ffd, 0x0c, 0)
	test.ExpectSuccess(t, m.zx.DiskMotor())
}

func TestPagingPentagon(t *testing.T) {
	m := newMachine(t, specification.SpecPentagon)
	b := m.p.bus

	b.Out(0x7ffd, 0x21, 0)
	b.Out(0x7ffd, 0x02, 0)
	read, _ := m.zx.Mem.Binding(6)
	test.ExpectEquality(t, read, memory.RAMIndex(4))
	_, _, locked := m.zx.Paging()
	test.ExpectFailure(t, locked)
}

func TestPaging48K(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	b := m.p.bus

	before, _ := m.zx.Mem.Binding(6)
	b.Out(0x7ffd, 0x03, 0)
	after, _ := m.zx.Mem.Binding(6)
	test.ExpectEquality(t, after, before)
}

func TestPorts(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	b := m.p.bus

	// uncontended even port
	_, clock := b.In(0x00fe, 0)
	test.ExpectEquality(t, clock, 4)

	// keyboard matrix is read through the high byte of the port
	m.zx.SetKey(ula.KeyCapsShift, true)
	data, _ := b.In(0xfefe, 0)
	test.ExpectEquality(t, data&0x01, uint8(0x01))
	m.zx.ULA.RefreshInput()
	data, _ = b.In(0xfefe, 0)
	test.ExpectEquality(t, data&0x01, uint8(0x00))
	data, _ = b.In(0x7ffe, 0)
	test.ExpectEquality(t, data&0x1f, uint8(0x1f))

	// border
	b.Out(0x00fe, 0x02, 0)
	test.ExpectEquality(t, m.zx.ULA.Border(), uint8(0x02))

	// nothing responds to an odd port at the top of the frame
	data, _ = b.In(0x001f, 0)
	test.ExpectEquality(t, data, uint8(0xff))

	m.zx.Peripherals.Attach(peripherals.NewKempston(false))
	err := m.zx.Peripherals.HandleEvent(peripherals.IDKempstonJoystick, peripherals.Fire, true)
	test.DemandSuccess(t, err)
	data, _ = b.In(0x001f, 0)
	test.ExpectEquality(t, data, uint8(0x10))
}

type mixer struct {
	buffers [][]int16
	ended   bool
}

func (m *mixer) SetAudio(data []int16) error {
	m.buffers = append(m.buffers, append([]int16{}, data...))
	return nil
}

func (m *mixer) EndMixing() error {
	m.ended = true
	return nil
}

func TestAudio(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	mx := &mixer{}
	m.zx.TV.AddAudioMixer(mx)

	m.p.bus.Out(0x00fe, 0x10, 0)

	err := m.zx.RunForFrameCount(2, nil)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(mx.buffers), 2)

	for _, buf := range mx.buffers {
		test.ExpectEquality(t, len(buf), hardware.AudioBufferFrames*2)
		for _, s := range buf {
			if s != 16383 {
				t.Fatalf("unexpected sample value: %d", s)
			}
		}
	}

	test.ExpectSuccess(t, m.zx.TV.End())
	test.ExpectSuccess(t, mx.ended)
}

// a 128K machine is prepared and then snapshotted
func prepare128K(t *testing.T) *snapshot.State {
	t.Helper()

	m := newMachine(t, specification.Spec128K)
	b := m.p.bus

	b.Out(0x7ffd, 0x13, 0)
	m.zx.Mem.Poke(0xc000, 0x55)
	m.zx.Mem.Poke(0x4000, 0x66)

	b.Out(0xfffd, 0x07, 0)
	b.Out(0xbffd, 0x38, 0)
	b.Out(0x00fe, 0x03, 0)

	regs := m.p.Registers()
	regs.PC = 0x1234
	regs.SP = 0x8000
	regs.A = 0x42
	regs.IX = 0xbeef
	regs.IM = 1
	regs.IFF1 = true
	regs.IFF2 = true

	st := m.zx.Snapshot()
	test.ExpectEquality(t, st.Port7FFD, uint8(0x13))
	test.ExpectEquality(t, st.Creator, "ZXCore")
	return st
}

func checkPlumbed(t *testing.T, m machine) {
	t.Helper()

	test.ExpectEquality(t, m.zx.Spec.ID, specification.Spec128K.ID)
	p7ffd, _, locked := m.zx.Paging()
	test.ExpectEquality(t, p7ffd, uint8(0x13))
	test.ExpectFailure(t, locked)

	read, _ := m.zx.Mem.Binding(0)
	test.ExpectEquality(t, read, memory.ROMIndex(2))
	test.ExpectEquality(t, m.zx.Mem.Peek(0xc000), uint8(0x55))
	test.ExpectEquality(t, m.zx.Mem.Peek(0x4000), uint8(0x66))

	regs := m.p.Registers()
	test.ExpectEquality(t, regs.PC, uint16(0x1234))
	test.ExpectEquality(t, regs.SP, uint16(0x8000))
	test.ExpectEquality(t, regs.A, uint8(0x42))
	test.ExpectEquality(t, regs.IX, uint16(0xbeef))
	test.ExpectEquality(t, regs.IM, uint8(1))
	test.ExpectSuccess(t, regs.IFF1)

	test.ExpectEquality(t, m.zx.ULA.Border(), uint8(0x03))

	ay := test.DemandImplements[*peripherals.AY](t, m.zx.Peripherals.Get(peripherals.IDAY))
	r, selected := ay.Registers()
	test.ExpectEquality(t, r[7], uint8(0x38))
	test.ExpectEquality(t, selected, uint8(0x07))

	test.ExpectSuccess(t, m.zx.ResetComplete())
	test.ExpectSuccess(t, contains(m.ch.Drain(), notifications.NotifySnapshotLoaded))
}

func TestSnapshot(t *testing.T) {
	st := prepare128K(t)

	m := newMachine(t, specification.Spec48K)
	test.ExpectSuccess(t, m.zx.Peripherals.Get(peripherals.IDAY) == nil)
	m.ch.Drain()

	err := m.zx.Plumb(st)
	test.DemandSuccess(t, err)
	checkPlumbed(t, m)

	// the machine does not share memory with the snapshot
	m.zx.Mem.Poke(0xc000, 0x00)
	test.ExpectEquality(t, st.Peek(0xc000), uint8(0x55))
}

func TestSnapshotSZX(t *testing.T) {
	st := prepare128K(t)

	data, err := snapshot.Encode(snapshot.FormatSZX, st)
	test.DemandSuccess(t, err)
	st, err = snapshot.Decode(snapshot.FormatSZX, data)
	test.DemandSuccess(t, err)

	m := newMachine(t, specification.Spec48K)
	m.ch.Drain()

	err = m.zx.Plumb(st)
	test.DemandSuccess(t, err)
	checkPlumbed(t, m)
}

func TestSnapshotEILast(t *testing.T) {
	m := newMachine(t, specification.Spec48K)

	st := m.zx.Snapshot()
	st.Registers.PC = 0x8000
	st.Registers.SP = 0xc000
	st.Registers.IM = 1
	st.Registers.IFF1 = true
	st.Registers.IFF2 = true
	st.TStates = 0
	st.EILast = true

	test.DemandSuccess(t, m.zx.Plumb(st))
	test.ExpectSuccess(t, m.p.EILast())

	// the instruction after EI is executed before the interrupt is accepted
	test.DemandSuccess(t, m.zx.Step())
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x8001))

	test.DemandSuccess(t, m.zx.Step())
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x0038))
}

func TestSnapshotFile(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	m.zx.Mem.Poke(0x8000, 0x99)
	m.p.Registers().PC = 0x4321

	fn := filepath.Join(t.TempDir(), "test.z80")
	test.DemandSuccess(t, m.zx.SaveSnapshot(fn))

	n := newMachine(t, specification.Spec128K)
	test.DemandSuccess(t, n.zx.LoadSnapshot(fn))
	test.ExpectEquality(t, n.zx.Spec.ID, specification.Spec48K.ID)
	test.ExpectEquality(t, n.zx.Mem.Peek(0x8000), uint8(0x99))
	test.ExpectEquality(t, n.p.Registers().PC, uint16(0x4321))
}

func TestSnapshotNoSpecification(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	err := m.zx.Plumb(&snapshot.State{})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.NoSpecification))
}

// a TAP file with a single block of three bytes
func tapFile() []uint8 {
	flag := uint8(0xff)
	data := []uint8{0x01, 0x02, 0x03}
	sum := flag
	for _, v := range data {
		sum ^= v
	}
	blk := append([]uint8{flag}, data...)
	blk = append(blk, sum)
	return append([]uint8{uint8(len(blk)), 0x00}, blk...)
}

// registers on entry to the ROM loading routine
func loadEntry(m machine) {
	regs := m.p.Registers()
	regs.PC = 0x056b
	regs.SP = 0xfff0
	regs.IX = 0x8000
	regs.SetDE(3)
	regs.AltAF = 0xff<<8 | uint16(cpu.FlagC)
	m.zx.Mem.Poke(0xfff0, 0x34)
	m.zx.Mem.Poke(0xfff1, 0x12)
}

func TestFlashLoad(t *testing.T) {
	m := newMachine(t, specification.Spec48K)
	test.DemandSuccess(t, m.zx.InsertTAP("test.tap", tapFile()))
	loadEntry(m)

	m.p.traps.OnCompareA()
	test.ExpectEquality(t, m.zx.Mem.Peek(0x8000), uint8(0x01))
	test.ExpectEquality(t, m.zx.Mem.Peek(0x8001), uint8(0x02))
	test.ExpectEquality(t, m.zx.Mem.Peek(0x8002), uint8(0x03))
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x1234))
	test.ExpectEquality(t, m.p.Registers().SP, uint16(0xfff2))
	test.ExpectSuccess(t, contains(m.ch.Drain(), notifications.NotifyTapeFlashLoad))

	// the tape is embedded in a snapshot
	st := m.zx.Snapshot()
	test.DemandSuccess(t, st.Tape != nil)
	test.ExpectEquality(t, st.Tape.Extension, "tap")
	test.ExpectEquality(t, len(st.Tape.Data), len(tapFile()))
}

func TestFlashLoadWrongROM(t *testing.T) {
	m := newMachine(t, specification.Spec128K)
	test.DemandSuccess(t, m.zx.InsertTAP("test.tap", tapFile()))
	loadEntry(m)

	// the 128K editor ROM is paged in
	m.p.traps.OnCompareA()
	test.ExpectEquality(t, m.zx.Mem.Peek(0x8000), uint8(0x00))
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x056b))

	// the 48K BASIC ROM
	m.p.bus.Out(0x7ffd, 0x10, 0)
	m.p.traps.OnCompareA()
	test.ExpectEquality(t, m.zx.Mem.Peek(0x8000), uint8(0x01))
	test.ExpectEquality(t, m.p.Registers().PC, uint16(0x1234))
}

func TestInsertTape(t *testing.T) {
	m := newMachine(t, specification.Spec48K)

	dir := t.TempDir()
	fn := filepath.Join(dir, "test.tap")
	test.DemandSuccess(t, os.WriteFile(fn, tapFile(), 0o644))

	test.DemandSuccess(t, m.zx.InsertTape(fn))
	test.ExpectSuccess(t, m.zx.Tape.Inserted())
	test.ExpectSuccess(t, len(m.zx.Tape.Blocks()) > 0)

	m.zx.EjectTape()
	test.ExpectFailure(t, m.zx.Tape.Inserted())
	test.ExpectSuccess(t, m.zx.Snapshot().Tape == nil)

	err := m.zx.InsertTape(filepath.Join(dir, "test.xyz"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnsupportedTape))

	err = m.zx.InsertTape(filepath.Join(dir, "missing.tap"))
	test.ExpectSuccess(t, curated.Is(err, hardware.TapeError))
}

func TestRewind(t *testing.T) {
	m := newMachine(t, specification.Spec48K)

	_, err := m.zx.Rewind.GotoFrame(0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, hardware.RewindEmpty))

	m.zx.Rewind.SetEnabled(true)
	n, pos := m.zx.Rewind.State()
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, pos, 0)

	test.DemandSuccess(t, m.zx.RunForFrameCount(5, nil))
	n, pos = m.zx.Rewind.State()
	test.ExpectEquality(t, n, 6)
	test.ExpectEquality(t, pos, 5)

	ok, err := m.zx.Rewind.GotoFrame(2)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m.zx.Frame(), 2)
	n, pos = m.zx.Rewind.State()
	test.ExpectEquality(t, n, 6)
	test.ExpectEquality(t, pos, 2)

	// running on from a rewound state forgets the future
	test.DemandSuccess(t, m.zx.RunForFrameCount(1, nil))
	first, last := m.zx.Rewind.Frames()
	test.ExpectEquality(t, first, 0)
	test.ExpectEquality(t, last, 3)

	test.DemandSuccess(t, m.zx.Rewind.GotoCurrent())
	test.ExpectEquality(t, m.zx.Frame(), 3)
}
