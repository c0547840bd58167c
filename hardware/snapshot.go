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
	"path/filepath"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/peripherals"
	"github.com/zxcore/zxcore/hardware/snapshot"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/notifications"
)

// Snapshot the state of the machine. The returned State is not shared with
// the machine and can be changed freely, with the exception of the embedded
// tape data which must not be modified.
func (zx *Spectrum) Snapshot() *snapshot.State {
	st := snapshot.NewState(zx.Spec)

	st.Registers = *zx.CPU.Registers()
	st.Halted = zx.CPU.Halted()
	st.EILast = zx.CPU.EILast()
	st.TStates = zx.CPU.TStates()

	st.Border = zx.ULA.Border()
	st.PortFE = zx.ULA.LastOut()
	st.Port7FFD = zx.port7FFD
	st.Port1FFD = zx.port1FFD
	st.Issue2 = zx.env.Prefs.Issue2.Get().(bool)
	st.LateTimings = zx.late

	for _, b := range st.Banks() {
		st.RAM[b] = zx.Mem.RAM16(b)
	}

	if ay, ok := zx.Peripherals.Get(peripherals.IDAY).(*peripherals.AY); ok {
		regs, selected := ay.Registers()
		st.AY = &snapshot.AY{
			Selected:  selected,
			Registers: regs,
		}
	}

	if up, ok := zx.Peripherals.Get(peripherals.IDULAPlus).(*peripherals.ULAPlus); ok {
		register, enabled := up.State()
		st.Palette = &snapshot.Palette{
			Enabled:  enabled,
			Register: register,
			Entries:  up.PaletteBytes(),
		}
	}

	if zx.Tape.Inserted() {
		st.Tape = &snapshot.Tape{
			Block:     max(zx.Tape.Cursor(), 0),
			Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(zx.tapeFilename)), "."),
			Filename:  zx.tapeFilename,
			Data:      zx.tapData,
		}

		// a tape that was not loaded from a TAP file is embedded if it has
		// standard blocks that can be written as a TAP file
		if st.Tape.Data == nil {
			if data := tape.SaveTAP(zx.Tape.Blocks()); len(data) > 0 {
				st.Tape.Extension = "tap"
				st.Tape.Data = data
			}
		}
	}

	if zx.Spec.HasDisk {
		st.Disk = &snapshot.Disk{
			Drives:  1,
			MotorOn: zx.DiskMotor(),
		}
	}

	st.Creator = "ZXCore"

	return st
}

// Plumb applies a snapshot State to the machine. The model of the machine is
// changed if necessary. The State is not retained by the machine.
func (zx *Spectrum) Plumb(st *snapshot.State) error {
	err := zx.plumb(st)
	if err != nil {
		return err
	}

	zx.Rewind.Reset()

	logger.Logf(zx.env, logTag, "snapshot applied (%s)", st.Spec.ID)

	return zx.env.Notify(notifications.NotifySnapshotLoaded)
}

func (zx *Spectrum) plumb(st *snapshot.State) error {
	if st.Spec.FrameLength == 0 {
		return curated.Errorf(NoSpecification)
	}

	if st.Spec.ID != zx.Spec.ID || st.LateTimings != zx.late {
		err := zx.setSpec(st.Spec, st.LateTimings)
		if err != nil {
			return err
		}
	}

	zx.reset(true)

	for b, data := range st.RAM {
		if data == nil {
			continue
		}
		err := zx.Mem.SetRAM16(b, data)
		if err != nil {
			return err
		}
	}

	*zx.CPU.Registers() = st.Registers
	zx.CPU.SetHalted(st.Halted)
	zx.CPU.SetEILast(st.EILast)
	zx.CPU.SetTStates(st.TStates)

	zx.port7FFD = st.Port7FFD
	zx.port1FFD = st.Port1FFD
	zx.applyPaging(st.TStates)

	// the border is given separately from the last value written to the ULA
	// port because not every format records the port
	zx.ULA.Out(st.PortFE&^0x07|st.Border&0x07, 0)
	zx.ULA.SetIssue2(st.Issue2)

	if st.AY != nil {
		ay, ok := zx.Peripherals.Get(peripherals.IDAY).(*peripherals.AY)
		if !ok {
			ay = peripherals.NewAY()
			zx.Peripherals.Attach(ay)
			ay.SetStereoACB(zx.env.Prefs.StereoACB.Get().(bool))
		}
		ay.SetRegisters(st.AY.Registers, st.AY.Selected)
	}

	if st.Palette != nil {
		up, ok := zx.Peripherals.Get(peripherals.IDULAPlus).(*peripherals.ULAPlus)
		if !ok {
			up = peripherals.NewULAPlus()
			zx.Peripherals.Attach(up)
		}
		up.SetPaletteBytes(st.Palette.Entries)
		up.SetState(st.Palette.Register, st.Palette.Enabled)
	}

	if st.Tape != nil {
		zx.plumbTape(st.Tape)
	}

	// the ROM has finished initialising in the snapshotted machine
	zx.resetOver = true

	// the interrupt for the frame has already happened if the snapshot was
	// taken after the interrupt period
	zx.interrupted = st.TStates >= zx.Spec.InterruptPeriod

	return nil
}

// a tape that cannot be reinserted does not prevent the snapshot from being
// applied
func (zx *Spectrum) plumbTape(t *snapshot.Tape) {
	var err error

	switch {
	case t.Data != nil && strings.EqualFold(t.Extension, "tap"):
		err = zx.InsertTAP(t.Filename, t.Data)
	case t.Data == nil && t.Filename != "":
		err = zx.InsertTape(t.Filename)
	default:
		logger.Logf(zx.env, logTag, "snapshot tape format not supported (%s)", t.Extension)
		return
	}

	if err != nil {
		logger.Logf(zx.env, logTag, "snapshot tape not inserted: %v", err)
	}
}

// LoadSnapshot loads the file and applies it to the machine.
func (zx *Spectrum) LoadSnapshot(filename string) error {
	st, err := snapshot.Load(zx.env, filename)
	if err != nil {
		return err
	}
	return zx.Plumb(st)
}

// SaveSnapshot saves the state of the machine to the file. The format is
// decided by the file extension.
func (zx *Spectrum) SaveSnapshot(filename string) error {
	return snapshot.Save(zx.env, filename, zx.Snapshot())
}
