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
	"os"
	"path/filepath"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/contention"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/memory"
	"github.com/zxcore/zxcore/hardware/peripherals"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/hardware/tape/soundload"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/random"
)

const logTag = "spectrum"

// Sentinal errors.
const (
	UnsupportedTape  = "spectrum: unsupported tape format (%s)"
	UnsupportedState = "spectrum: unsupported emulation state (%s) in Run() function"
	ROMSize          = "spectrum: rom: %s needs %d bytes not %d"
	TapeError        = "spectrum: tape: %v"
	ROMError         = "spectrum: rom: %v"
	NoSpecification  = "spectrum: snapshot has no specification"
)

// the window of frames after a reset during which the ROM is still
// initialising. the target is chosen at random on every reset so that the
// FRAMES system variable differs from one reset to the next
const (
	resetFramesMin = 40
	resetFramesMax = 90
)

// Spectrum is the main container for the emulated components of the machine.
type Spectrum struct {
	env *environment.Environment

	Spec specification.Spec

	CPU         cpu.CPU
	Mem         *memory.Memory
	ULA         *ula.ULA
	Tape        *tape.Deck
	Peripherals *peripherals.Registry

	// the television is not part of the machine but is attached to it
	TV *television.Television

	Rewind *Rewind

	table *contention.Table
	late  bool

	bus bus

	// paging state
	port7FFD     uint8
	port1FFD     uint8
	pagingLocked bool
	displayBank  int

	// frame counter since the last reset
	frame int

	// the maskable interrupt has been accepted this frame
	interrupted bool

	// keyboard is refreshed once a frame at a random t-state
	inputTime      int
	inputRefreshed bool

	resetTarget int
	resetFrames int
	resetOver   bool

	audio audio

	// the tape file most recently inserted. tapData is the content of the file
	// if it was a TAP file
	tapeFilename string
	tapData      []uint8
}

// NewSpectrum is the preferred method of initialisation for the Spectrum type.
//
// The Spectrum installs itself as the clock of the environment's random
// number generator. The machine is hard reset before being returned.
func NewSpectrum(env *environment.Environment, tv *television.Television, mc cpu.CPU, spec specification.Spec) (*Spectrum, error) {
	zx := &Spectrum{
		env: env,
		CPU: mc,
		TV:  tv,
	}
	zx.bus.zx = zx

	zx.late = env.Prefs.LateTimings.Get().(bool)
	zx.table = contention.NewTable(spec, zx.late)
	zx.Mem = memory.NewMemory(spec, zx.table)
	zx.ULA = ula.NewULA(spec, zx.late, zx.Mem)
	zx.Mem.AttachScreen(zx.ULA)

	zx.Tape = tape.NewDeck(env)
	zx.ULA.AttachEar(zx.Tape)

	zx.Peripherals = peripherals.NewRegistry(env, zx)

	zx.CPU.Attach(&zx.bus, &zx.bus)
	env.Random.SetClock(zx)

	zx.Rewind = newRewind(zx)

	err := zx.setSpec(spec, zx.late)
	if err != nil {
		return nil, err
	}

	zx.Reset(true)

	return zx, nil
}

func (zx *Spectrum) String() string {
	return zx.Spec.ID
}

// GetCoords implements the random.Clock interface.
func (zx *Spectrum) GetCoords() random.Coords {
	return random.Coords{
		Frame:  zx.frame,
		TState: zx.CPU.TStates(),
	}
}

// SetSpec changes the model of the machine. The machine is hard reset.
func (zx *Spectrum) SetSpec(spec specification.Spec) error {
	err := zx.setSpec(spec, zx.env.Prefs.LateTimings.Get().(bool))
	if err != nil {
		return err
	}
	zx.Reset(true)
	return nil
}

func (zx *Spectrum) setSpec(spec specification.Spec, late bool) error {
	zx.Spec = spec
	zx.late = late

	zx.table = contention.NewTable(spec, late)
	zx.Mem.SetSpec(spec, zx.table)
	zx.ULA.SetSpec(spec, late)
	zx.Tape.SetMachine48K(!spec.Is128K())
	zx.displayBank = 5

	if spec.HasAY {
		if zx.Peripherals.Get(peripherals.IDAY) == nil {
			zx.Peripherals.Attach(peripherals.NewAY())
		}
	} else {
		zx.Peripherals.Detach(peripherals.IDAY)
	}

	logger.Logf(zx.env, logTag, "model: %s (late timings: %v)", spec.ID, late)

	if zx.TV != nil {
		return zx.TV.SetSpec(spec)
	}
	return nil
}

// Reset the machine. A hard reset is the equivalent of switching the power
// off and on. RAM is cleared and the registers are set to their power-on
// values. A soft reset is the equivalent of the reset button.
//
// Devices are reset, the tape is stopped and paging is returned to the
// default memory map. The rewind history is cleared.
func (zx *Spectrum) Reset(hard bool) {
	zx.reset(hard)
	zx.Rewind.Reset()
}

func (zx *Spectrum) reset(hard bool) {
	if hard {
		zx.CPU.HardReset()
		zx.Mem.ClearRAM()
	} else {
		zx.CPU.UserReset()
	}
	zx.CPU.SetHalted(false)
	zx.CPU.SetTStates(0)

	zx.Tape.Stop()

	zx.ULA.Reset()
	zx.ULA.SetIssue2(zx.env.Prefs.Issue2.Get().(bool))

	if zx.env.Prefs.ULAPlus.Get().(bool) {
		if zx.Peripherals.Get(peripherals.IDULAPlus) == nil {
			zx.Peripherals.Attach(peripherals.NewULAPlus())
		}
	} else {
		zx.Peripherals.Detach(peripherals.IDULAPlus)
	}

	zx.Peripherals.ResetAll()
	acb := zx.env.Prefs.StereoACB.Get().(bool)
	for _, d := range zx.Peripherals.AudioDevices() {
		d.SetStereoACB(acb)
	}

	zx.port7FFD = 0
	zx.port1FFD = 0
	zx.pagingLocked = false
	zx.applyPaging(0)

	zx.frame = 0
	zx.interrupted = false
	zx.audio.reset()

	zx.resetFrames = 0
	zx.resetOver = false
	zx.resetTarget = zx.env.Random.Range(resetFramesMin, resetFramesMax)

	zx.inputRefreshed = false
	zx.inputTime = zx.env.Random.Intn(zx.Spec.FrameLength)

	if hard {
		logger.Log(zx.env, logTag, "hard reset")
	} else {
		logger.Log(zx.env, logTag, "soft reset")
	}
}

// ResetComplete returns true if enough frames have passed since the last
// reset for the ROM to have completed its initialisation.
func (zx *Spectrum) ResetComplete() bool {
	return zx.resetOver
}

// Frame returns the number of frames since the last reset.
func (zx *Spectrum) Frame() int {
	return zx.frame
}

// LoadROMs copies ROM images into memory. The data should contain every ROM
// required by the model, in order, as a single image.
func (zx *Spectrum) LoadROMs(data []uint8) error {
	sz := zx.Spec.ROMs * memory.BankSize * 2
	if len(data) != sz {
		return curated.Errorf(ROMSize, zx.Spec.ID, sz, len(data))
	}

	for rom := range zx.Spec.ROMs {
		o := rom * memory.BankSize * 2
		err := zx.Mem.LoadROM(rom, data[o:o+memory.BankSize*2])
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadROMFile loads the named file with LoadROMs().
func (zx *Spectrum) LoadROMFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf(ROMError, err)
	}
	err = zx.LoadROMs(data)
	if err != nil {
		return err
	}
	logger.Logf(zx.env, logTag, "loaded rom: %s", filepath.Base(filename))
	return nil
}

// InsertTape loads the tape file and inserts it into the deck. TAP files are
// loaded as standard blocks. WAV and MP3 files are loaded as recordings.
func (zx *Spectrum) InsertTape(filename string) error {
	var blocks []tape.Block
	var data []uint8
	var err error

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".tap":
		data, err = os.ReadFile(filename)
		if err != nil {
			return curated.Errorf(TapeError, err)
		}
		blocks, err = tape.LoadTAP(data)
	case ".wav", ".mp3":
		blocks, err = soundload.Load(zx.env, filename, zx.Spec.ClockSpeed*1000000)
	default:
		return curated.Errorf(UnsupportedTape, ext)
	}
	if err != nil {
		return err
	}

	zx.Tape.Insert(blocks)
	zx.tapeFilename = filename
	zx.tapData = data

	return nil
}

// InsertTAP inserts TAP data that did not come from a file. The filename is
// used for reference only.
func (zx *Spectrum) InsertTAP(filename string, data []uint8) error {
	blocks, err := tape.LoadTAP(data)
	if err != nil {
		return err
	}
	zx.Tape.Insert(blocks)
	zx.tapeFilename = filename
	zx.tapData = data
	return nil
}

// EjectTape removes the tape from the deck.
func (zx *Spectrum) EjectTape() {
	zx.Tape.Eject()
	zx.tapeFilename = ""
	zx.tapData = nil
}

// FlushScreen implements the peripherals.Host interface.
func (zx *Spectrum) FlushScreen() {
	zx.ULA.Flush(zx.CPU.TStates())
}

// SetPaletteOverride implements the peripherals.Host interface.
func (zx *Spectrum) SetPaletteOverride(override ula.PaletteOverride) {
	zx.ULA.SetPaletteOverride(override)
}

// SetKey implements the peripherals.Host interface.
func (zx *Spectrum) SetKey(key ula.Key, pressed bool) {
	zx.ULA.SetKey(key, pressed)
}
