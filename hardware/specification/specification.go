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

// Package specification contains the timing and geometry definitions of the
// ZX Spectrum models supported by the emulation.
package specification

import (
	"strings"

	"github.com/zxcore/zxcore/curated"
)

// UnknownModel is returned by SearchSpec when the model ID is not recognised.
const UnknownModel = "specification: unknown model (%s)"

// Model identifies a member of the ZX Spectrum family.
type Model int

// List of valid Model values.
const (
	Model16K Model = iota
	Model48K
	Model128K
	ModelPlus2
	ModelPlus2A
	ModelPlus3
	ModelPentagon
)

// Paging describes how a model pages memory in response to port writes.
type Paging int

// List of valid Paging values.
const (
	// no paging. the memory map is fixed
	PagingNone Paging = iota

	// port 0x7ffd selects the RAM bank at 0xc000, the ROM and the screen
	PagingClassic

	// as PagingClassic with the addition of port 0x1ffd, which selects the
	// high bit of the ROM and the special all-RAM configurations
	PagingPlus3

	// as PagingClassic but the port is partially decoded and the paging lock
	// bit is ignored
	PagingPentagon
)

// SZX machine identifiers.
const (
	SZX16K       = 0
	SZX48K       = 1
	SZX128K      = 2
	SZXPlus2     = 3
	SZXPlus2A    = 4
	SZXPlus3     = 5
	SZXPlus3E    = 6
	SZXPentagon  = 7
	SZXSE        = 11
	SZXNTSC48K   = 15
	SZX128KE     = 16
	szxUndefined = 255
)

// Raster geometry common to all models. The screen is 256x192 pixels and every
// t-state produces two pixels.
const (
	ScreenWidth  = 256
	ScreenHeight = 192

	// number of t-states of each raster line that produce pixels (border and
	// display). the remainder of the line is horizontal blanking
	LinePixelTStates = 176

	// offset in t-states of the first display byte from the start of the
	// raster line
	LineDisplayOffset = 24

	// number of t-states the display occupies on each line
	LineDisplayTStates = 128
)

// Spec defines the timing and geometry of a Spectrum model.
type Spec struct {
	ID    string
	Model Model

	// identifier used by the SZX snapshot format
	SZXID uint8

	// clock speed in MHz
	ClockSpeed float64

	// number of t-states in one frame. an interrupt is generated at the start
	// of every frame
	FrameLength int

	// number of t-states in a raster line
	TStatesPerLine int

	// number of t-states the interrupt line is held low at the start of the
	// frame
	InterruptPeriod int

	// the t-state at which the first display byte is fetched
	DisplayStart int

	// the t-state at which memory contention begins. contention repeats
	// Pattern over 128 t-states of each of the 192 display lines
	ContentionStart int
	Pattern         [8]int

	// false if the model never contends memory or ports
	Contended bool

	// true if contention is not applied to ports or to internal cycles. on
	// these models only memory accesses are contended
	MemoryContentionOnly bool

	// the height in lines of the top and bottom border. the left and right
	// borders are always 48 pixels
	BorderTop    int
	BorderBottom int
	BorderLeft   int
	BorderRight  int

	// number of 16K RAM banks. 1, 3 or 8
	RAMBanks int

	// number of 16K ROMs
	ROMs int

	Paging Paging

	// AY-3-8912 fitted as standard
	HasAY bool

	// floppy disk interface fitted as standard
	HasDisk bool
}

func (spec Spec) String() string {
	return spec.ID
}

// ScanlineWidth is the width in pixels of each line of the screen buffer.
func (spec Spec) ScanlineWidth() int {
	return spec.BorderLeft + ScreenWidth + spec.BorderRight
}

// ScanlinesTotal is the number of lines in the screen buffer.
func (spec Spec) ScanlinesTotal() int {
	return spec.BorderTop + ScreenHeight + spec.BorderBottom
}

// ULAStart is the t-state of the top left pixel of the screen buffer. The late
// argument should be 1 for machines with late timings and 0 otherwise.
func (spec Spec) ULAStart(late int) int {
	return spec.DisplayStart - LineDisplayOffset - spec.BorderTop*spec.TStatesPerLine + late
}

// FramesPerSecond returns the refresh rate of the model.
func (spec Spec) FramesPerSecond() float64 {
	return spec.ClockSpeed * 1000000 / float64(spec.FrameLength)
}

// Is128K returns true if the model has 128K of RAM.
func (spec Spec) Is128K() bool {
	return spec.RAMBanks == 8
}

var (
	patternSinclair = [8]int{6, 5, 4, 3, 2, 1, 0, 0}
	patternAmstrad  = [8]int{1, 0, 7, 6, 5, 4, 3, 2}
)

// Spec16K is the specification for the 16K Spectrum.
var Spec16K = Spec{
	ID:              "16K",
	Model:           Model16K,
	SZXID:           SZX16K,
	ClockSpeed:      3.5,
	FrameLength:     69888,
	TStatesPerLine:  224,
	InterruptPeriod: 32,
	DisplayStart:    14336,
	ContentionStart: 14335,
	Pattern:         patternSinclair,
	Contended:       true,
	BorderTop:       48,
	BorderBottom:    56,
	BorderLeft:      48,
	BorderRight:     48,
	RAMBanks:        1,
	ROMs:            1,
	Paging:          PagingNone,
}

// Spec48K is the specification for the 48K Spectrum.
var Spec48K Spec

// Spec128K is the specification for the 128K Spectrum.
var Spec128K = Spec{
	ID:              "128K",
	Model:           Model128K,
	SZXID:           SZX128K,
	ClockSpeed:      3.5469,
	FrameLength:     70908,
	TStatesPerLine:  228,
	InterruptPeriod: 36,
	DisplayStart:    14362,
	ContentionStart: 14361,
	Pattern:         patternSinclair,
	Contended:       true,
	BorderTop:       48,
	BorderBottom:    56,
	BorderLeft:      48,
	BorderRight:     48,
	RAMBanks:        8,
	ROMs:            2,
	Paging:          PagingClassic,
	HasAY:           true,
}

// SpecPlus2 is the specification for the grey +2.
var SpecPlus2 Spec

// SpecPlus2A is the specification for the black +2A.
var SpecPlus2A Spec

// SpecPlus3 is the specification for the +3.
var SpecPlus3 Spec

// SpecPentagon is the specification for the Pentagon 128.
var SpecPentagon = Spec{
	ID:              "Pentagon",
	Model:           ModelPentagon,
	SZXID:           SZXPentagon,
	ClockSpeed:      3.5,
	FrameLength:     71680,
	TStatesPerLine:  224,
	InterruptPeriod: 36,
	DisplayStart:    17988,
	Contended:       false,
	BorderTop:       48,
	BorderBottom:    40,
	BorderLeft:      48,
	BorderRight:     48,
	RAMBanks:        8,
	ROMs:            2,
	Paging:          PagingPentagon,
	HasAY:           true,
}

// SpecList is the list of all supported specifications.
var SpecList []Spec

func init() {
	Spec48K = Spec16K
	Spec48K.ID = "48K"
	Spec48K.Model = Model48K
	Spec48K.SZXID = SZX48K
	Spec48K.RAMBanks = 3

	SpecPlus2 = Spec128K
	SpecPlus2.ID = "+2"
	SpecPlus2.Model = ModelPlus2
	SpecPlus2.SZXID = SZXPlus2

	SpecPlus2A = Spec128K
	SpecPlus2A.ID = "+2A"
	SpecPlus2A.Model = ModelPlus2A
	SpecPlus2A.SZXID = SZXPlus2A
	SpecPlus2A.InterruptPeriod = 32
	SpecPlus2A.DisplayStart = 14364
	SpecPlus2A.Pattern = patternAmstrad
	SpecPlus2A.MemoryContentionOnly = true
	SpecPlus2A.ROMs = 4
	SpecPlus2A.Paging = PagingPlus3

	SpecPlus3 = SpecPlus2A
	SpecPlus3.ID = "+3"
	SpecPlus3.Model = ModelPlus3
	SpecPlus3.SZXID = SZXPlus3
	SpecPlus3.HasDisk = true

	SpecList = []Spec{Spec16K, Spec48K, Spec128K, SpecPlus2, SpecPlus2A, SpecPlus3, SpecPentagon}
}

// SearchSpec looks for a specification by its ID. The search is case
// insensitive.
func SearchSpec(id string) (Spec, error) {
	for _, s := range SpecList {
		if strings.EqualFold(s.ID, id) {
			return s, nil
		}
	}
	return Spec{}, curated.Errorf(UnknownModel, id)
}

// SearchSZX looks for a specification by its SZX machine identifier.
func SearchSZX(id uint8) (Spec, bool) {
	switch id {
	case SZXNTSC48K, SZXSE:
		return Spec48K, true
	case SZX128KE:
		return Spec128K, true
	case SZXPlus3E:
		return SpecPlus3, true
	case szxUndefined:
		return Spec{}, false
	}
	for _, s := range SpecList {
		if s.SZXID == id {
			return s, true
		}
	}
	return Spec{}, false
}
