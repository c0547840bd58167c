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

package peripherals

import (
	"fmt"
)

// ports of the AY-3-8912. the ports are partially decoded
const (
	AYRegisterPort = 0xfffd
	AYDataPort     = 0xbffd

	ayPortMask     = 0xc002
	ayRegisterBits = 0xc000
	ayDataBits     = 0x8000
)

// registers of the AY-3-8912
const (
	ayToneFineA   = 0
	ayToneCoarseA = 1
	ayNoisePeriod = 6
	ayMixer       = 7
	ayVolumeA     = 8
	ayEnvFine     = 11
	ayEnvCoarse   = 12
	ayEnvShape    = 13
	ayPortA       = 14
	ayPortB       = 15
	ayNumRegs     = 16
)

// the mask of each register. unused bits always read as zero
var ayRegMask = [ayNumRegs]uint8{
	0xff, 0x0f, 0xff, 0x0f, 0xff, 0x0f, 0x1f, 0xff,
	0x1f, 0x1f, 0x1f, 0xff, 0xff, 0x0f, 0xff, 0xff,
}

// the AY is clocked at half the speed of the CPU and the tone generators step
// once every eight AY clocks
const ayStepTStates = 16

// logarithmic volume levels scaled to the maximum output of a single channel
var ayVolume = [16]int{
	0, 86, 123, 182, 262, 382, 545, 851,
	1013, 1627, 2296, 2906, 3852, 4940, 6169, 8191,
}

// AY is the AY-3-8912 sound chip.
type AY struct {
	regs     [ayNumRegs]uint8
	selected uint8

	// t-states not yet accounted for by a step
	residue int

	tone       [3]int
	toneOutput [3]bool

	noise       int
	noiseShift  uint32
	noiseOutput bool

	env        int
	envStep    int
	envAttack  bool
	envHolding bool
	envLevel   int

	acb bool

	// output accumulated since the last sample
	accLeft  int
	accRight int
	accCount int
}

// NewAY is the preferred method of initialisation for the AY type.
func NewAY() *AY {
	ay := &AY{}
	ay.Reset()
	return ay
}

func (ay *AY) String() string {
	return fmt.Sprintf("AY: selected=%d mixer=%02x", ay.selected, ay.regs[ayMixer])
}

// ID implements the Device interface.
func (ay *AY) ID() ID {
	return IDAY
}

// Register implements the Device interface.
func (ay *AY) Register(_ Host) {}

// Unregister implements the Device interface.
func (ay *AY) Unregister(_ Host) {}

// Reset implements the Device interface.
func (ay *AY) Reset() {
	ay.regs = [ayNumRegs]uint8{}
	ay.selected = 0
	ay.residue = 0
	ay.tone = [3]int{}
	ay.toneOutput = [3]bool{}
	ay.noise = 0
	ay.noiseShift = 1
	ay.noiseOutput = false
	ay.resetEnvelope()
	ay.accLeft = 0
	ay.accRight = 0
	ay.accCount = 0
}

// SetStereoACB implements the Audio interface.
func (ay *AY) SetStereoACB(acb bool) {
	ay.acb = acb
}

// In implements the Port interface.
func (ay *AY) In(port uint16) (uint8, bool) {
	if port&ayPortMask == ayRegisterBits {
		return ay.regs[ay.selected], true
	}
	return 0xff, false
}

// Out implements the Port interface.
func (ay *AY) Out(port uint16, data uint8) bool {
	switch port & ayPortMask {
	case ayRegisterBits:
		ay.selected = data & 0x0f
		return true
	case ayDataBits:
		ay.WriteRegister(ay.selected, data)
		return true
	}
	return false
}

// WriteRegister sets the value of a register directly.
func (ay *AY) WriteRegister(reg uint8, data uint8) {
	reg &= 0x0f
	ay.regs[reg] = data & ayRegMask[reg]
	if reg == ayEnvShape {
		ay.resetEnvelope()
	}
}

// Registers returns the register values and the selected register.
func (ay *AY) Registers() ([16]uint8, uint8) {
	return ay.regs, ay.selected
}

// SetRegisters is the inverse of Registers().
func (ay *AY) SetRegisters(regs [16]uint8, selected uint8) {
	for i, v := range regs {
		ay.regs[i] = v & ayRegMask[i]
	}
	ay.selected = selected & 0x0f
	ay.resetEnvelope()
}

func (ay *AY) tonePeriod(ch int) int {
	p := int(ay.regs[ayToneFineA+ch*2]) | int(ay.regs[ayToneCoarseA+ch*2])<<8
	return max(p, 1)
}

func (ay *AY) resetEnvelope() {
	ay.env = 0
	ay.envStep = 0
	ay.envAttack = ay.regs[ayEnvShape]&0x04 == 0x04
	ay.envHolding = false
	ay.envLevel = ay.envelopeLevel()
}

func (ay *AY) envelopeLevel() int {
	if ay.envAttack {
		return ay.envStep
	}
	return 15 - ay.envStep
}

func (ay *AY) stepEnvelope() {
	if ay.envHolding {
		return
	}

	ay.envStep++
	if ay.envStep < 16 {
		ay.envLevel = ay.envelopeLevel()
		return
	}

	shape := ay.regs[ayEnvShape]
	cont := shape&0x08 == 0x08
	alt := shape&0x02 == 0x02
	hold := shape&0x01 == 0x01

	switch {
	case !cont:
		ay.envHolding = true
		ay.envLevel = 0
	case hold:
		ay.envHolding = true
		if alt {
			ay.envAttack = !ay.envAttack
		}
		if ay.envAttack {
			ay.envLevel = 15
		} else {
			ay.envLevel = 0
		}
	default:
		if alt {
			ay.envAttack = !ay.envAttack
		}
		ay.envStep = 0
		ay.envLevel = ay.envelopeLevel()
	}
}

// step the generators by one tone step.
func (ay *AY) step() {
	for ch := range 3 {
		ay.tone[ch]++
		if ay.tone[ch] >= ay.tonePeriod(ch) {
			ay.tone[ch] = 0
			ay.toneOutput[ch] = !ay.toneOutput[ch]
		}
	}

	// the noise generator runs at half the rate of the tone generators
	ay.noise++
	if ay.noise >= max(int(ay.regs[ayNoisePeriod]), 1)*2 {
		ay.noise = 0
		bit := (ay.noiseShift ^ (ay.noiseShift >> 3)) & 0x01
		ay.noiseShift = (ay.noiseShift >> 1) | (bit << 16)
		ay.noiseOutput = ay.noiseShift&0x01 == 0x01
	}

	// the envelope steps sixteen times per period
	ay.env++
	if ay.env >= max(int(ay.regs[ayEnvFine])|int(ay.regs[ayEnvCoarse])<<8, 1)*2 {
		ay.env = 0
		ay.stepEnvelope()
	}

	var out [3]int
	mixer := ay.regs[ayMixer]
	for ch := range 3 {
		toneOff := mixer&(0x01<<ch) != 0
		noiseOff := mixer&(0x08<<ch) != 0
		if (ay.toneOutput[ch] || toneOff) && (ay.noiseOutput || noiseOff) {
			vol := ay.regs[ayVolumeA+ch]
			if vol&0x10 == 0x10 {
				out[ch] = ayVolume[ay.envLevel]
			} else {
				out[ch] = ayVolume[vol&0x0f]
			}
		}
	}

	// the centre channel is shared between left and right
	a, b, c := out[0], out[1], out[2]
	if ay.acb {
		ay.accLeft += a + c/2
		ay.accRight += b + c/2
	} else {
		ay.accLeft += a + b/2
		ay.accRight += c + b/2
	}
	ay.accCount++
}

// Update implements the Audio interface.
func (ay *AY) Update(delta int) {
	ay.residue += delta
	for ay.residue >= ayStepTStates {
		ay.residue -= ayStepTStates
		ay.step()
	}
}

// Sample implements the Audio interface.
func (ay *AY) Sample() (int16, int16) {
	if ay.accCount == 0 {
		return 0, 0
	}
	l := ay.accLeft / ay.accCount
	r := ay.accRight / ay.accCount
	ay.accLeft = 0
	ay.accRight = 0
	ay.accCount = 0
	return int16(l), int16(r)
}
