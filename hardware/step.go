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
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/notifications"
)

// Step the machine by one instruction. If an interrupt is pending it is
// accepted instead of the instruction being executed.
//
// The interrupt is accepted once per frame, during the first
// InterruptPeriod t-states, if interrupts are enabled and the previous
// instruction was not EI.
func (zx *Spectrum) Step() error {
	before := zx.CPU.TStates()

	regs := zx.CPU.Registers()
	if !zx.interrupted && regs.IFF1 && !zx.CPU.EILast() && before < zx.Spec.InterruptPeriod {
		zx.interrupt()
	} else {
		zx.CPU.Step()
	}

	now := zx.CPU.TStates()
	delta := now - before

	err := zx.updateAudio(delta)
	if err != nil {
		return err
	}

	zx.Tape.Advance(delta)

	if !zx.inputRefreshed && now >= zx.inputTime {
		zx.ULA.RefreshInput()
		zx.inputRefreshed = true
	}

	if now >= zx.Spec.FrameLength {
		return zx.endFrame()
	}

	return nil
}

func (zx *Spectrum) interrupt() {
	zx.interrupted = true

	// counting interrupts in mode 0 or 1 is how we know the ROM has finished
	// initialising
	if !zx.resetOver && zx.CPU.Registers().IM < 2 {
		zx.resetFrames++
		if zx.resetFrames > zx.resetTarget {
			zx.resetOver = true
			logger.Logf(zx.env, logTag, "reset complete after %d frames", zx.resetFrames)
		}
	}

	zx.CPU.Interrupt()
}

func (zx *Spectrum) endFrame() error {
	zx.ULA.EndFrame()
	zx.Tape.EndFrame()

	zx.CPU.SetTStates(zx.CPU.TStates() - zx.Spec.FrameLength)
	zx.frame++
	zx.interrupted = false

	zx.inputRefreshed = false
	zx.inputTime = zx.env.Random.Intn(zx.Spec.FrameLength)

	if zx.TV != nil {
		err := zx.TV.NewFrame(zx.frame, zx.ULA.ScreenBuffer)
		if err != nil {
			return err
		}
	}

	zx.Rewind.endFrame()

	return zx.env.Notify(notifications.NotifyFrameEnd)
}
