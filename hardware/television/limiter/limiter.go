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

// Package limiter keeps the emulation running at the frame rate of the
// emulated machine.
package limiter

import (
	"sync/atomic"
	"time"
)

// Limiter waits at the end of a frame until enough real time has elapsed.
type Limiter struct {
	// whether to wait for fps limited each frame
	Active bool

	// the refresh rate of the machine being emulated. stored as an atomic so
	// that it can be read from outside the emulation goroutine
	RefreshRate atomic.Value // float32

	// the ideal number of frames per second if everything was working nicely
	IdealFPS atomic.Value // float32

	// the actual value sent to the SetLimit() function
	requestedFPS atomic.Value // float32

	// pulse that performs the limiting. the duration of the ticker will be set
	// when SetLimit() is called with a new fps value
	pulse *time.Ticker

	// waiting on the pulse every frame is expensive at high frame rates. the
	// pulse is instead scaled by pulseCtLimit and waited on that often
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker

	// the measured FPS is the number of frames divided by the amount of
	// elapsed time since the previous measurement
	measureTime time.Time
	measureCt   int

	// the measured number of frames per second
	Measured atomic.Value // float32

	// nudge the limiter so that it doesn't wait for the specified number of
	// frames
	Nudge atomic.Int32
}

// MatchRefreshRate is the value to pass to SetLimit() to indicate that the
// limiter should match the refresh rate of the machine.
const MatchRefreshRate float32 = -1.0

// the refresh rate used before SetRefreshRate() is first called
const defaultRefreshRate float32 = 50.0

// NewLimiter is preferred method of initialising a new instance of the Limiter
// type. The limited rate is set to match the refresh rate.
func NewLimiter() *Limiter {
	lmtr := Limiter{}
	lmtr.Active = true
	lmtr.Measured.Store(float32(0.0))

	lmtr.pulse = time.NewTicker(time.Millisecond * 20)
	lmtr.measuringPulse = time.NewTicker(time.Millisecond * 1000)

	lmtr.RefreshRate.Store(defaultRefreshRate)
	lmtr.SetLimit(MatchRefreshRate)

	return &lmtr
}

// SetRefreshRate sets the refresh rate of the emulated machine. If the limit
// was requested to match the refresh rate the limit changes immediately.
func (lmtr *Limiter) SetRefreshRate(refreshRate float32) {
	lmtr.RefreshRate.Store(refreshRate)
	if lmtr.requestedFPS.Load().(float32) <= 0.0 {
		lmtr.SetLimit(MatchRefreshRate)
	}
}

// SetLimit sets the frame limit. Use a value of MatchRefreshRate to indicate
// that the limiter should equal the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	lmtr.requestedFPS.Store(fps)

	if fps <= 0.0 {
		fps = lmtr.RefreshRate.Load().(float32)
	}

	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	// set scale and duration to wait according to requested FPS rate
	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Stop()
	lmtr.pulse.Reset(time.Duration(1000000000 / fps * float32(lmtr.pulseCtLimit)))

	// restart actual FPS rate measurement values
	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// RequestedFPS returns the value most recently given to SetLimit().
func (lmtr *Limiter) RequestedFPS() float32 {
	return lmtr.requestedFPS.Load().(float32)
}

// CheckFrame should be called every frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	nudge := lmtr.Nudge.Load()
	if nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
		return
	}

	if lmtr.Active {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures frame rate on every tick of the measuring pulse.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(m)

		// reset time and count ready for next measurement
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. The limiter should not be used after this.
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
