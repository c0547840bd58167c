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

package limiter_test

import (
	"testing"
	"time"

	"github.com/zxcore/zxcore/hardware/television/limiter"
	"github.com/zxcore/zxcore/test"
)

func TestLimited(t *testing.T) {
	lmtr := limiter.NewLimiter()
	defer lmtr.Stop()

	// six frames per pulse at 100Hz. eighteen frames wait on the pulse three
	// times
	lmtr.SetRefreshRate(100.0)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(100.0))

	start := time.Now()
	for range 18 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) >= 100*time.Millisecond)
}

func TestInactive(t *testing.T) {
	lmtr := limiter.NewLimiter()
	defer lmtr.Stop()
	lmtr.Active = false

	start := time.Now()
	for range 10000 {
		lmtr.CheckFrame()
		lmtr.MeasureActual()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
}

func TestNudge(t *testing.T) {
	lmtr := limiter.NewLimiter()
	defer lmtr.Stop()

	lmtr.SetRefreshRate(1.0)
	lmtr.Nudge.Store(100)

	start := time.Now()
	for range 100 {
		lmtr.CheckFrame()
	}
	test.ExpectSuccess(t, time.Since(start) < time.Second)
	test.ExpectEquality(t, lmtr.Nudge.Load(), int32(0))
}

func TestLimit(t *testing.T) {
	lmtr := limiter.NewLimiter()
	defer lmtr.Stop()

	lmtr.SetRefreshRate(50.08)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(50.08))

	lmtr.SetLimit(25.0)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(25.0))
	test.ExpectEquality(t, lmtr.RequestedFPS(), float32(25.0))

	// the refresh rate does not change an explicit limit
	lmtr.SetRefreshRate(60.0)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(25.0))

	lmtr.SetLimit(limiter.MatchRefreshRate)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(60.0))
}
