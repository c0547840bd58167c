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

package random

import (
	"math/rand/v2"
	"time"
)

// Coords identify a point in emulation time.
type Coords struct {
	Frame  int
	TState int
}

// Clock is the source of emulation time for the random number generator.
type Clock interface {
	GetCoords() Coords
}

// the largest frame of any supported machine. used to give every coordinate a
// unique sum
const maxFrameLength = 71680

// Random is a random number generator that is sensitive to time within the
// emulation.
type Random struct {
	clock Clock
	seed  uint64

	// use zero seed rather than the base seed. this is only really useful for
	// normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(clock Clock) *Random {
	return &Random{
		clock: clock,
		seed:  uint64(time.Now().UnixNano()),
	}
}

// SetClock changes the source of emulation time. The machine is usually
// created after the environment and installs itself with this function.
func (rnd *Random) SetClock(clock Clock) {
	rnd.clock = clock
}

// Reseed replaces the base seed.
func (rnd *Random) Reseed(seed int64) {
	rnd.seed = uint64(seed)
}

func coordsSum(c Coords) uint64 {
	return uint64(c.Frame)*maxFrameLength + uint64(c.TState)
}

// new RNG for the current coordinates
func (rnd *Random) rand() *rand.Rand {
	var c Coords
	if rnd.clock != nil {
		c = rnd.clock.GetCoords()
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewPCG(0, coordsSum(c)))
	}
	return rand.New(rand.NewPCG(rnd.seed, coordsSum(c)))
}

// Intn returns a number in the range [0, n). Returns zero if n is not
// positive.
func (rnd *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rnd.rand().IntN(n)
}

// Range returns a number uniformly distributed over [min, max). Returns min if
// the range is empty.
func (rnd *Random) Range(min int, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.Intn(max-min)
}
