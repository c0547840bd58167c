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

package random_test

import (
	"testing"

	"github.com/zxcore/zxcore/random"
	"github.com/zxcore/zxcore/test"
)

type clock struct {
	coords random.Coords
}

func (c *clock) GetCoords() random.Coords {
	return c.coords
}

func TestZeroSeed(t *testing.T) {
	clk := &clock{coords: random.Coords{Frame: 100, TState: 32}}
	a := random.NewRandom(clk)
	b := random.NewRandom(clk)
	a.ZeroSeed = true
	b.ZeroSeed = true

	for i := 1; i < 256; i++ {
		test.ExpectEquality(t, a.Intn(i), b.Intn(i))
	}
}

func TestReseed(t *testing.T) {
	clk := &clock{coords: random.Coords{Frame: 1, TState: 1000}}
	a := random.NewRandom(clk)
	b := random.NewRandom(clk)
	a.Reseed(1234)
	b.Reseed(1234)

	for i := 0; i < 100; i++ {
		clk.coords.TState = i
		test.ExpectEquality(t, a.Range(40, 90), b.Range(40, 90))
	}
}

func TestRange(t *testing.T) {
	clk := &clock{}
	rnd := random.NewRandom(clk)
	for i := 0; i < 1000; i++ {
		clk.coords.TState = i
		v := rnd.Range(40, 90)
		test.ExpectSuccess(t, v >= 40 && v < 90)
	}
	test.ExpectEquality(t, rnd.Range(10, 10), 10)
	test.ExpectEquality(t, rnd.Intn(0), 0)
}
