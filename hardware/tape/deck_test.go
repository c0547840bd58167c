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

package tape_test

import (
	"testing"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/notifications"
	"github.com/zxcore/zxcore/test"
)

func newDeck(t *testing.T) (*tape.Deck, *environment.Environment, *notifications.Channel) {
	t.Helper()
	ch := notifications.NewChannel(1000)
	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), ch)
	test.DemandSuccess(t, err)
	return tape.NewDeck(env), env, ch
}

func TestPulsePair(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 2168, Count: 1}, {Duration: 2168, Count: 1}}},
		tape.Pause{Duration: 1000},
	})
	d.Start()
	test.ExpectEquality(t, d.Cursor(), 0)
	test.ExpectEquality(t, d.State(), tape.PlayingPulseTrain)

	elapsed := 0
	for d.Cursor() == 0 && elapsed < 10000 {
		d.Advance(1)
		elapsed++
		if elapsed == 2168 {
			test.ExpectEquality(t, d.Edges(), 1)
			test.ExpectEquality(t, d.Level(), 1)
		}
	}

	test.ExpectEquality(t, elapsed, 4336)
	test.ExpectEquality(t, d.Edges(), 2)
	test.ExpectEquality(t, d.Level(), 0)
	test.ExpectEquality(t, d.State(), tape.Pausing)
}

func TestDataByte(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.DataSequence{Bits: 8, Zero: []int{855}, One: []int{1710}, Data: []uint8{0xff}},
		tape.Pause{Duration: 1000},
	})
	d.Start()

	for range 7 {
		d.Advance(1710)
		test.ExpectEquality(t, d.Cursor(), 0)
	}
	d.Advance(1709)
	test.ExpectEquality(t, d.Edges(), 7)
	d.Advance(1)
	test.ExpectEquality(t, d.Edges(), 8)
	test.ExpectEquality(t, d.Cursor(), 1)
}

func TestDataTail(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.DataSequence{Bits: 8, Zero: []int{855}, One: []int{1710}, Data: []uint8{0x00}, Tail: 945},
		tape.Pause{Duration: 1000},
	})
	d.Start()

	d.Advance(8 * 855)
	test.ExpectEquality(t, d.Edges(), 8)
	test.ExpectEquality(t, d.Cursor(), 0)
	d.Advance(945)
	test.ExpectEquality(t, d.Edges(), 9)
	test.ExpectEquality(t, d.Cursor(), 1)
}

func TestEndOfTapeEdge(t *testing.T) {
	d, _, ch := newDeck(t)
	d.Insert([]tape.Block{
		tape.DataSequence{Bits: 1, Zero: []int{855}, One: []int{1710}, Data: []uint8{0x00}},
	})
	ch.Drain()

	d.Start()
	d.Advance(855)
	test.ExpectEquality(t, d.Playing(), true)

	// an edge is synthesised at the end of the tape
	d.Advance(6999)
	test.ExpectEquality(t, d.Playing(), true)
	d.Advance(1)
	test.ExpectEquality(t, d.Playing(), false)
	test.ExpectEquality(t, d.Edges(), 2)
	test.ExpectEquality(t, d.Cursor(), 0)
	test.ExpectEquality(t, d.State(), tape.Stopped)

	n := ch.Drain()
	test.DemandEquality(t, len(n), 3)
	test.ExpectEquality(t, n[0], notifications.NotifyTapeStarted)
	test.ExpectEquality(t, n[1], notifications.NotifyTapeNextBlock)
	test.ExpectEquality(t, n[2], notifications.NotifyTapeStopped)
}

func TestPauseCarry(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 1000, Count: 1}}},
		tape.Pause{Duration: 500},
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 1000, Count: 1}}},
	})
	d.Start()

	// the pause is consumed entirely by time carried over from the first edge
	d.Advance(1600)
	test.ExpectEquality(t, d.Cursor(), 2)
	test.ExpectEquality(t, d.Edges(), 1)

	d.Advance(899)
	test.ExpectEquality(t, d.Edges(), 1)
	d.Advance(1)
	test.ExpectEquality(t, d.Edges(), 2)
	test.ExpectEquality(t, d.Playing(), false)
}

func TestLevelChange(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 0, Count: 3}, {Duration: 100, Count: 1}}},
		tape.Pause{Duration: 1000},
	})
	d.Start()

	// an odd count of zero length pulses flips the level without an edge
	test.ExpectEquality(t, d.Level(), 1)
	test.ExpectEquality(t, d.Edges(), 0)
	test.ExpectEquality(t, d.EarHigh(), true)
	test.ExpectInequality(t, d.EarSound(), int16(0))

	d.Advance(100)
	test.ExpectEquality(t, d.Level(), 0)
	test.ExpectEquality(t, d.EarSound(), int16(0))
}

func TestStopAndResume(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 1000, Count: 3}}},
		tape.Stop{},
		tape.PulseTrain{Pulses: []tape.Pulse{{Duration: 1000, Count: 1}}},
	})

	// stopping a tape that is not playing does nothing
	d.Stop()
	test.ExpectEquality(t, d.Cursor(), -1)

	d.Start()
	d.Advance(1500)
	d.Stop()
	test.ExpectEquality(t, d.Cursor(), -1)
	test.ExpectEquality(t, d.EarActive(), false)

	// the block is restarted from the beginning
	d.Start()
	test.ExpectEquality(t, d.Cursor(), 0)
	d.Advance(3000)
	test.ExpectEquality(t, d.Playing(), false)
	test.ExpectEquality(t, d.Cursor(), 1)

	// starting after a stop block continues with the next block
	d.Start()
	test.ExpectEquality(t, d.Cursor(), 2)
	test.ExpectEquality(t, d.Playing(), true)
}

func TestStop48K(t *testing.T) {
	d, _, _ := newDeck(t)
	d.Insert([]tape.Block{
		tape.Stop{Only48K: true},
		tape.Pause{Duration: 1000},
	})

	d.Start()
	test.ExpectEquality(t, d.Cursor(), 1)
	test.ExpectEquality(t, d.Playing(), true)

	d.SetMachine48K(true)
	d.Rewind()
	d.Start()
	test.ExpectEquality(t, d.Cursor(), 0)
	test.ExpectEquality(t, d.Playing(), false)
}

func TestInsertEject(t *testing.T) {
	d, _, ch := newDeck(t)
	test.ExpectEquality(t, d.Inserted(), false)

	// nothing happens without a tape
	d.Start()
	test.ExpectEquality(t, d.Playing(), false)

	d.Insert(tape.StandardBlocks([]uint8{0xff, 0x01, 0xfe}, 1000))
	test.ExpectEquality(t, d.Inserted(), true)
	test.ExpectEquality(t, len(d.Blocks()), 3)

	d.Start()
	d.SetMode(tape.ModeBlock)
	d.Eject()
	test.ExpectEquality(t, d.Inserted(), false)
	test.ExpectEquality(t, d.Playing(), false)
	test.ExpectEquality(t, d.Mode(), tape.ModePulse)
	test.ExpectEquality(t, d.Cursor(), -1)

	n := ch.Drain()
	test.DemandEquality(t, len(n), 5)
	test.ExpectEquality(t, n[0], notifications.NotifyTapeInserted)
	test.ExpectEquality(t, n[1], notifications.NotifyTapeStarted)
	test.ExpectEquality(t, n[2], notifications.NotifyTapeNextBlock)
	test.ExpectEquality(t, n[3], notifications.NotifyTapeStopped)
	test.ExpectEquality(t, n[4], notifications.NotifyTapeEjected)
}
