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

package tape

import (
	"math"

	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/notifications"
)

// State of the tape deck.
type State int

// List of valid State values.
const (
	Idle State = iota
	PlayingPulseTrain
	PlayingData
	Pausing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PlayingPulseTrain:
		return "pulses"
	case PlayingData:
		return "data"
	case Pausing:
		return "pause"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// the length of the edge given to the last block of a tape if it has no tail
const synthesisedEdge = 7000

// the number of frames without loader activity before an automatically started
// tape is stopped
const Timeout = 100

// sound level of a high signal
const soundHigh = math.MinInt16 >> 1

const logTag = "tape"

// Deck is the tape deck.
type Deck struct {
	env *environment.Environment

	blocks []Block
	state  State

	// index of the current block. -1 if the tape is at the start
	cursor  int
	playing bool

	// pulse train cursors
	pulseIdx int
	repeat   int

	// data sequence cursors. bit is -1 when the tail is being played
	bitIdx   int
	shifter  uint8
	dataIdx  int
	dataByte uint8
	bit      int
	bitPulse int

	level int
	sound int16

	// the signal has been flipped since the detected loop last looked
	flipped bool

	// t-states until the next edge and the t-states accumulated towards it
	edge  int
	clock int

	// the loop accelerator has already accounted for the time of the current
	// instruction
	edgeConsumed bool

	// number of edges since insertion
	edges int

	detector Detector
	strategy Strategy

	autoStarted bool
	timeout     int
	frame       int

	// the machine is a 48K machine. affects Stop blocks
	machine48K bool
}

// NewDeck is the preferred method of initialisation for the Deck type.
func NewDeck(env *environment.Environment) *Deck {
	d := &Deck{
		env: env,
	}
	d.reset()
	return d
}

func (d *Deck) reset() {
	d.state = Idle
	d.cursor = -1
	d.playing = false
	d.pulseIdx = 0
	d.repeat = 0
	d.bitIdx = 0
	d.shifter = 0
	d.dataIdx = 0
	d.dataByte = 0
	d.bit = 0
	d.bitPulse = 0
	d.level = 0
	d.sound = 0
	d.flipped = false
	d.edge = 0
	d.clock = 0
	d.edgeConsumed = false
	d.edges = 0
	d.detector.Reset()
	d.strategy = pulseStrategy{}
	d.autoStarted = false
	d.timeout = Timeout
}

// SetMachine48K indicates whether the machine is a 48K machine.
func (d *Deck) SetMachine48K(is48K bool) {
	d.machine48K = is48K
}

// Insert a tape into the deck. The tape is rewound to the start.
func (d *Deck) Insert(blocks []Block) {
	if d.playing {
		d.stop()
	}
	d.reset()
	d.blocks = blocks
	logger.Logf(d.env, logTag, "inserted tape with %d blocks", len(blocks))
	d.env.Notify(notifications.NotifyTapeInserted)
}

// Eject the tape.
func (d *Deck) Eject() {
	if d.blocks == nil {
		return
	}
	if d.playing {
		d.stop()
	}
	d.reset()
	d.blocks = nil
	logger.Log(d.env, logTag, "ejected tape")
	d.env.Notify(notifications.NotifyTapeEjected)
}

// Inserted returns true if there is a tape in the deck.
func (d *Deck) Inserted() bool {
	return d.blocks != nil
}

// Blocks returns the blocks on the tape.
func (d *Deck) Blocks() []Block {
	return d.blocks
}

// Cursor returns the index of the current block.
func (d *Deck) Cursor() int {
	return d.cursor
}

// Playing returns true if the tape is playing.
func (d *Deck) Playing() bool {
	return d.playing
}

// State returns the state of the deck.
func (d *Deck) State() State {
	return d.state
}

// Level returns the level of the tape signal.
func (d *Deck) Level() int {
	return d.level
}

// Edges returns the number of edges since the tape was inserted.
func (d *Deck) Edges() int {
	return d.edges
}

// Mode returns the mode of the current loading strategy.
func (d *Deck) Mode() Mode {
	return d.strategy.Mode()
}

// Start the tape. Playing continues from the block after the current one.
func (d *Deck) Start() {
	if !d.Inserted() || d.playing {
		return
	}
	d.playing = true
	d.clock = 0
	logger.Log(d.env, logTag, "started")
	d.env.Notify(notifications.NotifyTapeStarted)
	d.nextBlock()
}

// Stop the tape. The current block will be played from the beginning when the
// tape is started again.
func (d *Deck) Stop() {
	if !d.playing {
		return
	}
	d.stop()
	if d.cursor >= 0 {
		d.cursor--
	}
}

func (d *Deck) stop() {
	d.playing = false
	d.state = Stopped
	d.autoStarted = false
	logger.Log(d.env, logTag, "stopped")
	d.env.Notify(notifications.NotifyTapeStopped)
}

// Rewind the tape to the start.
func (d *Deck) Rewind() {
	if d.playing {
		d.stop()
	}
	blocks := d.blocks
	d.reset()
	d.blocks = blocks
}

// Advance the tape by the number of t-states.
func (d *Deck) Advance(delta int) {
	if d.edgeConsumed {
		d.edgeConsumed = false
		return
	}

	if !d.playing {
		return
	}

	d.clock += delta
	for d.playing && d.clock >= d.edge {
		d.clock -= d.edge
		d.onEdge()
	}
}

// EndFrame should be called by the hardware at the end of every frame.
func (d *Deck) EndFrame() {
	d.frame++

	if d.playing && d.autoStarted && d.env.Prefs.AutoStop.Get().(bool) {
		if d.timeout <= 0 {
			logger.Log(d.env, logTag, "no loader activity")
			d.Stop()
		} else {
			d.timeout--
		}
	}
}

// EarActive implements the ula.Ear interface.
func (d *Deck) EarActive() bool {
	return d.playing
}

// EarHigh implements the ula.Ear interface.
func (d *Deck) EarHigh() bool {
	return d.level == 1
}

// EarSound implements the ula.Ear interface.
func (d *Deck) EarSound() int16 {
	return d.sound
}
