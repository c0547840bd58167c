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

package otoaudio

import (
	"encoding/binary"
	"sync"
)

// the number of channels in the audio data
const numChannels = 2

// the number of bytes in each stereo frame
const frameBytes = numChannels * 2

// queue is a bounded FIFO of interleaved stereo samples. It implements the
// io.Reader interface for the sound device.
type queue struct {
	crit sync.Mutex

	data []int16

	// the maximum number of samples. when this is exceeded the oldest samples
	// are dropped
	limit int

	// the most recent stereo frame read from the queue
	last [numChannels]int16

	// the number of times the sound device has asked for more than the queue
	// contained
	underflows int
}

func newQueue(limit int) *queue {
	limit -= limit % numChannels
	return &queue{
		data:  make([]int16, 0, limit),
		limit: limit,
	}
}

// push audio data onto the end of the queue.
func (q *queue) push(audioData []int16) {
	q.crit.Lock()
	defer q.crit.Unlock()

	q.data = append(q.data, audioData...)
	if len(q.data) > q.limit {
		drop := len(q.data) - q.limit
		drop += drop % numChannels
		q.data = append(q.data[:0], q.data[drop:]...)
	}
}

// Read implements the io.Reader interface.
func (q *queue) Read(p []byte) (int, error) {
	q.crit.Lock()
	defer q.crit.Unlock()

	frames := len(p) / frameBytes
	available := len(q.data) / numChannels

	i := 0
	for f := range frames {
		if f < available {
			copy(q.last[:], q.data[f*numChannels:])
		}
		for c := range numChannels {
			binary.LittleEndian.PutUint16(p[i:], uint16(q.last[c]))
			i += 2
		}
	}

	if frames > available {
		q.underflows++
		q.data = q.data[:0]
	} else {
		q.data = append(q.data[:0], q.data[frames*numChannels:]...)
	}

	return i, nil
}

// the number of underflows since the queue was created.
func (q *queue) underflowCount() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.underflows
}

// the number of samples in the queue.
func (q *queue) len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.data)
}
