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

//go:build !headless

package otoaudio

import (
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/logger"
)

const logTag = "otoaudio"

// the length of the queue in samples. about a tenth of a second of audio
const queueLength = television.SampleFreq * numChannels / 10

// the length of the buffer in the sound device. the precise value is not
// critical
const bufferDuration = 40 * time.Millisecond

// Audio outputs sound using the oto library.
type Audio struct {
	perm   logger.Permission
	ctx    *oto.Context
	player *oto.Player
	q      *queue
}

// NewAudio is the preferred method of initialisation for the Audio type.
//
// Only one Audio instance can be created by a program. This is a restriction
// of the underlying library.
func NewAudio(perm logger.Permission) (*Audio, error) {
	op := &oto.NewContextOptions{
		SampleRate:   television.SampleFreq,
		ChannelCount: numChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   bufferDuration,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, curated.Errorf("otoaudio: %v", err)
	}
	<-ready

	aud := &Audio{
		perm: perm,
		ctx:  ctx,
		q:    newQueue(queueLength),
	}

	aud.player = ctx.NewPlayer(aud.q)
	aud.player.Play()

	logger.Logf(perm, logTag, "playing at %dHz", television.SampleFreq)

	return aud, nil
}

// SetAudio implements the television.AudioMixer interface.
func (aud *Audio) SetAudio(audioData []int16) error {
	aud.q.push(audioData)
	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	if n := aud.q.underflowCount(); n > 0 {
		logger.Logf(aud.perm, logTag, "audio queue underflowed %d times", n)
	}

	err := aud.player.Close()
	if err != nil {
		return curated.Errorf("otoaudio: %v", err)
	}

	return aud.ctx.Suspend()
}
