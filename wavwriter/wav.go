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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirety, and written to disk
// on program end. It is therefore probably only suitable for testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/logger"
)

const logTag = "wavwriter"

// Sentinal errors.
const (
	WavWriterError = "wavwriter: %v"
)

// the format of the audio data sent by the television
const (
	numChannels = 2
	bitDepth    = 16

	// PCM in the WAVE header
	audioFormat = 1
)

// WavWriter implements the television.AudioMixer interface.
type WavWriter struct {
	perm     logger.Permission
	filename string
	buffer   []int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type.
func NewWavWriter(perm logger.Permission, filename string) *WavWriter {
	return &WavWriter{
		perm:     perm,
		filename: filename,
		buffer:   make([]int, 0, television.SampleFreq*numChannels),
	}
}

// SetAudio implements the television.AudioMixer interface.
func (aw *WavWriter) SetAudio(audioData []int16) error {
	for _, s := range audioData {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// Frames returns the number of stereo frames written so far.
func (aw *WavWriter) Frames() int {
	return len(aw.buffer) / numChannels
}

// EndMixing implements the television.AudioMixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	enc := wav.NewEncoder(f, television.SampleFreq, bitDepth, numChannels, audioFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  television.SampleFreq,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(aw.perm, logTag, "writing audio to %s", aw.filename)

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	// the encoder must be closed to complete the header
	err = enc.Close()
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	return nil
}
