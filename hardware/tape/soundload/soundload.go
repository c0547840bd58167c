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

// Package soundload converts recordings of tapes into tape blocks. WAV and MP3
// recordings are supported.
//
// The recording is reduced to a single channel. The signal is considered to
// have changed level when it crosses zero by more than a small threshold. The
// time between each change of level is a pulse.
package soundload

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/tape"
	"github.com/zxcore/zxcore/logger"
)

const logTag = "soundload"

// Sentinal errors.
const (
	UnsupportedFormat = "soundload: unsupported format (%s)"
	DecodeError       = "soundload: %s: %v"
	NoSignal          = "soundload: no signal in recording"
)

// the proportion of the peak amplitude the signal must cross before a change
// of level is recognised
const hysteresis = 0.1

type pcmData struct {
	sampleRate float64

	// mono data. the left channel of stereo recordings
	data []float32
}

// Load the file and convert it to tape blocks. The clock speed is the speed
// of the machine the tape will be played on, in Hz.
func Load(env *environment.Environment, filename string, clockSpeed float64) ([]tape.Block, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("soundload: %v", err)
	}
	defer f.Close()

	return Decode(env, f, filepath.Ext(filename), clockSpeed)
}

// Decode the recording in r. The format is specified by the file extension.
func Decode(env *environment.Environment, r io.ReadSeeker, ext string, clockSpeed float64) ([]tape.Block, error) {
	var p pcmData
	var err error

	switch strings.ToLower(ext) {
	case ".wav":
		p, err = decodeWAV(r)
	case ".mp3":
		p, err = decodeMP3(r)
	default:
		return nil, curated.Errorf(UnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	logger.Logf(env, logTag, "sample rate: %0.2fHz", p.sampleRate)
	logger.Logf(env, logTag, "total time: %.02fs", float64(len(p.data))/p.sampleRate)

	pulses := p.pulses(clockSpeed)
	if len(pulses) == 0 {
		return nil, curated.Errorf(NoSignal)
	}

	logger.Logf(env, logTag, "%d pulses", len(pulses))

	return []tape.Block{tape.PulseTrain{Pulses: pulses}}, nil
}

func decodeWAV(r io.ReadSeeker) (pcmData, error) {
	var p pcmData

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return p, curated.Errorf(DecodeError, "wav", "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return p, curated.Errorf(DecodeError, "wav", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	chans := max(int(dec.NumChans), 1)
	p.data = make([]float32, 0, len(floatBuf.Data)/chans)
	for i := 0; i < len(floatBuf.Data); i += chans {
		p.data = append(p.data, floatBuf.Data[i])
	}
	p.sampleRate = float64(dec.SampleRate)

	return p, nil
}

func decodeMP3(r io.Reader) (pcmData, error) {
	var p pcmData

	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return p, curated.Errorf(DecodeError, "mp3", err)
	}

	// the stream is always 16bit little endian stereo. a sample is four bytes
	chunk := make([]byte, 4096)
	for {
		n, err := dec.Read(chunk)
		for i := 0; i+1 < n; i += 4 {
			p.data = append(p.data, float32(int16(binary.LittleEndian.Uint16(chunk[i:]))))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return p, curated.Errorf(DecodeError, "mp3", err)
		}
	}
	p.sampleRate = float64(dec.SampleRate())

	return p, nil
}

// pulses converts the PCM data to a list of pulses. The first pulse begins at
// the first change of level.
func (p pcmData) pulses(clockSpeed float64) []tape.Pulse {
	if p.sampleRate <= 0 {
		return nil
	}

	var peak float64
	for _, v := range p.data {
		peak = max(peak, math.Abs(float64(v)))
	}
	if peak == 0 {
		return nil
	}
	threshold := float32(peak * hysteresis)

	tstatesPerSample := clockSpeed / p.sampleRate

	var pulses []tape.Pulse
	high := p.data[0] > 0
	started := false
	last := 0

	for i, v := range p.data {
		var flip bool
		if high {
			flip = v < -threshold
		} else {
			flip = v > threshold
		}
		if !flip {
			continue
		}
		high = !high

		if started {
			d := int(math.Round(float64(i-last) * tstatesPerSample))
			if n := len(pulses); n > 0 && pulses[n-1].Duration == d {
				pulses[n-1].Count++
			} else {
				pulses = append(pulses, tape.Pulse{Duration: d, Count: 1})
			}
		}
		started = true
		last = i
	}

	return pulses
}
