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

package snapshot

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/logger"
)

const logTag = "snapshot"

// Format is a snapshot file format.
type Format int

// List of valid Format values.
const (
	FormatSNA Format = iota
	FormatZ80
	FormatSZX
)

func (f Format) String() string {
	switch f {
	case FormatSNA:
		return "SNA"
	case FormatZ80:
		return "Z80"
	case FormatSZX:
		return "SZX"
	}
	return "unknown"
}

// FormatFromFilename returns the snapshot format indicated by the extension
// of the filename.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	switch strings.ToLower(ext) {
	case ".sna":
		return FormatSNA, nil
	case ".z80":
		return FormatZ80, nil
	case ".szx":
		return FormatSZX, nil
	}
	return 0, curated.Errorf(UnsupportedFormat, ext)
}

// Decode parses data in the specified format.
func Decode(format Format, data []uint8) (*State, error) {
	switch format {
	case FormatSNA:
		return LoadSNA(data)
	case FormatZ80:
		return LoadZ80(data)
	case FormatSZX:
		return LoadSZX(data)
	}
	return nil, curated.Errorf(UnsupportedFormat, format)
}

// Encode the State in the specified format.
func Encode(format Format, st *State) ([]uint8, error) {
	if st.Spec.FrameLength == 0 {
		return nil, curated.Errorf(UnsupportedModel, format, "unspecified model")
	}

	switch format {
	case FormatSNA:
		return SaveSNA(st)
	case FormatZ80:
		return SaveZ80(st)
	case FormatSZX:
		return SaveSZX(st)
	}
	return nil, curated.Errorf(UnsupportedFormat, format)
}

// Load a snapshot file. The format is decided by the file extension.
func Load(env *environment.Environment, filename string) (*State, error) {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf("snapshot: %v", err)
	}

	st, err := Decode(format, data)
	if err != nil {
		return nil, err
	}

	logger.Logf(env, logTag, "%s loaded as %s (%s)", filepath.Base(filename), st.Spec, format)
	if st.Creator != "" {
		logger.Logf(env, logTag, "created by %s", st.Creator)
	}

	return st, nil
}

// Save the State to a file. The format is decided by the file extension.
func Save(env *environment.Environment, filename string, st *State) error {
	format, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}

	data, err := Encode(format, st)
	if err != nil {
		return err
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	logger.Logf(env, logTag, "%s saved (%s)", filepath.Base(filename), format)

	return nil
}
