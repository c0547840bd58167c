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

//go:build headless

package otoaudio

import (
	"github.com/zxcore/zxcore/logger"
)

// Audio discards all audio in headless builds.
type Audio struct{}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(_ logger.Permission) (*Audio, error) {
	return &Audio{}, nil
}

// SetAudio implements the television.AudioMixer interface.
func (aud *Audio) SetAudio(_ []int16) error {
	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (aud *Audio) EndMixing() error {
	return nil
}
