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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
)

// Video is an implementation of the television.PixelRenderer interface. Every
// frame is hashed with the hash of the previous frame.
type Video struct {
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int
}

// the number of bytes per pixel. the alpha channel of the ScreenBuffer is not
// included
const pixelDepth = 3

// NewVideo is the preferred method of initialisation for the Video type. The
// Video type is added to the television as a PixelRenderer.
func NewVideo(tv *television.Television) (*Video, error) {
	dig := &Video{}

	err := tv.AddPixelRenderer(dig)
	if err != nil {
		return nil, curated.Errorf("digest: video: %v", err)
	}

	return dig, nil
}

// Hash implements the digest.Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
}

// Frame returns the number of the most recently hashed frame.
func (dig *Video) Frame() int {
	return dig.frameNum
}

// Resize implements the television.PixelRenderer interface.
func (dig *Video) Resize(_ specification.Spec, width int, height int) error {
	// the pixels array contains enough room for the previous frame's digest
	// value
	dig.pixels = make([]byte, len(dig.digest)+width*height*pixelDepth)
	return nil
}

// NewFrame implements the television.PixelRenderer interface.
func (dig *Video) NewFrame(frameNum int, screen []uint32) error {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf("digest: video: digest error during new frame")
	}

	var rgb [4]byte
	i := n
	for _, p := range screen {
		if i > len(dig.pixels)-pixelDepth {
			break
		}
		binary.BigEndian.PutUint32(rgb[:], p)
		copy(dig.pixels[i:], rgb[1:])
		i += pixelDepth
	}

	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frameNum

	return nil
}

// EndRendering implements the television.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
