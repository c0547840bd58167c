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
	"encoding/binary"

	"github.com/zxcore/zxcore/curated"
)

// Sentinal errors.
const (
	TAPTruncated = "tape: tap: block %d is truncated"
	TAPEmpty     = "tape: tap: no blocks"
)

// the pause after every block of a TAP file, in milliseconds
const tapPause = 1000

// LoadTAP converts the contents of a TAP file to tape blocks. A TAP file is a
// sequence of standard blocks, each preceded by its length.
func LoadTAP(data []uint8) ([]Block, error) {
	var blocks []Block

	for n := 0; len(data) > 0; n++ {
		if len(data) < 2 {
			return nil, curated.Errorf(TAPTruncated, n)
		}

		l := int(binary.LittleEndian.Uint16(data))
		data = data[2:]
		if l > len(data) {
			return nil, curated.Errorf(TAPTruncated, n)
		}

		// zero length blocks are legal and are ignored
		if l > 0 {
			blocks = append(blocks, StandardBlocks(data[:l:l], tapPause)...)
		}
		data = data[l:]
	}

	if len(blocks) == 0 {
		return nil, curated.Errorf(TAPEmpty)
	}

	return blocks, nil
}

// SaveTAP is the inverse of LoadTAP. Only the payloads of standard data
// blocks are saved. Every other block is ignored.
func SaveTAP(blocks []Block) []uint8 {
	var data []uint8
	for _, b := range blocks {
		if d, ok := b.(DataSequence); ok && d.Standard {
			data = binary.LittleEndian.AppendUint16(data, uint16(len(d.Data)))
			data = append(data, d.Data...)
		}
	}
	return data
}
