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
	"github.com/zxcore/zxcore/curated"
)

// the run length encoding used by the Z80 format. a run is introduced by two
// ED bytes and followed by the count and the value to repeat
const (
	rleMarker = 0xed

	// runs shorter than this are stored as literals. the exception is a run
	// of ED bytes, which is always encoded
	rleMinRun = 5
	rleMaxRun = 255
)

// Compress encodes data with the run length encoding of the Z80 format.
func Compress(data []uint8) []uint8 {
	out := make([]uint8, 0, len(data))

	for i := 0; i < len(data); {
		v := data[i]

		n := 1
		for i+n < len(data) && data[i+n] == v && n < rleMaxRun {
			n++
		}

		if n >= rleMinRun || (v == rleMarker && n >= 2) {
			out = append(out, rleMarker, rleMarker, uint8(n), v)
			i += n
			continue
		}

		out = append(out, v)
		i++

		// the byte following a single ED is always a literal
		if v == rleMarker && i < len(data) {
			out = append(out, data[i])
			i++
		}
	}

	return out
}

// Decompress is the inverse of Compress. The decoded data must be exactly
// size bytes long.
func Decompress(data []uint8, size int) ([]uint8, error) {
	out := make([]uint8, 0, size)

	for i := 0; i < len(data); {
		if data[i] == rleMarker && i+1 < len(data) && data[i+1] == rleMarker {
			if i+3 >= len(data) {
				return nil, curated.Errorf(Truncated, "rle", "run")
			}
			n := int(data[i+2])
			if len(out)+n > size {
				return nil, curated.Errorf(RLEOverflow, size)
			}
			for range n {
				out = append(out, data[i+3])
			}
			i += 4
			continue
		}

		if len(out) >= size {
			return nil, curated.Errorf(RLEOverflow, size)
		}
		out = append(out, data[i])
		i++
	}

	if len(out) != size {
		return nil, curated.Errorf(RLEUnderflow, len(out), size)
	}

	return out, nil
}
