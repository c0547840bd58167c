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

// Sentinal errors.
const (
	UnsupportedFormat   = "snapshot: unsupported format (%s)"
	UnsupportedLength   = "snapshot: sna: unsupported length (%d)"
	UnsupportedVersion  = "snapshot: %s: unsupported version (%d)"
	UnsupportedHardware = "snapshot: %s: unsupported hardware (%d)"
	UnsupportedModel    = "snapshot: %s: cannot save %s"
	Truncated           = "snapshot: %s: truncated %s"
	BadMagic            = "snapshot: szx: not a szx file"
	BadPage             = "snapshot: %s: bad page (%d)"
	PageSize            = "snapshot: %s: page %d is %d bytes"
	TapeSize            = "snapshot: %s: embedded tape of %d bytes is too large"
	CompressionError    = "snapshot: %s: %v"
	RLEOverflow         = "snapshot: rle: data exceeds %d bytes"
	RLEUnderflow        = "snapshot: rle: data is %d bytes not %d"
)
