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

// Package digest contains implementations of television interfaces, namely
// PixelRenderer and AudioMixer, such that a cryptographic hash is produced.
// The hash can then be used to compare output from subsequent emulation
// executions. If a new hash differs from a previously recorded value then
// something has changed. This is the basis for regression tests.
//
// Each hash is chained. The digest of the previous frame (or audio buffer) is
// included in the data for the next digest, so the final value is a
// fingerprint of the entire run and not just of the most recent output.
package digest

// Digest implementations return a cryptographic hash in response to a Hash()
// request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
