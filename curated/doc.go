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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values and returns an error. The pattern
// is retained so that errors can be identified later without string
// comparison of the formatted message:
//
//	const UnsupportedLength = "sna: unsupported length (%d)"
//
//	err := curated.Errorf(UnsupportedLength, len(data))
//	if curated.Is(err, UnsupportedLength) {
//		...
//	}
//
// The Has() function is similar but checks if the pattern occurs anywhere in
// the error chain. Chains are built by using a curated error as one of the
// placeholder values of another curated error.
//
// The Error() function normalises the message, removing duplicate adjacent
// parts. For the purposes of this package a chain is composed of parts
// separated by ': '. This means that wrapping an error with a pattern that
// starts with the same component name does not result in messages like:
//
//	snapshot: snapshot: szx: bad magic
//
// Curated errors also work with the standard errors.Unwrap() function. The
// first placeholder value that is an error is returned by Unwrap().
package curated
