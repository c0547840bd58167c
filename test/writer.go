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

package test

import "strings"

// Writer is an implementation of io.Writer that can be used to capture output
// for comparison.
type Writer struct {
	buffer strings.Builder
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.buffer.Write(p)
}

// Compare buffered output with the predefined output.
func (w *Writer) Compare(s string) bool {
	return w.buffer.String() == s
}

// Clear the buffered output.
func (w *Writer) Clear() {
	w.buffer.Reset()
}

func (w *Writer) String() string {
	return w.buffer.String()
}
