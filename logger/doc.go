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

// Package logger is the central log for the emulation. Entries are tagged
// with the name of the component making the entry and the detail of the
// event. Consecutive duplicate entries are collapsed into a single entry with
// a repeat count.
//
// Logging is gated by the Permission interface. The environment of an
// emulation implements Permission so that secondary emulations (for example
// an emulation running ahead to compute a thumbnail) do not pollute the log.
// Use logger.Allow when the entry should always be made.
//
// The detail argument to Log() can be a string, an error or a fmt.Stringer.
// Other types are formatted with the %v verb.
package logger
