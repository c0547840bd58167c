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

// Package prefs facilitates the storage of preferential values in the
// emulation. The Bool, Int, String and Float types are safe to read from one
// goroutine while being set from another.
//
// Preference values are collected into a Disk, which associates each value
// with a key and saves/loads them as a plain text file. A prefs file is shared
// between many Disk instances. When saving, entries not belonging to the Disk
// are preserved.
//
// The format of each line of a prefs file is:
//
//	key :: value
//
// Every type supports hook functions, called just before and just after the
// value is set. A pre-hook that returns an error prevents the value changing.
package prefs
