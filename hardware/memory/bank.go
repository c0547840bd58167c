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

package memory

import "fmt"

// BankSize is the size of every bank in the arena.
const BankSize = 8192

// Kind of memory in a bank.
type Kind int

// List of valid Kind values.
const (
	RAM Kind = iota
	ROM
	Junk
)

func (k Kind) String() string {
	switch k {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case Junk:
		return "junk"
	}
	return "unknown"
}

// Bank is an 8K block of memory.
type Bank struct {
	Kind Kind

	// index of bank within its kind. for RAM this is the 8K index and not the
	// 16K bank number
	Index int

	// accesses to the bank are subject to contention
	Contended bool

	Data [BankSize]uint8
}

func (b *Bank) String() string {
	return fmt.Sprintf("%s %d", b.Kind, b.Index)
}

// layout of the arena
const (
	numRAM = 16
	numROM = 8

	arenaROM         = numRAM
	arenaJunk        = numRAM + numROM
	arenaUnconnected = arenaJunk + 1
	arenaSize        = arenaUnconnected + 1
)

// RAMIndex returns the arena index of the 8K RAM bank.
func RAMIndex(n int) int {
	return n % numRAM
}

// ROMIndex returns the arena index of the 8K ROM bank.
func ROMIndex(n int) int {
	return arenaROM + n%numROM
}
