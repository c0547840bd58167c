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

package ula

// Key is a key of the Spectrum keyboard. The value of the key encodes its
// position in the keyboard matrix. The half-row is Key/5 and the bit is Key%5.
type Key int

// List of valid Key values, in matrix order.
const (
	KeyCapsShift Key = iota
	KeyZ
	KeyX
	KeyC
	KeyV

	KeyA
	KeyS
	KeyD
	KeyF
	KeyG

	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT

	Key1
	Key2
	Key3
	Key4
	Key5

	Key0
	Key9
	Key8
	Key7
	Key6

	KeyP
	KeyO
	KeyI
	KeyU
	KeyY

	KeyEnter
	KeyL
	KeyK
	KeyJ
	KeyH

	KeySpace
	KeySymbolShift
	KeyM
	KeyN
	KeyB

	NumKeys
)

// SetKey changes the state of a key. The change is not seen by the machine
// until the next call to RefreshInput().
func (ula *ULA) SetKey(key Key, pressed bool) {
	if key < 0 || key >= NumKeys {
		return
	}
	row := key / 5
	bit := uint8(1 << (key % 5))
	if pressed {
		ula.keyNext[row] &^= bit
	} else {
		ula.keyNext[row] |= bit
	}
}

// RefreshInput makes key changes visible to the machine.
func (ula *ULA) RefreshInput() {
	ula.keyLine = ula.keyNext
}

// KeyLines returns the current state of the keyboard matrix. A reset bit is a
// pressed key.
func (ula *ULA) KeyLines() [8]uint8 {
	return ula.keyLine
}

// SetKeyLines replaces the state of the keyboard matrix immediately.
func (ula *ULA) SetKeyLines(lines [8]uint8) {
	ula.keyLine = lines
	ula.keyNext = lines
}
