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

package peripherals

import (
	"github.com/zxcore/zxcore/hardware/ula"
)

// ID identifies the type of a device.
type ID int

// List of valid ID values.
const (
	IDULAPlus ID = iota
	IDKempstonJoystick
	IDSinclair1
	IDSinclair2
	IDCursorJoystick
	IDKempstonMouse
	IDAY
)

func (id ID) String() string {
	switch id {
	case IDULAPlus:
		return "ULA+"
	case IDKempstonJoystick:
		return "Kempston Joystick"
	case IDSinclair1:
		return "Sinclair 1"
	case IDSinclair2:
		return "Sinclair 2"
	case IDCursorJoystick:
		return "Cursor Joystick"
	case IDKempstonMouse:
		return "Kempston Mouse"
	case IDAY:
		return "AY-3-8912"
	}
	return "unknown device"
}

// Host is the machine the devices are attached to.
type Host interface {
	// bring the screen up to date with the current clock. called before a
	// change that affects the display
	FlushScreen()

	// install a replacement palette in the screen renderer. nil removes the
	// replacement
	SetPaletteOverride(ula.PaletteOverride)

	// change the state of a key on the keyboard
	SetKey(key ula.Key, pressed bool)
}

// Device is implemented by all devices.
type Device interface {
	ID() ID

	// the device has been attached to or detached from the host
	Register(host Host)
	Unregister(host Host)

	// reset the state of the device. this happens when the machine is reset
	Reset()
}

// Port is implemented by devices that respond to port reads and writes.
type Port interface {
	Device

	// In returns the value of the port and whether the device responded
	In(port uint16) (uint8, bool)

	// Out returns true if the device responded to the write
	Out(port uint16, data uint8) bool
}

// Audio is implemented by devices that produce sound.
type Audio interface {
	Device

	// advance the device by the number of t-states
	Update(delta int)

	// the stereo output of the device, averaged since the previous call
	Sample() (int16, int16)

	// use ACB stereo rather than ABC
	SetStereoACB(acb bool)
}

// Input is implemented by devices that are controlled by the user.
type Input interface {
	Device
	HandleEvent(event Event, data EventData) error
}
