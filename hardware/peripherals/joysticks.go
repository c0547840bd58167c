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
	"fmt"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/hardware/ula"
)

// bits of the Kempston port. a set bit is an active direction
const (
	kempstonRight = 0x01
	kempstonLeft  = 0x02
	kempstonDown  = 0x04
	kempstonUp    = 0x08
	kempstonFire  = 0x10
)

// Kempston is the Kempston joystick interface.
type Kempston struct {
	// decode the port using the top three bits of the low byte (port 0x1f).
	// otherwise only bit 5 is decoded
	FullDecode bool

	state uint8
}

// NewKempston is the preferred method of initialisation for the Kempston type.
func NewKempston(fullDecode bool) *Kempston {
	return &Kempston{
		FullDecode: fullDecode,
	}
}

func (kj *Kempston) String() string {
	return fmt.Sprintf("kempston: %05b", kj.state)
}

// ID implements the Device interface.
func (kj *Kempston) ID() ID {
	return IDKempstonJoystick
}

// Register implements the Device interface.
func (kj *Kempston) Register(_ Host) {}

// Unregister implements the Device interface.
func (kj *Kempston) Unregister(_ Host) {}

// Reset implements the Device interface.
func (kj *Kempston) Reset() {
	kj.state = 0
}

// Active returns true if the port is decoded by the interface.
func (kj *Kempston) Active(port uint16) bool {
	if kj.FullDecode {
		return port&0xe0 == 0
	}
	return port&0x20 == 0
}

// In implements the Port interface.
func (kj *Kempston) In(port uint16) (uint8, bool) {
	if kj.Active(port) {
		return kj.state, true
	}
	return 0xff, false
}

// Out implements the Port interface.
func (kj *Kempston) Out(_ uint16, _ uint8) bool {
	return false
}

// HandleEvent implements the Input interface.
func (kj *Kempston) HandleEvent(event Event, data EventData) error {
	var bit uint8

	switch event {
	case NoEvent:
		return nil
	case Fire:
		bit = kempstonFire
	case Up:
		bit = kempstonUp
	case Down:
		bit = kempstonDown
	case Left:
		bit = kempstonLeft
	case Right:
		bit = kempstonRight
	default:
		return curated.Errorf(UnhandledEvent, kj.ID(), event)
	}

	b, ok := data.(bool)
	if !ok {
		return curated.Errorf(BadEventData, kj.ID(), event, data)
	}

	if b {
		kj.state |= bit
	} else {
		kj.state &^= bit
	}

	return nil
}

// KeyJoystick is a joystick that is read through the keyboard. The Sinclair
// and Cursor joysticks are of this type.
type KeyJoystick struct {
	id   ID
	host Host
	keys map[Event]ula.Key
}

// NewSinclair1 returns the joystick on port 1 of the Interface 2. The
// joystick is read through keys 6 to 0.
func NewSinclair1() *KeyJoystick {
	return &KeyJoystick{
		id: IDSinclair1,
		keys: map[Event]ula.Key{
			Left:  ula.Key6,
			Right: ula.Key7,
			Down:  ula.Key8,
			Up:    ula.Key9,
			Fire:  ula.Key0,
		},
	}
}

// NewSinclair2 returns the joystick on port 2 of the Interface 2. The
// joystick is read through keys 1 to 5.
func NewSinclair2() *KeyJoystick {
	return &KeyJoystick{
		id: IDSinclair2,
		keys: map[Event]ula.Key{
			Left:  ula.Key1,
			Right: ula.Key2,
			Down:  ula.Key3,
			Up:    ula.Key4,
			Fire:  ula.Key5,
		},
	}
}

// NewCursor returns a Cursor (Protek/AGF) joystick. The joystick is read
// through the cursor keys 5 to 8 and 0 for fire.
func NewCursor() *KeyJoystick {
	return &KeyJoystick{
		id: IDCursorJoystick,
		keys: map[Event]ula.Key{
			Left:  ula.Key5,
			Down:  ula.Key6,
			Up:    ula.Key7,
			Right: ula.Key8,
			Fire:  ula.Key0,
		},
	}
}

func (kj *KeyJoystick) String() string {
	return kj.id.String()
}

// ID implements the Device interface.
func (kj *KeyJoystick) ID() ID {
	return kj.id
}

// Register implements the Device interface.
func (kj *KeyJoystick) Register(host Host) {
	kj.host = host
}

// Unregister implements the Device interface.
func (kj *KeyJoystick) Unregister(_ Host) {
	kj.release()
	kj.host = nil
}

// Reset implements the Device interface.
func (kj *KeyJoystick) Reset() {
	kj.release()
}

func (kj *KeyJoystick) release() {
	if kj.host == nil {
		return
	}
	for _, k := range kj.keys {
		kj.host.SetKey(k, false)
	}
}

// HandleEvent implements the Input interface.
func (kj *KeyJoystick) HandleEvent(event Event, data EventData) error {
	if event == NoEvent {
		return nil
	}

	k, ok := kj.keys[event]
	if !ok {
		return curated.Errorf(UnhandledEvent, kj.id, event)
	}

	b, ok := data.(bool)
	if !ok {
		return curated.Errorf(BadEventData, kj.id, event, data)
	}

	if kj.host != nil {
		kj.host.SetKey(k, b)
	}

	return nil
}
