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
)

// ports of the Kempston mouse
const (
	MouseXPort      = 0xfbdf
	MouseYPort      = 0xffdf
	MouseButtonPort = 0xfadf
)

// bits of the button port. a reset bit is a pressed button
const (
	mouseRightButton = 0x01
	mouseLeftButton  = 0x02
)

// KempstonMouse is the Kempston mouse interface. The position registers are
// eight bit counters that wrap around.
type KempstonMouse struct {
	x, y    uint8
	buttons uint8
}

// NewKempstonMouse is the preferred method of initialisation for the
// KempstonMouse type.
func NewKempstonMouse() *KempstonMouse {
	m := &KempstonMouse{}
	m.Reset()
	return m
}

func (m *KempstonMouse) String() string {
	return fmt.Sprintf("mouse: x=%d y=%d buttons=%02x", m.x, m.y, m.buttons)
}

// ID implements the Device interface.
func (m *KempstonMouse) ID() ID {
	return IDKempstonMouse
}

// Register implements the Device interface.
func (m *KempstonMouse) Register(_ Host) {}

// Unregister implements the Device interface.
func (m *KempstonMouse) Unregister(_ Host) {}

// Reset implements the Device interface.
func (m *KempstonMouse) Reset() {
	m.x = 0
	m.y = 0
	m.buttons = 0xff
}

// In implements the Port interface.
func (m *KempstonMouse) In(port uint16) (uint8, bool) {
	switch port {
	case MouseXPort:
		return m.x, true
	case MouseYPort:
		return m.y, true
	case MouseButtonPort:
		return m.buttons, true
	}
	return 0xff, false
}

// Out implements the Port interface.
func (m *KempstonMouse) Out(_ uint16, _ uint8) bool {
	return false
}

// HandleEvent implements the Input interface. The Y axis of the mouse
// increases upwards.
func (m *KempstonMouse) HandleEvent(event Event, data EventData) error {
	switch event {
	case NoEvent:

	case MouseMove:
		d, ok := data.([2]int)
		if !ok {
			return curated.Errorf(BadEventData, m.ID(), event, data)
		}
		m.x = uint8(int(m.x) + d[0])
		m.y = uint8(int(m.y) - d[1])

	case MouseLeft, MouseRight:
		b, ok := data.(bool)
		if !ok {
			return curated.Errorf(BadEventData, m.ID(), event, data)
		}
		bit := uint8(mouseLeftButton)
		if event == MouseRight {
			bit = mouseRightButton
		}
		if b {
			m.buttons &^= bit
		} else {
			m.buttons |= bit
		}

	default:
		return curated.Errorf(UnhandledEvent, m.ID(), event)
	}

	return nil
}
