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

// Event represents an action that can be performed on an input device.
type Event string

// List of defined events.
const (
	NoEvent Event = "NoEvent" // nil

	// joysticks
	Fire  Event = "Fire"  // bool
	Up    Event = "Up"    // bool
	Down  Event = "Down"  // bool
	Left  Event = "Left"  // bool
	Right Event = "Right" // bool

	// mouse. movement is relative
	MouseMove  Event = "MouseMove"  // [2]int
	MouseLeft  Event = "MouseLeft"  // bool
	MouseRight Event = "MouseRight" // bool
)

// EventData is the value associated with the event. The underlying type is
// noted in the comment of each Event.
type EventData any

// Sentinal errors.
const (
	UnhandledEvent = "peripherals: %v: unhandled event (%v)"
	BadEventData   = "peripherals: %v: bad data for event %v (%T)"
	NotAttached    = "peripherals: %v: not attached"
	NotInput       = "peripherals: %v: not an input device"
)
