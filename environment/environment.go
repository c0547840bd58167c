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

// Package environment provides context for an emulation. Particularly useful
// when running more than one emulation in parallel.
package environment

import (
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/notifications"
	"github.com/zxcore/zxcore/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label of the main emulation.
const MainEmulation Label = ""

// Environment is used to provide context for an emulation.
type Environment struct {
	Label Label

	// any randomisation required by the emulation should be retrieved through
	// this field
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences

	// notifications are forwarded to this implementation if it is not nil
	Notifications notifications.Notify
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance will
// be created from the preferences file. Providing a non-nil value allows the
// preferences of more than one emulation to be synchronised.
func NewEnvironment(clock random.Clock, prefs *preferences.Preferences, notify notifications.Notify) (*Environment, error) {
	env := &Environment{
		Random:        random.NewRandom(clock),
		Notifications: notify,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}

// Notify implements the notifications.Notify interface.
func (env *Environment) Notify(notice notifications.Notice) error {
	if env.Notifications == nil {
		return nil
	}
	return env.Notifications.Notify(notice)
}
