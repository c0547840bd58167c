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

package preferences

import (
	"github.com/zxcore/zxcore/prefs"
	"github.com/zxcore/zxcore/resources"
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// load standard tape blocks in block mode when the loader detector locks
	// on to a loading routine. when false the tape is always played with
	// exact pulse timing
	FastLoad prefs.Bool

	// start the tape when the loader detector locks on to a loading routine
	AutoPlay prefs.Bool

	// stop the tape when no loader activity has been seen for a while
	AutoStop prefs.Bool

	// fast forward the tape to the next edge while a detected loader is
	// polling the EAR bit
	Accelerate prefs.Bool

	// emulate the keyboard of issue 2 machines. affects the value of bit 6 of
	// the ULA port when the tape is not playing
	Issue2 prefs.Bool

	// late timings shift contention and the raster by one t-state
	LateTimings prefs.Bool

	// attach a ULA+ device on reset
	ULAPlus prefs.Bool

	// use ACB stereo for the AY chip rather than ABC
	StereoACB prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the global preferences file.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		v   *prefs.Bool
	}{
		{"hardware.tape.fastload", &p.FastLoad},
		{"hardware.tape.autoplay", &p.AutoPlay},
		{"hardware.tape.autostop", &p.AutoStop},
		{"hardware.tape.accelerate", &p.Accelerate},
		{"hardware.ula.issue2", &p.Issue2},
		{"hardware.ula.latetimings", &p.LateTimings},
		{"hardware.ulaplus", &p.ULAPlus},
		{"hardware.ay.stereoACB", &p.StereoACB},
	} {
		if err := p.dsk.Add(e.key, e.v); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// NewDefaultPreferences returns preferences with default values that are not
// backed by the preferences file. Load() and Save() do nothing.
func NewDefaultPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.FastLoad.Set(true)
	p.AutoPlay.Set(true)
	p.AutoStop.Set(true)
	p.Accelerate.Set(true)
	p.Issue2.Set(false)
	p.LateTimings.Set(false)
	p.ULAPlus.Set(false)
	p.StereoACB.Set(false)
}

// Load hardware preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load()
}

// Save hardware preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
