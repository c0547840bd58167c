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
	"slices"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/logger"
)

const logTag = "peripherals"

// Registry is the set of devices attached to the host.
type Registry struct {
	env  *environment.Environment
	host Host

	// in order of attachment
	devices []Device

	// the subset of devices that produce sound
	audio []Audio
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry(env *environment.Environment, host Host) *Registry {
	return &Registry{
		env:  env,
		host: host,
	}
}

// Attach a device. A device already attached with the same ID is detached
// first.
func (r *Registry) Attach(dev Device) {
	r.Detach(dev.ID())
	r.devices = append(r.devices, dev)
	r.filterAudio()
	dev.Register(r.host)
	logger.Logf(r.env, logTag, "attached %s", dev.ID())
}

// Detach the device with the ID. Returns false if no such device is
// attached.
func (r *Registry) Detach(id ID) bool {
	i := slices.IndexFunc(r.devices, func(d Device) bool { return d.ID() == id })
	if i == -1 {
		return false
	}
	dev := r.devices[i]
	r.devices = slices.Delete(r.devices, i, i+1)
	r.filterAudio()
	dev.Unregister(r.host)
	logger.Logf(r.env, logTag, "detached %s", id)
	return true
}

// Get returns the attached device with the ID. Returns nil if there is no
// such device.
func (r *Registry) Get(id ID) Device {
	for _, d := range r.devices {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// Devices returns the attached devices in the order they were attached.
func (r *Registry) Devices() []Device {
	return r.devices
}

// ResetAll resets every attached device.
func (r *Registry) ResetAll() {
	for _, d := range r.devices {
		d.Reset()
	}
}

// In offers the port read to every port device. The value of the first device
// to respond is returned.
func (r *Registry) In(port uint16) (uint8, bool) {
	for _, d := range r.devices {
		if p, ok := d.(Port); ok {
			if v, ok := p.In(port); ok {
				return v, true
			}
		}
	}
	return 0xff, false
}

// Out offers the port write to every port device. Returns true if any device
// responded.
func (r *Registry) Out(port uint16, data uint8) bool {
	var responded bool
	for _, d := range r.devices {
		if p, ok := d.(Port); ok {
			responded = p.Out(port, data) || responded
		}
	}
	return responded
}

func (r *Registry) filterAudio() {
	r.audio = r.audio[:0]
	for _, d := range r.devices {
		if ad, ok := d.(Audio); ok {
			r.audio = append(r.audio, ad)
		}
	}
}

// AudioDevices returns the attached devices that produce sound.
func (r *Registry) AudioDevices() []Audio {
	return r.audio
}

// HandleEvent forwards the event to the input device with the ID.
func (r *Registry) HandleEvent(id ID, event Event, data EventData) error {
	d := r.Get(id)
	if d == nil {
		return curated.Errorf(NotAttached, id)
	}
	in, ok := d.(Input)
	if !ok {
		return curated.Errorf(NotInput, id)
	}
	return in.HandleEvent(event, data)
}
