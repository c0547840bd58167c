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

package peripherals_test

import (
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/peripherals"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/ula"
	"github.com/zxcore/zxcore/test"
)

type host struct {
	flushes  int
	override ula.PaletteOverride
	keys     map[ula.Key]bool
}

func newHost() *host {
	return &host{keys: make(map[ula.Key]bool)}
}

func (h *host) FlushScreen() {
	h.flushes++
}

func (h *host) SetPaletteOverride(o ula.PaletteOverride) {
	h.override = o
}

func (h *host) SetKey(key ula.Key, pressed bool) {
	h.keys[key] = pressed
}

func newRegistry(t *testing.T) (*peripherals.Registry, *host) {
	t.Helper()
	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), nil)
	test.DemandSuccess(t, err)
	h := newHost()
	return peripherals.NewRegistry(env, h), h
}

func TestRegistry(t *testing.T) {
	r, h := newRegistry(t)

	up := peripherals.NewULAPlus()
	r.Attach(up)
	test.ExpectEquality(t, h.override == nil, false)

	r.Attach(peripherals.NewAY())
	r.Attach(peripherals.NewKempston(true))
	test.ExpectEquality(t, len(r.Devices()), 3)
	test.ExpectEquality(t, len(r.AudioDevices()), 1)

	// attaching a device with the same id replaces the existing device
	up2 := peripherals.NewULAPlus()
	r.Attach(up2)
	test.ExpectEquality(t, len(r.Devices()), 3)
	test.ExpectEquality(t, r.Get(peripherals.IDULAPlus) == peripherals.Device(up2), true)
	test.ExpectEquality(t, h.override == ula.PaletteOverride(up2), true)

	test.ExpectSuccess(t, r.Detach(peripherals.IDULAPlus))
	test.ExpectFailure(t, r.Detach(peripherals.IDULAPlus))
	test.ExpectEquality(t, h.override == nil, true)
	test.ExpectEquality(t, r.Get(peripherals.IDULAPlus) == nil, true)

	test.ExpectSuccess(t, r.Detach(peripherals.IDAY))
	test.ExpectEquality(t, len(r.AudioDevices()), 0)

	err := r.HandleEvent(peripherals.IDKempstonMouse, peripherals.Fire, true)
	test.ExpectSuccess(t, curated.Is(err, peripherals.NotAttached))
}

func TestKempston(t *testing.T) {
	r, _ := newRegistry(t)
	r.Attach(peripherals.NewKempston(true))

	v, ok := r.In(0x001f)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0x00))

	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonJoystick, peripherals.Fire, true))
	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonJoystick, peripherals.Left, true))
	v, _ = r.In(0x001f)
	test.ExpectEquality(t, v, uint8(0x12))

	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonJoystick, peripherals.Left, false))
	v, _ = r.In(0x001f)
	test.ExpectEquality(t, v, uint8(0x10))

	// full decoding does not respond to port 0xdf
	_, ok = r.In(0x00df)
	test.ExpectFailure(t, ok)

	err := r.HandleEvent(peripherals.IDKempstonJoystick, peripherals.MouseLeft, true)
	test.ExpectSuccess(t, curated.Is(err, peripherals.UnhandledEvent))
	err = r.HandleEvent(peripherals.IDKempstonJoystick, peripherals.Fire, 10)
	test.ExpectSuccess(t, curated.Is(err, peripherals.BadEventData))

	r.ResetAll()
	v, _ = r.In(0x001f)
	test.ExpectEquality(t, v, uint8(0x00))

	kj := peripherals.NewKempston(false)
	test.ExpectSuccess(t, kj.Active(0x00df))
	test.ExpectFailure(t, kj.Active(0x00ff))
}

func TestKeyJoysticks(t *testing.T) {
	r, h := newRegistry(t)
	r.Attach(peripherals.NewSinclair1())
	r.Attach(peripherals.NewSinclair2())
	r.Attach(peripherals.NewCursor())

	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDSinclair1, peripherals.Fire, true))
	test.ExpectEquality(t, h.keys[ula.Key0], true)
	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDSinclair2, peripherals.Up, true))
	test.ExpectEquality(t, h.keys[ula.Key4], true)
	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDCursorJoystick, peripherals.Right, true))
	test.ExpectEquality(t, h.keys[ula.Key8], true)

	// detaching releases the keys
	test.ExpectSuccess(t, r.Detach(peripherals.IDSinclair2))
	test.ExpectEquality(t, h.keys[ula.Key4], false)

	err := r.HandleEvent(peripherals.IDCursorJoystick, peripherals.MouseMove, [2]int{1, 1})
	test.ExpectSuccess(t, curated.Is(err, peripherals.UnhandledEvent))
}

func TestMouse(t *testing.T) {
	r, _ := newRegistry(t)
	r.Attach(peripherals.NewKempstonMouse())

	v, ok := r.In(peripherals.MouseButtonPort)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0xff))

	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonMouse, peripherals.MouseMove, [2]int{10, 5}))
	v, _ = r.In(peripherals.MouseXPort)
	test.ExpectEquality(t, v, uint8(10))
	v, _ = r.In(peripherals.MouseYPort)
	test.ExpectEquality(t, v, uint8(251))

	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonMouse, peripherals.MouseLeft, true))
	v, _ = r.In(peripherals.MouseButtonPort)
	test.ExpectEquality(t, v, uint8(0xfd))

	// movement wraps around
	test.ExpectSuccess(t, r.HandleEvent(peripherals.IDKempstonMouse, peripherals.MouseMove, [2]int{-20, 0}))
	v, _ = r.In(peripherals.MouseXPort)
	test.ExpectEquality(t, v, uint8(246))
}

func TestULAPlus(t *testing.T) {
	r, h := newRegistry(t)
	up := peripherals.NewULAPlus()
	r.Attach(up)

	test.ExpectFailure(t, up.PaletteActive())

	// select palette entry 3 and write a colour
	test.ExpectSuccess(t, r.Out(peripherals.ULAPlusRegisterPort, 0x03))
	test.ExpectSuccess(t, r.Out(peripherals.ULAPlusDataPort, 0xff))
	test.ExpectEquality(t, up.PaletteEntry(3), uint32(0xffffffff))
	test.ExpectEquality(t, h.flushes, 1)

	v, ok := r.In(peripherals.ULAPlusDataPort)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0xff))

	// mode group enables the palette
	r.Out(peripherals.ULAPlusRegisterPort, 0x40)
	r.Out(peripherals.ULAPlusDataPort, 0x01)
	test.ExpectSuccess(t, up.PaletteActive())
	reg, enabled := up.State()
	test.ExpectEquality(t, reg, uint8(0x40))
	test.ExpectSuccess(t, enabled)

	// writing the same value again does not flush the screen
	r.Out(peripherals.ULAPlusDataPort, 0x01)
	test.ExpectEquality(t, h.flushes, 2)

	r.ResetAll()
	test.ExpectFailure(t, up.PaletteActive())
}

func TestULAPlusDataExpansion(t *testing.T) {
	r, _ := newRegistry(t)
	up := peripherals.NewULAPlus()
	r.Attach(up)

	r.Out(peripherals.ULAPlusRegisterPort, 0x04)
	r.Out(peripherals.ULAPlusDataPort, 0x01)
	test.ExpectEquality(t, up.PaletteEntry(4), uint32(0xff00006f))

	r.Out(peripherals.ULAPlusRegisterPort, 0x05)
	r.Out(peripherals.ULAPlusDataPort, 0x02)
	test.ExpectEquality(t, up.PaletteEntry(5), uint32(0xff000090))

	r.Out(peripherals.ULAPlusRegisterPort, 0x06)
	r.Out(peripherals.ULAPlusDataPort, 0x04)
	test.ExpectEquality(t, up.PaletteEntry(6), uint32(0xff250000))
}

func TestPaletteBytes(t *testing.T) {
	up := peripherals.NewULAPlus()

	var p [64]uint8
	for i := range p {
		p[i] = uint8(i * 37)
	}
	up.SetPaletteBytes(p)
	test.ExpectEquality(t, up.PaletteBytes(), p)

	// expansion is by bit replication as hmlhmlml
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x1c), uint32(0xff0000))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0xe0), uint32(0x00ff00))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x03), uint32(0x0000ff))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x01), uint32(0x00006f))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x02), uint32(0x000090))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x04), uint32(0x250000))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x20), uint32(0x002500))
	test.ExpectEquality(t, peripherals.ExpandG3R3B2(0x94), uint32(0xb59000))

	for v := range 256 {
		test.ExpectEquality(t, peripherals.PackG3R3B2(peripherals.ExpandG3R3B2(uint8(v))), uint8(v))
	}
}

func TestAY(t *testing.T) {
	r, _ := newRegistry(t)
	ay := peripherals.NewAY()
	r.Attach(ay)

	// register 1 is four bits wide
	r.Out(peripherals.AYRegisterPort, 1)
	r.Out(peripherals.AYDataPort, 0xff)
	v, ok := r.In(peripherals.AYRegisterPort)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint8(0x0f))

	regs, selected := ay.Registers()
	test.ExpectEquality(t, selected, uint8(1))
	test.ExpectEquality(t, regs[1], uint8(0x0f))

	// silence with all channels at zero volume
	ay.Update(16 * 100)
	left, right := ay.Sample()
	test.ExpectEquality(t, left, int16(0))
	test.ExpectEquality(t, right, int16(0))

	// channel A at full volume with tone and noise disabled is a constant
	// level on the left
	ay.WriteRegister(7, 0x3f)
	ay.WriteRegister(8, 0x0f)
	ay.Update(16 * 100)
	left, right = ay.Sample()
	test.ExpectEquality(t, left, int16(8191))
	test.ExpectEquality(t, right, int16(0))

	// ACB stereo puts channel B on the right
	ay.SetStereoACB(true)
	ay.WriteRegister(8, 0)
	ay.WriteRegister(9, 0x0f)
	ay.Update(16 * 100)
	left, right = ay.Sample()
	test.ExpectEquality(t, left, int16(0))
	test.ExpectEquality(t, right, int16(8191))

	// no steps since the last sample
	left, right = ay.Sample()
	test.ExpectEquality(t, left, int16(0))
	test.ExpectEquality(t, right, int16(0))
}

func TestAYTone(t *testing.T) {
	ay := peripherals.NewAY()

	// a tone period of 10 steps is a square wave with a period of 320
	// t-states. averaged over whole periods the level is half the volume
	ay.WriteRegister(0, 10)
	ay.WriteRegister(7, 0x3e)
	ay.WriteRegister(8, 0x0f)
	ay.Update(320 * 10)
	left, _ := ay.Sample()
	test.ExpectApproximate(t, left, int16(8191/2), 0.01)
}

func TestAYEnvelope(t *testing.T) {
	ay := peripherals.NewAY()

	// decay then hold. the envelope period is 1 which is two steps per level
	ay.WriteRegister(7, 0x3f)
	ay.WriteRegister(8, 0x10)
	ay.WriteRegister(11, 1)
	ay.WriteRegister(13, 0x09)

	ay.Update(16)
	left, _ := ay.Sample()
	test.ExpectEquality(t, left, int16(8191))

	ay.Update(16 * 2 * 20)
	ay.Sample()
	ay.Update(16)
	left, _ = ay.Sample()
	test.ExpectEquality(t, left, int16(0))
}
