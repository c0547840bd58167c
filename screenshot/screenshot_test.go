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

package screenshot_test

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/notifications"
	"github.com/zxcore/zxcore/screenshot"
	"github.com/zxcore/zxcore/test"
)

func TestScreenshot(t *testing.T) {
	ch := notifications.NewChannel(10)
	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), ch)
	test.DemandSuccess(t, err)

	spec := specification.Spec48K
	tv := television.NewTelevision(spec)
	tv.SetFPSCap(false)

	sh := screenshot.NewScreenshot(env, tv)
	test.DemandImplements[television.FrameTrigger](t, sh)

	dir := t.TempDir()
	err = sh.Save(filepath.Join(dir, "none.png"))
	test.ExpectSuccess(t, curated.Is(err, screenshot.NoFrame))
	test.ExpectSuccess(t, sh.Image() == nil)

	w := spec.ScanlineWidth()
	h := spec.ScanlinesTotal()
	screen := make([]uint32, w*h)
	for i := range screen {
		screen[i] = 0xff000000
	}
	screen[0] = 0xffd70000

	test.DemandSuccess(t, tv.NewFrame(1, screen))
	test.ExpectEquality(t, sh.Frame(), 1)

	img := sh.Image()
	test.ExpectEquality(t, img.Bounds().Dx(), w)
	test.ExpectEquality(t, img.Bounds().Dy(), h)
	test.ExpectEquality(t, color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA), color.NRGBA{R: 0xd7, A: 0xff})
	test.ExpectEquality(t, color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA), color.NRGBA{A: 0xff})

	// whole number scaling keeps pixels sharp
	sh.Scale = 2
	img = sh.Image()
	test.ExpectEquality(t, img.Bounds().Dx(), w*2)
	test.ExpectEquality(t, color.NRGBAModel.Convert(img.At(1, 1)).(color.NRGBA), color.NRGBA{R: 0xd7, A: 0xff})
	test.ExpectEquality(t, color.NRGBAModel.Convert(img.At(2, 0)).(color.NRGBA), color.NRGBA{A: 0xff})

	fn := filepath.Join(dir, "test.png")
	test.DemandSuccess(t, sh.Save(fn))
	test.ExpectEquality(t, ch.Drain()[0], notifications.NotifyScreenshot)

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()
	dec, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.Bounds().Dy(), h*2)

	// files are not overwritten
	err = sh.Save(fn)
	test.ExpectSuccess(t, curated.Is(err, screenshot.FileExists))
}

func TestRequest(t *testing.T) {
	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), nil)
	test.DemandSuccess(t, err)

	spec := specification.Spec128K
	tv := television.NewTelevision(spec)
	tv.SetFPSCap(false)
	sh := screenshot.NewScreenshot(env, tv)

	fn := filepath.Join(t.TempDir(), "request.png")
	sh.Request(fn)

	_, err = os.Stat(fn)
	test.ExpectSuccess(t, os.IsNotExist(err))

	screen := make([]uint32, spec.ScanlineWidth()*spec.ScanlinesTotal())
	test.DemandSuccess(t, tv.NewFrame(1, screen))
	_, err = os.Stat(fn)
	test.ExpectSuccess(t, err)

	// the request is only made once
	test.DemandSuccess(t, tv.NewFrame(2, screen))
}
