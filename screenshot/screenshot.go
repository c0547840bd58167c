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

// Package screenshot saves the output of the television as a PNG file. The
// Screenshot type implements the television.FrameTrigger interface and keeps
// a copy of the most recent frame.
//
// The image can be scaled. Scaling by a whole number uses nearest neighbour
// sampling so that pixels remain sharp. Otherwise the image is resampled with
// the CatmullRom kernel.
package screenshot

import (
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/zxcore/zxcore/curated"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/notifications"
	"golang.org/x/image/draw"
)

const logTag = "screenshot"

// Sentinal errors.
const (
	NoFrame    = "screenshot: no frame to save"
	FileExists = "screenshot: file already exists (%s)"
	SaveError  = "screenshot: %v"
)

// Screenshot keeps the most recent frame from the television.
type Screenshot struct {
	env *environment.Environment
	tv  *television.Television

	crit sync.Mutex

	// the scale applied to the image when it is saved. a value of zero or
	// less is treated as one
	Scale float64

	last     *image.NRGBA
	frameNum int

	// filename of a screenshot to be saved at the end of the next frame
	pending string
}

// NewScreenshot is the preferred method of initialisation for the Screenshot
// type. The Screenshot is added to the television as a FrameTrigger.
func NewScreenshot(env *environment.Environment, tv *television.Television) *Screenshot {
	sh := &Screenshot{
		env:   env,
		tv:    tv,
		Scale: 1,
	}
	tv.AddFrameTrigger(sh)
	return sh
}

// NewFrame implements the television.FrameTrigger interface.
func (sh *Screenshot) NewFrame(frameNum int, screen []uint32) error {
	sh.crit.Lock()
	defer sh.crit.Unlock()

	width := sh.tv.GetSpec().ScanlineWidth()
	if width <= 0 {
		return nil
	}
	height := len(screen) / width

	if sh.last == nil || sh.last.Rect.Dx() != width || sh.last.Rect.Dy() != height {
		sh.last = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	for i, p := range screen[:width*height] {
		o := i * 4
		sh.last.Pix[o] = uint8(p >> 16)
		sh.last.Pix[o+1] = uint8(p >> 8)
		sh.last.Pix[o+2] = uint8(p)
		sh.last.Pix[o+3] = uint8(p >> 24)
	}
	sh.frameNum = frameNum

	if sh.pending != "" {
		fn := sh.pending
		sh.pending = ""
		return sh.save(fn)
	}

	return nil
}

// Request a screenshot of the next complete frame. The error from saving the
// file is returned by the television when the frame ends.
func (sh *Screenshot) Request(filename string) {
	sh.crit.Lock()
	defer sh.crit.Unlock()
	sh.pending = filename
}

// Frame returns the number of the most recent frame.
func (sh *Screenshot) Frame() int {
	sh.crit.Lock()
	defer sh.crit.Unlock()
	return sh.frameNum
}

// Image returns a scaled copy of the most recent frame. Returns nil if there
// has been no frame.
func (sh *Screenshot) Image() image.Image {
	sh.crit.Lock()
	defer sh.crit.Unlock()
	return sh.scaled()
}

func (sh *Screenshot) scaled() *image.NRGBA {
	if sh.last == nil {
		return nil
	}

	scale := max(sh.Scale, 1.0)
	src := sh.last.Rect
	dst := image.NewNRGBA(image.Rect(0, 0, int(float64(src.Dx())*scale), int(float64(src.Dy())*scale)))

	var scaler draw.Scaler
	if scale == float64(int(scale)) {
		scaler = draw.NearestNeighbor
	} else {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Rect, sh.last, src, draw.Src, nil)

	return dst
}

// Save the most recent frame to the named file as a PNG. An existing file is
// not overwritten.
func (sh *Screenshot) Save(filename string) error {
	sh.crit.Lock()
	defer sh.crit.Unlock()
	return sh.save(filename)
}

func (sh *Screenshot) save(filename string) (rerr error) {
	img := sh.scaled()
	if img == nil {
		return curated.Errorf(NoFrame)
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return curated.Errorf(FileExists, filename)
		}
		return curated.Errorf(SaveError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(SaveError, err)
		}
	}()

	err = png.Encode(f, img)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	logger.Logf(sh.env, logTag, "saved frame %d to %s", sh.frameNum, filename)

	return sh.env.Notify(notifications.NotifyScreenshot)
}
