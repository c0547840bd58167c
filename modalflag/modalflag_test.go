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

package modalflag_test

import (
	"testing"

	"github.com/zxcore/zxcore/modalflag"
	"github.com/zxcore/zxcore/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"game.tap", "extra"})

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "game.tap")
	test.ExpectEquality(t, md.GetArg(1), "extra")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"-model", "128k", "-frames=10", "-fast", "game.tap"})

	model := md.AddString("model", "48k", "machine model")
	frames := md.AddInt("frames", 0, "number of frames")
	fast := md.AddBool("fast", false, "run without frame cap")
	scale := md.AddFloat64("scale", 1.0, "screenshot scale")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *model, "128k")
	test.ExpectEquality(t, *frames, 10)
	test.ExpectSuccess(t, *fast)
	test.ExpectEquality(t, *scale, 1.0)
	test.ExpectEquality(t, md.GetArg(0), "game.tap")

	var set []string
	md.Visit(func(flag string) {
		set = append(set, flag)
	})
	test.ExpectEquality(t, len(set), 3)
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, p, modalflag.ParseError)
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"snapshot", "convert", "a.z80", "b.szx"})
	md.AddSubModes("run", "snapshot", "version")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "SNAPSHOT")

	md.NewMode()
	md.AddSubModes("info", "convert")
	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "CONVERT")
	test.ExpectEquality(t, md.Path(), "SNAPSHOT/CONVERT")
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "b.szx")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"game.tap"})
	md.AddSubModes("run", "version")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
	test.ExpectEquality(t, md.GetArg(0), "game.tap")

	// a new argument list forgets the path
	md.NewArgs([]string{"VERSION"})
	md.AddSubModes("run", "version")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Path(), "VERSION")
}

func TestHelp(t *testing.T) {
	tw := &test.Writer{}
	md := modalflag.Modes{Output: tw}

	md.NewArgs([]string{"-help"})
	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, tw.String(), "No help available\n")

	tw.Clear()
	md.NewArgs([]string{"-help"})
	md.AddBool("fast", false, "run without frame cap")
	md.AddString("model", "48k", "machine model")
	p, _ = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("Usage:\n  -fast\n      run without frame cap\n  -model (default 48k)\n      machine model\n"))

	tw.Clear()
	md.NewArgs([]string{"run", "-help"})
	md.AddSubModes("run", "version")
	_, _ = md.Parse()
	md.NewMode()
	md.AddSubModes("a", "b")
	md.AdditionalHelp("more")
	p, _ = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("Usage for RUN mode:\n  sub-modes: A, B\n    default: A\n\nmore\n"))
}
