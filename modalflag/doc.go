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

// Package modalflag handles command lines that are divided into modes. Each
// mode has its own set of flags and may have sub-modes of its own. For
// example:
//
//	zxcore run -model 128k game.tap
//	zxcore snapshot convert game.z80 game.szx
//
// The Modes type is initialised with NewArgs() and then Parse() is called
// once for every level of the command line. Flags for the level are added
// before the call to Parse(). Sub-modes are added with AddSubModes(), the
// first of which is the default if no sub-mode is named in the arguments:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PERFORMANCE", "VERSION")
//	p, err := md.Parse()
//	if p != ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		model := md.AddString("model", "48k", "machine model")
//		...
//	}
//
// Sub-mode names are compared without regard to case. A "-help" flag is
// understood at every level and prints the flags and sub-modes for that
// level to the Output writer.
package modalflag
