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

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/zxcore/zxcore/digest"
	"github.com/zxcore/zxcore/environment"
	"github.com/zxcore/zxcore/govern"
	"github.com/zxcore/zxcore/hardware"
	"github.com/zxcore/zxcore/hardware/cpu"
	"github.com/zxcore/zxcore/hardware/preferences"
	"github.com/zxcore/zxcore/hardware/snapshot"
	"github.com/zxcore/zxcore/hardware/specification"
	"github.com/zxcore/zxcore/hardware/television"
	"github.com/zxcore/zxcore/logger"
	"github.com/zxcore/zxcore/modalflag"
	"github.com/zxcore/zxcore/notifications"
	"github.com/zxcore/zxcore/otoaudio"
	"github.com/zxcore/zxcore/performance"
	"github.com/zxcore/zxcore/screenshot"
	"github.com/zxcore/zxcore/statsview"
	"github.com/zxcore/zxcore/version"
	"github.com/zxcore/zxcore/wavwriter"
)

// exit values
const (
	exitOK    = 0
	exitParse = 10
	exitMode  = 20
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "PERFORMANCE", "DIGEST", "SNAPSHOT", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(exitOK)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(exitParse)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "PERFORMANCE":
		err = perform(md)
	case "DIGEST":
		err = digestMode(md)
	case "SNAPSHOT":
		err = snapshotMode(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(exitMode)
	}
}

// machine options shared by the modes that create a Spectrum
type machineFlags struct {
	model *string
	rom   *string
	late  *bool
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	ids := make([]string, 0, len(specification.SpecList))
	for _, s := range specification.SpecList {
		ids = append(ids, s.ID)
	}
	return machineFlags{
		model: md.AddString("model", specification.Spec48K.ID, fmt.Sprintf("machine model: %s", strings.Join(ids, ", "))),
		rom:   md.AddString("rom", "", "ROM image for the model"),
		late:  md.AddBool("late", false, "use late ULA timings"),
	}
}

// the machine is created with the instruction-execution unit that is
// included with the emulation core. a full processor can be supplied by
// replacing cpu.NewIdle()
//
// a normalised machine ignores the preferences file and the random number
// generator is predictable
func newMachine(mf machineFlags, normalise bool, notify notifications.Notify) (*hardware.Spectrum, *environment.Environment, error) {
	spec, err := specification.SearchSpec(*mf.model)
	if err != nil {
		return nil, nil, err
	}

	var prefs *preferences.Preferences
	if normalise {
		prefs = preferences.NewDefaultPreferences()
	}

	env, err := environment.NewEnvironment(nil, prefs, notify)
	if err != nil {
		return nil, nil, err
	}
	if normalise {
		env.Normalise()
	}

	err = env.Prefs.LateTimings.Set(*mf.late)
	if err != nil {
		return nil, nil, err
	}

	tv := television.NewTelevision(spec)

	zx, err := hardware.NewSpectrum(env, tv, cpu.NewIdle(), spec)
	if err != nil {
		return nil, nil, err
	}

	if *mf.rom != "" {
		err = zx.LoadROMFile(*mf.rom)
		if err != nil {
			return nil, nil, err
		}
	}

	return zx, env, nil
}

// load the file into the machine as either a snapshot or a tape
func loadFile(zx *hardware.Spectrum, filename string) error {
	if _, err := snapshot.FormatFromFilename(filename); err == nil {
		return zx.LoadSnapshot(filename)
	}
	return zx.InsertTape(filename)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	fpsCap := md.AddBool("fpscap", true, "cap fps to the model's frame rate")
	frames := md.AddInt("frames", 0, "number of frames to run before quitting. zero to run until interrupted")
	mute := md.AddBool("mute", false, "do not play audio")
	wav := md.AddString("wav", "", "record audio to wav file")
	shot := md.AddString("screenshot", "", "save the final frame to a PNG file")
	scale := md.AddFloat64("scale", 1.0, "screenshot scaling")
	save := md.AddString("save", "", "save a snapshot on quitting")
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	notices := notifications.NewChannel(16)

	zx, env, err := newMachine(mf, false, notices)
	if err != nil {
		return err
	}
	zx.TV.SetFPSCap(*fpsCap)

	if !*mute {
		aud, err := otoaudio.NewAudio(logger.Allow)
		if err != nil {
			return err
		}
		zx.TV.AddAudioMixer(aud)
	}

	if *wav != "" {
		zx.TV.AddAudioMixer(wavwriter.NewWavWriter(logger.Allow, *wav))
	}

	var sh *screenshot.Screenshot
	if *shot != "" {
		sh = screenshot.NewScreenshot(env, zx.TV)
		sh.Scale = *scale
	}

	if len(md.RemainingArgs()) == 1 {
		err = loadFile(zx, md.GetArg(0))
		if err != nil {
			return err
		}
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	brake := 0
	check := func() (govern.State, error) {
		brake++
		if brake < hardware.PerformanceBrake {
			return govern.Running, nil
		}
		brake = 0

		select {
		case <-intChan:
			return govern.Ending, nil
		case n := <-notices.C:
			if n != notifications.NotifyFrameEnd {
				logger.Log(env, "run", n)
			}
		default:
		}
		return govern.Running, nil
	}

	if *frames > 0 {
		err = zx.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
			return check()
		})
	} else {
		err = zx.Run(check)
	}
	if err != nil {
		return err
	}

	if sh != nil {
		err = sh.Save(*shot)
		if err != nil {
			return err
		}
	}

	if *save != "" {
		err = zx.SaveSnapshot(*save)
		if err != nil {
			return err
		}
	}

	return zx.TV.End()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	uncapped := md.AddBool("uncapped", true, "run without the frame rate cap")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: comma separated CPU, MEM, TRACE or ALL")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	zx, _, err := newMachine(mf, true, nil)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) == 1 {
		err = loadFile(zx, md.GetArg(0))
		if err != nil {
			return err
		}
	}

	return performance.Check(md.Output, prf, zx, *uncapped, *duration)
}

// digestMode runs the machine with normalised preferences and prints the
// digests of the video and audio output. two runs with the same arguments
// will always print the same digests.
func digestMode(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	frames := md.AddInt("frames", 50, "number of frames to run")
	audio := md.AddBool("audio", true, "include audio digest")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *frames <= 0 {
		return fmt.Errorf("number of frames must be positive")
	}

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	zx, _, err := newMachine(mf, true, nil)
	if err != nil {
		return err
	}
	zx.TV.SetFPSCap(false)

	vid, err := digest.NewVideo(zx.TV)
	if err != nil {
		return err
	}

	var aud *digest.Audio
	if *audio {
		aud = digest.NewAudio(zx.TV)
	}

	if len(md.RemainingArgs()) == 1 {
		err = loadFile(zx, md.GetArg(0))
		if err != nil {
			return err
		}
	}

	err = zx.RunForFrameCount(*frames, func(_ int) (govern.State, error) {
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	err = zx.TV.End()
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "video: %s\n", vid.Hash())
	if aud != nil {
		fmt.Fprintf(md.Output, "audio: %s\n", aud.Hash())
	}

	return nil
}

func snapshotMode(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("INFO", "CONVERT")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := environment.NewEnvironment(nil, preferences.NewDefaultPreferences(), nil)
	if err != nil {
		return err
	}

	switch md.Mode() {
	case "INFO":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("one snapshot file required for %s mode", md)
		}

		st, err := snapshot.Load(env, md.GetArg(0))
		if err != nil {
			return err
		}
		printSnapshot(md, st)

	case "CONVERT":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		if len(md.RemainingArgs()) != 2 {
			return fmt.Errorf("source and destination files required for %s mode", md)
		}

		if _, err := os.Stat(md.GetArg(1)); err == nil {
			return fmt.Errorf("%s already exists", md.GetArg(1))
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		st, err := snapshot.Load(env, md.GetArg(0))
		if err != nil {
			return err
		}
		return snapshot.Save(env, md.GetArg(1), st)
	}

	return nil
}

func printSnapshot(md *modalflag.Modes, st *snapshot.State) {
	fmt.Fprintf(md.Output, "model: %s\n", st.Spec)
	if st.Creator != "" {
		fmt.Fprintf(md.Output, "creator: %s\n", st.Creator)
	}
	fmt.Fprintf(md.Output, "pc: %#04x sp: %#04x\n", st.Registers.PC, st.Registers.SP)
	fmt.Fprintf(md.Output, "t-states: %d\n", st.TStates)
	if st.Spec.Is128K() {
		fmt.Fprintf(md.Output, "paging: 7ffd=%#02x 1ffd=%#02x\n", st.Port7FFD, st.Port1FFD)
	}
	fmt.Fprintf(md.Output, "border: %d\n", st.Border)
	if st.Tape != nil {
		fmt.Fprintf(md.Output, "tape: %s (block %d)\n", st.Tape.Filename, st.Tape.Block)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Fprintln(md.Output, version.String())
	if *revision {
		_, r, _ := version.Version()
		fmt.Fprintln(md.Output, r)
	}

	return nil
}
