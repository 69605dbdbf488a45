// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.


package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/vcsaudio/audio/timing"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/modalflag"
	"github.com/jetsetilly/vcsaudio/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when the mode provides its own
	// handler so that it can stop the audio gracefully.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:], os.Stdout)

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// options common to all modes.
type options struct {
	output io.Writer
	styles styles

	backend   string
	spec      string
	prefs     string
	prefsFile string
	memviz    string
	statsview bool
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync, args []string, output io.Writer) {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("PLAY", "ONESHOT", "CONVERT", "DEVICES")

	opts := &options{
		output: output,
		styles: newStyles(),
	}

	backend := md.AddChoice("backend", "sdl", []string{"sdl", "oto", "wav"}, "audio output")
	spec := md.AddChoice("spec", timing.SpecNTSC.ID, timing.SpecList, "television specification")
	prefs := md.AddString("prefs", "", "preferences to override. eg. \"audio.volume::50; audio.quality::lanczos3\"")
	prefsFile := md.AddString("prefsfile", "", "preferences file (default in the resource directory)")
	memviz := md.AddString("memviz", "", "write graphviz description of audio pipeline to file")
	statsview := md.AddBool("statsview", false, "launch statsview server")
	log := md.AddBool("log", false, "echo log to stdout")
	showVersion := md.AddBool("version", false, "print version information and quit")

	md.AdditionalHelp(strings.TrimSpace(`
PLAY	  synthesise TIA audio and send it to the audio device
ONESHOT	  play a WAV or MP3 file through the one-shot sound mixer
CONVERT	  resample a WAV recording of emulator audio to a new WAV file
DEVICES	  list the output devices of the backend`))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	if *showVersion {
		fmt.Fprintln(output, version.Version())
		sync.state <- stateRequest{req: reqQuit}
		return
	}

	opts.backend = *backend
	opts.spec = *spec
	opts.prefs = *prefs
	opts.prefsFile = *prefsFile
	opts.memviz = *memviz
	opts.statsview = *statsview

	if *log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md, opts, sync)

	case "ONESHOT":
		err = oneshot(md, opts, sync)

	case "CONVERT":
		err = convert(md, opts)

	case "DEVICES":
		err = devices(md, opts)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}
