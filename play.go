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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/vcsaudio/audio/generator"
	"github.com/jetsetilly/vcsaudio/modalflag"
)

// parseRegisters converts a string of the form "control,frequency,volume" to
// a Registers value. Values can be decimal or hexadecimal with an 0x prefix.
// An empty string is a silent channel.
func parseRegisters(s string) (generator.Registers, error) {
	var reg generator.Registers

	s = strings.TrimSpace(s)
	if s == "" {
		return reg, nil
	}

	f := strings.Split(s, ",")
	if len(f) != 3 {
		return reg, fmt.Errorf("registers should be three comma separated values (%s)", s)
	}

	var v [3]uint8
	for i := range f {
		n, err := strconv.ParseUint(strings.TrimSpace(f[i]), 0, 8)
		if err != nil {
			return reg, fmt.Errorf("bad register value (%s)", f[i])
		}
		v[i] = uint8(n)
	}

	reg.Control = v[0]
	reg.Freq = v[1]
	reg.Volume = v[2]

	return reg, nil
}

func play(md *modalflag.Modes, opts *options, sync *mainSync) error {
	md.NewMode()

	channel0 := md.AddString("ch0", "4,31,8", "registers for channel 0 (control,frequency,volume)")
	channel1 := md.AddString("ch1", "", "registers for channel 1 (control,frequency,volume)")
	duration := md.AddDuration("duration", 0, "stop after duration")
	volume := md.AddInt("volume", -1, "volume 0 to 100 (not saved)")
	out := md.AddString("out", "", "output file for the wav backend (default is a unique filename)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tone := generator.NewTone()
	for i, s := range []string{*channel0, *channel1} {
		reg, err := parseRegisters(s)
		if err != nil {
			return err
		}
		err = tone.SetRegisters(i, reg)
		if err != nil {
			return err
		}
	}

	s, err := opts.newSettings()
	if err != nil {
		return err
	}

	dev, err := newDevice(opts.backend, *out)
	if err != nil {
		return err
	}

	ses, err := newSession(opts, s, dev, tone)
	if err != nil {
		return err
	}

	if *volume >= 0 {
		ses.snd.SetVolume(*volume, false)
	}

	fmt.Fprintln(opts.output, tone)

	// stop the session with ctrl-c rather than quitting immediately
	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ses.run(ctx, *duration, nil)
	if err != nil {
		_ = ses.end()
		return err
	}

	return ses.end()
}

func oneshot(md *modalflag.Modes, opts *options, sync *mainSync) error {
	md.NewMode()

	position := md.AddInt("position", 0, "frame to start playback from")
	length := md.AddInt("length", 0, "number of frames to play. zero plays to the end")
	volume := md.AddInt("volume", -1, "volume 0 to 100 (not saved)")
	out := md.AddString("out", "", "output file for the wav backend (default is a unique filename)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("WAV or MP3 file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	s, err := opts.newSettings()
	if err != nil {
		return err
	}

	dev, err := newDevice(opts.backend, *out)
	if err != nil {
		return err
	}

	// the one-shot sound is mixed over the top of a silent emulation
	ses, err := newSession(opts, s, dev, generator.NewTone())
	if err != nil {
		return err
	}

	if *volume >= 0 {
		ses.snd.SetVolume(*volume, false)
	}

	if !ses.snd.PlayWav(md.GetArg(0), *position, *length) {
		_ = ses.end()
		return fmt.Errorf("cannot play %s", md.GetArg(0))
	}

	sync.state <- stateRequest{req: reqNoIntSig}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ses.run(ctx, 0, func() bool {
		return ses.snd.WavSize() == 0
	})
	if err != nil {
		_ = ses.end()
		return err
	}

	return ses.end()
}
