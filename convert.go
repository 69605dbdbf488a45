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
	"math"

	"github.com/jetsetilly/vcsaudio/audio/generator"
	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/audio/resampler"
	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/audio/timing"
	"github.com/jetsetilly/vcsaudio/audio/wavhandler"
	"github.com/jetsetilly/vcsaudio/modalflag"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/jetsetilly/vcsaudio/wavwriter"
)

// number of source frames by which the resampled output lags the input. large
// enough for the widest resampling kernel
const resamplerLag = 4

// specForRate returns the television specification that produces audio at the
// sample rate.
func specForRate(rate int) (string, error) {
	// the emulation sample rate does not depend on the output configuration
	c, _ := settings.LookupPreset(settings.DefaultPreset)
	for _, id := range timing.SpecList {
		t, err := timing.NewTimingFromConfig(id, c)
		if err != nil {
			return "", err
		}
		if t.AudioSampleRate() == rate {
			return id, nil
		}
	}
	return "", fmt.Errorf("recording is not at an emulation sample rate (%dHz)", rate)
}

func convert(md *modalflag.Modes, opts *options) error {
	md.NewMode()

	qualities := []string{
		resampler.NearestNeighbour.String(),
		resampler.Lanczos2.String(),
		resampler.Lanczos3.String(),
	}

	rate := md.AddInt("rate", 0, "sample rate of the output (default from preferences)")
	quality := md.AddChoice("quality", "", qualities, "resampling quality (default from preferences)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("input and output files required for %s mode", md)
	case 2:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	rec, err := wavhandler.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	spec, err := specForRate(rec.SampleRate)
	if err != nil {
		return err
	}

	// the output values are only possible with the custom preset. the values
	// from the preferences file are used for anything not specified on the
	// command line
	additional := []string{"audio.enabled::true"}
	if *rate > 0 || *quality != "" {
		additional = append(additional, "audio.preset::custom")
		if *rate > 0 {
			additional = append(additional, fmt.Sprintf("audio.sampleRate::%d", *rate))
		}
		if *quality != "" {
			additional = append(additional, fmt.Sprintf("audio.quality::%s", *quality))
		}
	}

	s, err := opts.newSettings(additional...)
	if err != nil {
		return err
	}

	t, err := timing.NewTiming(spec, s)
	if err != nil {
		return err
	}

	q, err := queue.NewQueue(t.AudioFragmentSize(), t.AudioQueueCapacity(), rec.Stereo)
	if err != nil {
		return err
	}

	src := generator.NewPCM(rec.Samples, rec.Stereo)
	prod, err := generator.NewProducer(q, src)
	if err != nil {
		return err
	}

	aw, err := wavwriter.New(md.GetArg(1))
	if err != nil {
		return err
	}

	snd := sound.NewSound(aw, s, nil)
	if !snd.IsInitialised() {
		return fmt.Errorf("cannot open %s", md.GetArg(1))
	}

	err = snd.Open(q, t)
	if err != nil {
		_ = snd.Close()
		return err
	}

	opts.styles.printAbout(opts.output, snd.About())

	frames, err := render(q, prod, aw, rec.Frames(), t.AudioSampleRate(), snd.Spec())
	if err != nil {
		_ = snd.Close()
		return err
	}

	err = snd.Close()
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.output, "%d frames written to %s\n", frames, md.GetArg(1))

	return nil
}

// render the audio of the producer through the device. the queue is kept full
// so the device never sees an underrun. rendering continues until the output
// covers all the input frames.
func render(q *queue.Queue, prod *generator.Producer, aw *wavwriter.WavWriter, frames int, sourceRate int, spec sound.DeviceSpec) (int, error) {
	want := int(math.Ceil(float64(frames+resamplerLag) * float64(spec.SampleRate) / float64(sourceRate)))

	for aw.Frames() < want {
		for q.Size() < q.Capacity() {
			prod.Step()
		}
		if aw.Render(1) == 0 {
			return aw.Frames(), fmt.Errorf("device is not accepting audio")
		}
	}

	return aw.Frames(), nil
}
