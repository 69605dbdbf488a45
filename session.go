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
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/vcsaudio/audio/generator"
	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/audio/timing"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/jetsetilly/vcsaudio/statsview"
)

// how often the status line is updated and underruns reported
const statusPeriod = 250 * time.Millisecond

// session connects a source of emulation audio to a device. the functions of
// the session type must all be called from the same goroutine that created
// it.
type session struct {
	opts     *options
	settings *settings.Settings
	dev      sound.Device
	snd      *sound.Sound
	source   generator.Source

	timing *timing.Timing
	queue  *queue.Queue

	// the producer runs in its own goroutine. the error from Run() is sent
	// over the done channel
	cancel context.CancelFunc
	done   chan error
}

func newSession(opts *options, s *settings.Settings, dev sound.Device, src generator.Source) (*session, error) {
	ses := &session{
		opts:     opts,
		settings: s,
		dev:      dev,
		source:   src,
	}

	t, err := timing.NewTiming(opts.spec, s)
	if err != nil {
		return nil, err
	}

	ses.snd = sound.NewSound(dev, s, opts.styles.notifier(opts.output))

	err = ses.startProducer(t)
	if err != nil {
		return nil, err
	}

	ses.timing = t
	err = ses.snd.Open(ses.queue, t)
	if err != nil {
		ses.stopProducer()
		_ = ses.snd.Close()
		return nil, err
	}

	opts.styles.printAbout(opts.output, ses.snd.About())
	logger.Log(logger.Allow, "session", t)

	if opts.memviz != "" {
		err = ses.dump(opts.memviz)
		if err != nil {
			// the session can't continue if the producer wasn't restarted
			if ses.cancel == nil {
				_ = ses.snd.Close()
				return nil, err
			}
			logger.Log(logger.Allow, "session", err)
		}
	}

	return ses, nil
}

// the producer and queue are created together because a queue can only ever
// have one producer
func (ses *session) startProducer(t *timing.Timing) error {
	q, err := queue.NewQueue(t.AudioFragmentSize(), t.AudioQueueCapacity(), ses.settings.Stereo.Get().(bool))
	if err != nil {
		return err
	}

	p, err := generator.NewProducer(q, ses.source)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, t.FragmentDuration())
	}()

	ses.queue = q
	ses.cancel = cancel
	ses.done = done

	return nil
}

func (ses *session) stopProducer() {
	if ses.cancel == nil {
		return
	}
	ses.cancel()
	err := <-ses.done
	if err != nil {
		logger.Log(logger.Allow, "session", err)
	}
	ses.cancel = nil
	ses.done = nil
}

// reconfigure the audio after the settings have changed. a new queue is only
// created if the shape of the queue has changed.
func (ses *session) reconfigure() error {
	t, err := timing.NewTiming(ses.opts.spec, ses.settings)
	if err != nil {
		return err
	}

	stereo := ses.settings.Stereo.Get().(bool)
	if t.AudioFragmentSize() != ses.queue.FragmentSize() ||
		t.AudioQueueCapacity() != ses.queue.Capacity() ||
		stereo != ses.queue.IsStereo() {
		ses.stopProducer()
		err = ses.startProducer(t)
		if err != nil {
			return err
		}
	}

	if v := ses.settings.Volume.Get().(int); v != ses.snd.Volume() {
		ses.snd.SetVolume(v, false)
	}

	ses.timing = t
	err = ses.snd.Open(ses.queue, t)
	if err != nil {
		return err
	}

	ses.opts.styles.printAbout(ses.opts.output, ses.snd.About())
	return nil
}

// dump the structure of the sound system. the producer is stopped and the
// device paused while the structure is walked so that nothing changes
// underneath memviz. the producer is restarted with a new queue afterwards.
func (ses *session) dump(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	ses.stopProducer()
	ses.snd.Pause(true)
	memviz.Map(f, ses.snd)

	err = ses.startProducer(ses.timing)
	if err != nil {
		return err
	}

	// Open() restarts the device unless sound is muted or disabled
	err = ses.snd.Open(ses.queue, ses.timing)
	if err != nil {
		return err
	}

	fmt.Fprintf(ses.opts.output, "audio pipeline written to %s\n", filename)
	return nil
}

// run the session until the context is cancelled, the duration has elapsed
// or the finished function returns true. a duration of zero means there is
// no time limit and finished can be nil.
func (ses *session) run(ctx context.Context, duration time.Duration, finished func() bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if ses.opts.statsview {
		if statsview.Available() {
			statsview.Launch(ctx, ses.opts.output)
		} else {
			fmt.Fprintln(ses.opts.output, "statsview not available in this build")
		}
	}

	// the settings file is watched in a separate goroutine. the change is
	// handled here so that the sound system is only ever reconfigured from
	// the control goroutine
	changed := make(chan bool, 1)
	go func() {
		err := ses.settings.Watch(ctx, func() {
			select {
			case changed <- true:
			default:
			}
		})
		if err != nil {
			logger.Log(logger.Allow, "session", err)
		}
	}()

	status := time.NewTicker(statusPeriod)
	defer status.Stop()

	// devices without a clock are driven at the rate the device would
	// request audio
	var render <-chan time.Time
	var renderTicker *time.Ticker
	rdr, isRenderer := ses.dev.(renderer)
	if isRenderer && ses.snd.IsInitialised() {
		renderTicker = time.NewTicker(ses.renderPeriod())
		defer renderTicker.Stop()
		render = renderTicker.C
	}

	var deadline <-chan time.Time
	if duration > 0 {
		t := time.NewTimer(duration)
		defer t.Stop()
		deadline = t.C
	}

	defer fmt.Fprintln(ses.opts.output)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-deadline:
			return nil

		case <-changed:
			logger.Log(logger.Allow, "session", "settings changed")
			err := ses.reconfigure()
			if err != nil {
				logger.Log(logger.Allow, "session", err)
			}
			if renderTicker != nil {
				renderTicker.Reset(ses.renderPeriod())
			}

		case <-render:
			rdr.Render(1)

		case <-status.C:
			ses.snd.ReportUnderruns()
			fmt.Fprintf(ses.opts.output, "\r%s", ses.opts.styles.status.Render(ses.snd.Stats().String()))
			if finished != nil && finished() {
				return nil
			}

		case err := <-ses.done:
			// the producer has stopped without being asked to
			ses.cancel = nil
			ses.done = nil
			return err
		}
	}
}

// the playing time of one device fragment.
func (ses *session) renderPeriod() time.Duration {
	spec := ses.snd.Spec()
	if spec.SampleRate <= 0 || spec.FragmentSize <= 0 {
		return statusPeriod
	}
	return time.Duration(float64(spec.FragmentSize) / float64(spec.SampleRate) * float64(time.Second))
}

// end the session and close the device.
func (ses *session) end() error {
	ses.stopProducer()
	return ses.snd.Close()
}
