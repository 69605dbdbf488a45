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

package sound

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/vcsaudio/assert"
	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/audio/resampler"
	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/audio/timing"
	"github.com/jetsetilly/vcsaudio/audio/wavhandler"
	"github.com/jetsetilly/vcsaudio/curated"
	"github.com/jetsetilly/vcsaudio/logger"
	"github.com/jetsetilly/vcsaudio/notifications"
)

const logTag = "sound"

// the emulation audio rate that one-shot sounds are authored for. the playback
// speed of one-shot sounds is adjusted when the emulation rate differs
const referenceSampleRate = 262 * 60 * 2

// the amount AdjustVolume() changes the volume by
const volumeStep = 2

// pipeline is everything the callback needs to produce audio from the queue.
type pipeline struct {
	queue     *queue.Queue
	source    *fragmentSource
	resampler resampler.Resampler
}

// Sound sends audio from a queue to a Device.
//
// With the exception of Stats(), the functions of the Sound type should only
// be called from the goroutine that called NewSound().
type Sound struct {
	dev      Device
	settings *settings.Settings
	notify   notifications.Notify
	owner    assert.Owner

	isInitialised bool

	// the format the device was opened with
	spec DeviceSpec

	// the queue and timing from the most recent call to Open(). used when
	// sound is enabled with SetEnabled()
	queue  *queue.Queue
	timing *timing.Timing

	muted bool

	// the volume in the range 0 to 100 and the equivalent factor used by the
	// callback
	volumePercent int
	volume        Volume

	// the callback does nothing but write silence if the pipeline is nil
	pipeline atomic.Pointer[pipeline]

	// the most recent fragment source. kept when the pipeline is removed
	// because it owns one of the queue's buffers
	source *fragmentSource

	wav *wavhandler.Handler

	about string

	// underruns last reported by ReportUnderruns()
	reportedUnderruns int64
}

// NewSound is the preferred method of initialisation for the Sound type. The
// device is opened with the format described by the settings.
//
// If the device can't be opened the failure is logged and the notify
// implementation is told. The Sound instance can still be used but will not
// produce any sound. IsInitialised() will return false.
//
// The notify argument can be nil.
func NewSound(dev Device, s *settings.Settings, notify notifications.Notify) *Sound {
	snd := &Sound{
		dev:      dev,
		settings: s,
		notify:   notify,
	}
	snd.owner.Claim()

	snd.wav = wavhandler.NewHandler(&snd.volume)
	snd.volumePercent = s.Volume.Get().(int)
	snd.volume.SetPercent(snd.volumePercent)

	if dev == nil {
		logger.Log(logger.Allow, logTag, "no audio device")
		snd.sendNotice(notifications.NotifySoundDeviceFailed)
		return snd
	}

	err := snd.openDevice(snd.requestedSpec())
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		snd.sendNotice(notifications.NotifySoundDeviceFailed)
	}

	return snd
}

func (snd *Sound) sendNotice(notice notifications.Notice) {
	if snd.notify == nil {
		return
	}
	err := snd.notify.Notify(notice)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

func (snd *Sound) checkOwner(fn string) {
	if !snd.owner.IsOwner() {
		logger.Logf(logger.Allow, logTag, "%s() called from the wrong goroutine", fn)
	}
}

// the device format as described by the settings.
func (snd *Sound) requestedSpec() DeviceSpec {
	c := snd.settings.Effective()
	return DeviceSpec{
		SampleRate:   c.SampleRate,
		FragmentSize: c.FragmentSize,
		Stereo:       true,
		Device:       snd.settings.Device.Get().(int),
	}
}

// open the device with the requested spec. the device is left paused.
func (snd *Sound) openDevice(req DeviceSpec) error {
	snd.isInitialised = false

	devices := snd.dev.Devices()
	if req.Device < 0 || req.Device >= len(devices) {
		logger.Logf(logger.Allow, logTag, "no audio device at index %d. using default device", req.Device)
		req.Device = 0
	}

	spec, err := snd.dev.Open(req, snd.callback)
	if err != nil {
		return curated.Errorf("sound: %s: %v", snd.dev.Name(), err)
	}

	if spec.SampleRate <= 0 || spec.FragmentSize <= 0 {
		_ = snd.dev.Close()
		return curated.Errorf("sound: %s: invalid device format (%s)", snd.dev.Name(), spec)
	}

	if spec != req {
		logger.Logf(logger.Allow, logTag, "requested %s but device opened with %s", req, spec)
	}

	snd.spec = spec
	snd.isInitialised = true
	snd.wav.SetFormat(spec.SampleRate, spec.Stereo)

	return nil
}

// callback is called by the device.
func (snd *Sound) callback(stream []float32) {
	p := snd.pipeline.Load()
	if p == nil {
		clear(stream)
	} else {
		p.resampler.FillFragment(stream, len(stream))
		f := snd.volume.Factor()
		for i := range stream {
			stream[i] *= f
		}
	}
	snd.wav.Mix(stream)
}

// IsInitialised returns true if the device was opened successfully.
func (snd *Sound) IsInitialised() bool {
	return snd.isInitialised
}

// Spec returns the format of the device. The value is meaningless if
// IsInitialised() returns false.
func (snd *Sound) Spec() DeviceSpec {
	return snd.spec
}

// Open connects the queue to the device. The timing describes the audio
// produced by the emulation.
//
// The device is reopened if the sample rate, fragment size or device index
// in the settings are different to those of the open device. Audio is paused
// during the reconfiguration.
//
// An error is returned if the resampler can't be created. An error opening
// the device is not returned but IsInitialised() will return false and no
// audio will be heard.
func (snd *Sound) Open(q *queue.Queue, t *timing.Timing) error {
	snd.checkOwner("Open")

	if q == nil || t == nil {
		return curated.Errorf("sound: open requires a queue and timing")
	}

	snd.queue = q
	snd.timing = t

	enabled := snd.settings.Enabled.Get().(bool)

	// the queue should never overflow when sound is enabled. when sound is
	// disabled the fragments are still produced but nothing is consuming them
	q.IgnoreOverflows(!enabled)

	if !snd.isInitialised && snd.dev != nil {
		err := snd.openDevice(snd.requestedSpec())
		if err != nil {
			logger.Log(logger.Allow, logTag, err)
			snd.sendNotice(notifications.NotifySoundDeviceFailed)
		}
	}

	if !snd.isInitialised {
		snd.pipeline.Store(nil)
		return nil
	}

	snd.Pause(true)

	if !enabled {
		snd.pipeline.Store(nil)
		snd.wav.Stop()
		logger.Log(logger.Allow, logTag, "sound disabled")
		return nil
	}

	req := snd.requestedSpec()
	if req.SampleRate != snd.spec.SampleRate || req.FragmentSize != snd.spec.FragmentSize || req.Device != snd.spec.Device {
		snd.pipeline.Store(nil)
		err := snd.openDevice(req)
		if err != nil {
			logger.Log(logger.Allow, logTag, err)
			snd.sendNotice(notifications.NotifySoundDeviceFailed)
			return nil
		}
		snd.sendNotice(notifications.NotifyReconfigured)
	}

	src := newFragmentSource(q, t.PrebufferFragmentCount())
	src.inherit(snd.source)

	from := resampler.Format{
		SampleRate:   t.AudioSampleRate(),
		FragmentSize: q.FragmentSize(),
		Stereo:       q.IsStereo(),
	}
	to := resampler.Format{
		SampleRate:   snd.spec.SampleRate,
		FragmentSize: snd.spec.FragmentSize,
		Stereo:       snd.spec.Stereo,
	}

	r, err := resampler.NewResampler(t.Config().Quality, from, to, src)
	if err != nil {
		snd.pipeline.Store(nil)
		return curated.Errorf("sound: %v", err)
	}

	snd.wav.SetSpeed(float64(referenceSampleRate) / float64(t.AudioSampleRate()))
	snd.applyVolume()

	snd.source = src
	snd.pipeline.Store(&pipeline{
		queue:     q,
		source:    src,
		resampler: r,
	})
	snd.reportedUnderruns = 0

	about := snd.About()
	if about != snd.about {
		snd.about = about
		for _, l := range strings.Split(strings.TrimSpace(about), "\n") {
			logger.Log(logger.Allow, logTag, l)
		}
	}

	if !snd.muted {
		snd.Pause(false)
	}

	return nil
}

func (snd *Sound) applyVolume() {
	snd.volume.SetPercent(snd.volumePercent)
}

// SetEnabled turns sound on or off. The setting is changed and the device
// reconfigured with the queue and timing most recently given to Open().
func (snd *Sound) SetEnabled(enable bool) {
	snd.checkOwner("SetEnabled")

	err := snd.settings.Enabled.Set(enable)
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
		return
	}

	if snd.queue != nil && snd.timing != nil {
		err = snd.Open(snd.queue, snd.timing)
		if err != nil {
			logger.Log(logger.Allow, logTag, err)
		}
	}

	if enable {
		snd.sendNotice(notifications.NotifySoundEnabled)
	} else {
		snd.sendNotice(notifications.NotifySoundDisabled)
	}
}

// Mute pauses or restarts the device. Muting stops any playing one-shot
// sound.
//
// The device is only restarted if Open() has connected a queue and sound is
// enabled. Otherwise the mute state is recorded and the device stays paused
// until the next successful Open().
func (snd *Sound) Mute(mute bool) {
	snd.checkOwner("Mute")

	snd.muted = mute

	if snd.isInitialised && snd.pipeline.Load() != nil {
		snd.Pause(mute)
	}

	if mute {
		snd.wav.Stop()
	}

	if mute {
		snd.sendNotice(notifications.NotifyMuted)
	} else {
		snd.sendNotice(notifications.NotifyUnmuted)
	}
}

// ToggleMute changes the mute state. Returns the new mute state.
func (snd *Sound) ToggleMute() bool {
	snd.Mute(!snd.muted)
	return snd.muted
}

// IsMuted returns true if sound is muted.
func (snd *Sound) IsMuted() bool {
	return snd.muted
}

// Pause the device. Returns the previous pause state. When pausing, the
// function does not return until the callback has finished.
func (snd *Sound) Pause(pause bool) bool {
	if !snd.isInitialised {
		return true
	}
	return snd.dev.Pause(pause)
}

// SetVolume sets the volume in the range 0 to 100. Values outside of the
// range are ignored. If persist is true the settings value is also changed.
func (snd *Sound) SetVolume(percent int, persist bool) {
	snd.checkOwner("SetVolume")

	if percent < 0 || percent > 100 {
		return
	}

	if persist {
		err := snd.settings.Volume.Set(percent)
		if err != nil {
			logger.Log(logger.Allow, logTag, err)
			return
		}
	}

	snd.volumePercent = percent
	snd.applyVolume()
	snd.sendNotice(notifications.NotifyVolumeChanged)
}

// AdjustVolume increases the volume if direction is positive and decreases it
// if direction is negative. The change is persisted. Increasing the volume
// of muted sound unmutes it.
func (snd *Sound) AdjustVolume(direction int) {
	snd.checkOwner("AdjustVolume")

	percent := snd.volumePercent
	switch {
	case direction > 0:
		percent += volumeStep
	case direction < 0:
		percent -= volumeStep
	default:
		return
	}
	percent = max(0, min(100, percent))

	snd.SetVolume(percent, true)

	if percent > 0 && direction > 0 && snd.muted {
		snd.Mute(false)
	}
}

// Volume returns the current volume in the range 0 to 100.
func (snd *Sound) Volume() int {
	return snd.volumePercent
}

// PlayWav plays a WAV or MP3 file over the top of the emulation audio. See
// wavhandler.Handler.Play() for the meaning of the arguments.
//
// Returns false if the file can't be played. The file can't be played if
// there is no device or if sound is disabled or muted, because in those
// states the device is paused.
func (snd *Sound) PlayWav(filename string, position int, length int) bool {
	snd.checkOwner("PlayWav")
	if !snd.isInitialised {
		return false
	}
	if !snd.settings.Enabled.Get().(bool) {
		logger.Logf(logger.Allow, logTag, "not playing %s: sound disabled", filename)
		return false
	}
	if snd.muted {
		logger.Logf(logger.Allow, logTag, "not playing %s: sound muted", filename)
		return false
	}
	return snd.wav.Play(filename, position, length)
}

// StopWav stops any playing one-shot sound.
func (snd *Sound) StopWav() {
	snd.wav.Stop()
}

// WavSize returns the number of frames of the one-shot sound still to play.
func (snd *Sound) WavSize() int {
	return snd.wav.Size()
}

// Devices returns the list of devices available to the backend.
func (snd *Sound) Devices() []string {
	if snd.dev == nil {
		return nil
	}
	return snd.dev.Devices()
}

// Close the device. The Sound instance can not be used after this.
func (snd *Sound) Close() error {
	snd.checkOwner("Close")

	snd.pipeline.Store(nil)
	snd.wav.Stop()

	if !snd.isInitialised {
		return nil
	}

	snd.Pause(true)
	snd.isInitialised = false

	err := snd.dev.Close()
	if err != nil {
		return curated.Errorf("sound: %v", err)
	}

	return nil
}

// About returns a description of the sound configuration.
func (snd *Sound) About() string {
	s := strings.Builder{}

	if !snd.isInitialised {
		s.WriteString("Sound disabled (no device)\n")
		return s.String()
	}

	if !snd.settings.Enabled.Get().(bool) {
		s.WriteString("Sound disabled\n")
		return s.String()
	}

	c := snd.settings.Effective()

	device := "default"
	if devices := snd.dev.Devices(); snd.spec.Device < len(devices) {
		device = devices[snd.spec.Device]
	}

	s.WriteString("Sound enabled:\n")
	s.WriteString(fmt.Sprintf("  Volume: %d%%\n", snd.volumePercent))
	s.WriteString(fmt.Sprintf("  Device: %s (%s)\n", device, snd.dev.Name()))
	s.WriteString(fmt.Sprintf("  Channels: %d\n", snd.spec.Channels()))
	s.WriteString(fmt.Sprintf("  Preset: %s\n", snd.settings.Preset.String()))
	s.WriteString(fmt.Sprintf("    Fragment size: %d frames\n", snd.spec.FragmentSize))
	s.WriteString(fmt.Sprintf("    Sample rate: %dHz\n", snd.spec.SampleRate))
	s.WriteString(fmt.Sprintf("    Resampling: %s\n", c.Quality.Description()))
	if snd.timing != nil {
		s.WriteString(fmt.Sprintf("    Headroom: %d (%.1fms)\n", c.Headroom,
			float64(c.Headroom)*snd.timing.FragmentDuration().Seconds()*1000))
		s.WriteString(fmt.Sprintf("    Buffer size: %d (%.1fms)\n", c.BufferSize,
			float64(c.BufferSize)*snd.timing.FragmentDuration().Seconds()*1000))
	}

	return s.String()
}
