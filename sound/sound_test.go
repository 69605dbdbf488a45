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

package sound_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/vcsaudio/audio/generator"
	"github.com/jetsetilly/vcsaudio/audio/mix"
	"github.com/jetsetilly/vcsaudio/audio/queue"
	"github.com/jetsetilly/vcsaudio/audio/settings"
	"github.com/jetsetilly/vcsaudio/audio/timing"
	"github.com/jetsetilly/vcsaudio/notifications"
	"github.com/jetsetilly/vcsaudio/prefs"
	"github.com/jetsetilly/vcsaudio/sound"
	"github.com/jetsetilly/vcsaudio/test"
)

// fakeDevice calls the callback only when render() is called.
type fakeDevice struct {
	crit sync.Mutex

	cb     sound.Callback
	spec   sound.DeviceSpec
	paused bool
	opened bool
	opens  int

	failOpen bool
}

func (dev *fakeDevice) Name() string {
	return "fake"
}

func (dev *fakeDevice) Devices() []string {
	return []string{"default", "second"}
}

func (dev *fakeDevice) Open(req sound.DeviceSpec, cb sound.Callback) (sound.DeviceSpec, error) {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.failOpen {
		return sound.DeviceSpec{}, fmt.Errorf("no hardware")
	}

	dev.cb = cb
	dev.spec = req
	dev.paused = true
	dev.opened = true
	dev.opens++

	return req, nil
}

func (dev *fakeDevice) Pause(pause bool) bool {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	prev := dev.paused
	dev.paused = pause
	return prev
}

func (dev *fakeDevice) Close() error {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	dev.opened = false
	dev.cb = nil
	return nil
}

// render one fragment. returns nil if the device is paused or closed unless
// force is true.
func (dev *fakeDevice) render(force bool) []float32 {
	dev.crit.Lock()
	defer dev.crit.Unlock()

	if dev.cb == nil || (dev.paused && !force) {
		return nil
	}

	stream := make([]float32, dev.spec.FragmentSize*dev.spec.Channels())
	for i := range stream {
		stream[i] = 99
	}
	dev.cb(stream)
	return stream
}

func (dev *fakeDevice) isPaused() bool {
	dev.crit.Lock()
	defer dev.crit.Unlock()
	return dev.paused
}

// records all notices
type notices struct {
	received []notifications.Notice
}

func (n *notices) Notify(notice notifications.Notice) error {
	n.received = append(n.received, notice)
	return nil
}

func (n *notices) last() notifications.Notice {
	if len(n.received) == 0 {
		return ""
	}
	return n.received[len(n.received)-1]
}

type fixture struct {
	dev      *fakeDevice
	settings *settings.Settings
	notices  *notices
	snd      *sound.Sound
	timing   *timing.Timing
	queue    *queue.Queue
	tone     *generator.Tone
	producer *generator.Producer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		dev:     &fakeDevice{},
		notices: &notices{},
	}

	var err error
	f.settings, err = settings.NewSettings(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	f.snd = sound.NewSound(f.dev, f.settings, f.notices)
	f.setup(t)

	return f
}

// create new timing, queue and producer from the current settings
func (f *fixture) setup(t *testing.T) {
	t.Helper()

	var err error
	f.timing, err = timing.NewTiming("NTSC", f.settings)
	test.DemandSuccess(t, err)

	f.queue, err = queue.NewQueue(f.timing.AudioFragmentSize(), f.timing.AudioQueueCapacity(), true)
	test.DemandSuccess(t, err)

	// channel 0 outputs the volume directly
	f.tone = generator.NewTone()
	test.DemandSuccess(t, f.tone.SetRegisters(0, generator.Registers{Control: 0, Volume: 15}))

	f.producer, err = generator.NewProducer(f.queue, f.tone)
	test.DemandSuccess(t, err)
}

func (f *fixture) produce(n int) {
	for _i := 0; _i < n; _i++ {
		f.producer.Step()
	}
}

// check that every left value is approximately l and every right value is
// approximately r
func expectStereo(t *testing.T, stream []float32, l float32, r float32) {
	t.Helper()
	if stream == nil {
		t.Fatalf("no stream rendered")
	}
	for i := 0; i < len(stream); i += 2 {
		if !test.ExpectApproximate(t, stream[i], l, 1e-4, i) {
			return
		}
		if !test.ExpectApproximate(t, stream[i+1], r, 1e-4, i+1) {
			return
		}
	}
}

// write a mono 16 bit WAV file with every sample set to value
func writeWAV(t *testing.T, rate int, frames int, value int) string {
	t.Helper()

	pth := filepath.Join(t.TempDir(), "oneshot.wav")
	f, err := os.Create(pth)
	test.DemandSuccess(t, err)
	defer f.Close()

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  rate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, frames),
	}
	for i := range buf.Data {
		buf.Data[i] = value
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())

	return pth
}

func TestDeviceFailure(t *testing.T) {
	s, err := settings.NewSettings(filepath.Join(t.TempDir(), prefs.DefaultPrefsFile))
	test.DemandSuccess(t, err)

	dev := &fakeDevice{failOpen: true}
	n := &notices{}
	snd := sound.NewSound(dev, s, n)

	test.ExpectEquality(t, snd.IsInitialised(), false)
	test.ExpectEquality(t, n.last(), notifications.NotifySoundDeviceFailed)

	tm, err := timing.NewTiming("NTSC", s)
	test.DemandSuccess(t, err)
	q, err := queue.NewQueue(tm.AudioFragmentSize(), tm.AudioQueueCapacity(), true)
	test.DemandSuccess(t, err)

	// opening the sound without a device is not an error
	test.ExpectSuccess(t, snd.Open(q, tm))
	test.ExpectEquality(t, snd.IsInitialised(), false)
	test.ExpectEquality(t, snd.PlayWav("test.wav", 0, 0), false)
	test.ExpectEquality(t, snd.Stats(), sound.Stats{})
	test.ExpectSuccess(t, snd.Close())

	// no device at all
	snd = sound.NewSound(nil, s, nil)
	test.ExpectEquality(t, snd.IsInitialised(), false)
	test.ExpectSuccess(t, snd.Open(q, tm))
}

func TestSilenceBeforeOpen(t *testing.T) {
	f := newFixture(t)
	test.DemandEquality(t, f.snd.IsInitialised(), true)
	test.ExpectEquality(t, f.dev.opens, 1)
	test.ExpectEquality(t, f.dev.isPaused(), true)

	expectStereo(t, f.dev.render(true), 0, 0)
}

func TestPriming(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.isPaused(), false)

	prebuffer := f.timing.PrebufferFragmentCount()
	vol := mix.Mono(15, 0) * float32(settings.DefaultVolume) / 100

	// nothing is output until the prebuffer count of fragments is reached
	f.produce(prebuffer - 1)
	expectStereo(t, f.dev.render(false), 0, 0)
	test.ExpectEquality(t, f.snd.Stats().Streaming, false)

	f.produce(1)
	expectStereo(t, f.dev.render(false), vol, 0)
	test.ExpectEquality(t, f.snd.Stats().Streaming, true)

	// consume the remaining fragments and then some. underrun output repeats
	// the most recent fragment, which has the same value
	for _i := 0; _i < prebuffer+2; _i++ {
		expectStereo(t, f.dev.render(false), vol, 0)
	}
	test.ExpectEquality(t, f.snd.Stats().Streaming, false)
	test.ExpectEquality(t, f.snd.ReportUnderruns() > 0, true)
	test.ExpectEquality(t, f.snd.ReportUnderruns(), 0)
	test.ExpectEquality(t, f.snd.Stats().Underruns > 0, true)
}

func TestVolume(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	f.produce(f.timing.AudioQueueCapacity())

	f.snd.SetVolume(0, false)
	test.ExpectEquality(t, f.notices.last(), notifications.NotifyVolumeChanged)
	stream := f.dev.render(false)
	for i := range stream {
		test.DemandEquality(t, stream[i], 0.0, i)
	}

	// volume is not persisted
	test.ExpectEquality(t, f.settings.Volume.Get().(int), settings.DefaultVolume)

	// out of range values are ignored
	f.snd.SetVolume(101, true)
	test.ExpectEquality(t, f.snd.Volume(), 0)
	f.snd.SetVolume(-1, true)
	test.ExpectEquality(t, f.snd.Volume(), 0)

	f.snd.SetVolume(50, true)
	test.ExpectEquality(t, f.snd.Volume(), 50)
	test.ExpectEquality(t, f.settings.Volume.Get().(int), 50)
	expectStereo(t, f.dev.render(false), mix.Mono(15, 0)*0.5, 0)

	f.snd.AdjustVolume(1)
	test.ExpectEquality(t, f.snd.Volume(), 52)
	f.snd.AdjustVolume(-1)
	f.snd.AdjustVolume(-1)
	test.ExpectEquality(t, f.snd.Volume(), 48)

	f.snd.SetVolume(99, false)
	f.snd.AdjustVolume(1)
	test.ExpectEquality(t, f.snd.Volume(), 100)
	f.snd.SetVolume(1, false)
	f.snd.AdjustVolume(-1)
	test.ExpectEquality(t, f.snd.Volume(), 0)
}

func TestVolumeFactor(t *testing.T) {
	var v sound.Volume
	test.ExpectEquality(t, v.Factor(), 0.0)
	v.SetPercent(80)
	test.ExpectApproximate(t, v.Factor(), 0.8, 1e-6)
	v.Set(2.0)
	test.ExpectEquality(t, v.Factor(), 1.0)
	v.Set(-1.0)
	test.ExpectEquality(t, v.Factor(), 0.0)
}

func TestReopen(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.opens, 1)

	// the same settings do not cause the device to be reopened
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.opens, 1)

	// the device is reopened with the new format
	test.DemandSuccess(t, f.settings.Preset.Set(settings.HighQualityLowLag))
	f.setup(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.opens, 2)
	test.ExpectEquality(t, f.snd.Spec().SampleRate, 48000)
	test.ExpectEquality(t, f.snd.Spec().FragmentSize, 512)
	test.ExpectEquality(t, f.notices.last(), notifications.NotifyReconfigured)

	f.produce(f.timing.PrebufferFragmentCount())
	stream := f.dev.render(false)
	test.ExpectEquality(t, len(stream), 1024)
	expectStereo(t, stream, mix.Mono(15, 0)*0.8, 0)

	// a change of device index also reopens
	test.DemandSuccess(t, f.settings.Device.Set(1))
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.opens, 3)
	test.ExpectEquality(t, f.snd.Spec().Device, 1)
}

func TestReopenSameQueue(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))

	f.produce(f.timing.AudioQueueCapacity())
	f.dev.render(false)

	// opening again with the same queue must continue to take fragments from
	// the queue
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	size := f.queue.Size()
	f.dev.render(false)
	test.ExpectEquality(t, f.queue.Size() < size, true)
}

func TestInvalidQuality(t *testing.T) {
	f := newFixture(t)

	c := f.settings.Effective()
	c.Quality = 0
	tm, err := timing.NewTimingFromConfig("NTSC", c)
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, f.snd.Open(f.queue, tm))
	expectStereo(t, f.dev.render(true), 0, 0)
}

func TestDisabled(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.settings.Enabled.Set(false))
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.isPaused(), true)

	// overflows are not counted when sound is disabled
	f.produce(f.timing.AudioQueueCapacity() * 2)
	test.ExpectEquality(t, f.queue.Overflows(), 0)
	test.ExpectEquality(t, f.snd.Stats().QueueCapacity, 0)

	f.snd.SetEnabled(true)
	test.ExpectEquality(t, f.notices.last(), notifications.NotifySoundEnabled)
	test.ExpectEquality(t, f.dev.isPaused(), false)
	test.ExpectEquality(t, f.snd.Stats().QueueCapacity, f.timing.AudioQueueCapacity())
	expectStereo(t, f.dev.render(false), mix.Mono(15, 0)*0.8, 0)

	f.snd.SetEnabled(false)
	test.ExpectEquality(t, f.settings.Enabled.Get().(bool), false)
	test.ExpectEquality(t, f.dev.isPaused(), true)
}

func TestMute(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))

	test.ExpectEquality(t, f.snd.ToggleMute(), true)
	test.ExpectEquality(t, f.dev.isPaused(), true)
	test.ExpectEquality(t, f.notices.last(), notifications.NotifyMuted)

	// open does not unpause muted sound
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.isPaused(), true)

	test.ExpectEquality(t, f.snd.ToggleMute(), false)
	test.ExpectEquality(t, f.dev.isPaused(), false)

	// turning the volume up unmutes
	f.snd.Mute(true)
	f.snd.AdjustVolume(1)
	test.ExpectEquality(t, f.snd.IsMuted(), false)
	test.ExpectEquality(t, f.dev.isPaused(), false)
}

func TestAboutAndClose(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))

	about := f.snd.About()
	test.ExpectEquality(t, len(about) > 0, true)
	test.ExpectEquality(t, f.snd.Devices()[0], "default")

	test.ExpectSuccess(t, f.snd.Close())
	test.ExpectEquality(t, f.snd.IsInitialised(), false)
	test.ExpectEquality(t, f.dev.opened, false)
	test.ExpectEquality(t, f.snd.About(), "Sound disabled (no device)\n")
}

func TestOneShotWithoutPipeline(t *testing.T) {
	f := newFixture(t)
	fragment := f.snd.Spec().FragmentSize
	pth := writeWAV(t, f.snd.Spec().SampleRate, fragment*3, 8192)

	// a quarter of full scale at a volume of 80%
	const oneshot = 0.25 * 0.8

	// the one-shot is mixed with the silence output when there is no pipeline
	test.DemandEquality(t, f.snd.PlayWav(pth, 0, 0), true)
	test.ExpectEquality(t, f.snd.WavSize(), fragment*3)
	expectStereo(t, f.dev.render(true), oneshot, oneshot)
	test.ExpectEquality(t, f.snd.WavSize(), fragment*2)

	f.snd.StopWav()
	test.ExpectEquality(t, f.snd.WavSize(), 0)
	expectStereo(t, f.dev.render(true), 0, 0)
}

func TestOneShotWithPipeline(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	f.produce(f.timing.PrebufferFragmentCount())

	fragment := f.snd.Spec().FragmentSize
	pth := writeWAV(t, f.snd.Spec().SampleRate, fragment*2, 8192)

	const oneshot = 0.25 * 0.8
	tone := mix.Mono(15, 0) * 0.8

	// the one-shot is added to the emulation audio
	test.DemandEquality(t, f.snd.PlayWav(pth, 0, 0), true)
	expectStereo(t, f.dev.render(false), tone+oneshot, oneshot)
	test.ExpectEquality(t, f.snd.WavSize(), fragment)
	expectStereo(t, f.dev.render(false), tone+oneshot, oneshot)
	test.ExpectEquality(t, f.snd.WavSize(), 0)

	// the one-shot has finished
	expectStereo(t, f.dev.render(false), tone, 0)

	// the volume applies to the one-shot as well as the emulation audio
	f.snd.SetVolume(0, false)
	test.DemandEquality(t, f.snd.PlayWav(pth, 0, 0), true)
	expectStereo(t, f.dev.render(false), 0, 0)
	test.ExpectEquality(t, f.snd.WavSize(), fragment)
}

func TestOneShotPausedDevice(t *testing.T) {
	f := newFixture(t)
	pth := writeWAV(t, f.snd.Spec().SampleRate, 100, 8192)

	// the device is paused when sound is disabled so the one-shot would never
	// finish playing
	test.DemandSuccess(t, f.settings.Enabled.Set(false))
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))
	test.ExpectEquality(t, f.dev.isPaused(), true)
	test.ExpectEquality(t, f.snd.PlayWav(pth, 0, 0), false)
	test.ExpectEquality(t, f.snd.WavSize(), 0)

	// disabling sound stops a playing one-shot
	f.snd.SetEnabled(true)
	test.DemandEquality(t, f.snd.PlayWav(pth, 0, 0), true)
	test.ExpectEquality(t, f.snd.WavSize(), 100)
	f.snd.SetEnabled(false)
	test.ExpectEquality(t, f.snd.WavSize(), 0)

	// the same is true of muting
	f.snd.SetEnabled(true)
	f.snd.Mute(true)
	test.ExpectEquality(t, f.snd.PlayWav(pth, 0, 0), false)
	f.snd.Mute(false)
	test.DemandEquality(t, f.snd.PlayWav(pth, 0, 0), true)
	f.snd.Mute(true)
	test.ExpectEquality(t, f.snd.WavSize(), 0)
}

func TestUnmuteWhileDisabled(t *testing.T) {
	f := newFixture(t)
	test.DemandSuccess(t, f.settings.Enabled.Set(false))
	test.DemandSuccess(t, f.snd.Open(f.queue, f.timing))

	// unmuting disabled sound records the state but does not start the device
	f.snd.Mute(true)
	f.snd.Mute(false)
	test.ExpectEquality(t, f.snd.IsMuted(), false)
	test.ExpectEquality(t, f.dev.isPaused(), true)

	// the device starts when sound is enabled
	f.snd.SetEnabled(true)
	test.ExpectEquality(t, f.dev.isPaused(), false)

	// muted state survives enabling
	f.snd.SetEnabled(false)
	f.snd.Mute(true)
	f.snd.SetEnabled(true)
	test.ExpectEquality(t, f.dev.isPaused(), true)
}
