package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// volumeBase is the base of beep's exponential volume scale.
const volumeBase = 2

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker opens the output device once. Later tracks with a different
// sample rate are resampled to the first rate.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerRate != 0 {
		return speakerRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, fmt.Errorf("init speaker: %w", err)
	}
	speakerRate = rate
	return rate, nil
}

// Track is a decoded MP3 ready to be played on the shared speaker.
type Track struct {
	Name string

	stream beep.StreamSeekCloser
	format beep.Format
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// Open decodes the header of an MP3 file. Samples are streamed from disk while
// playing, so the file stays open until Close.
func Open(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stream, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &Track{
		Name:   filepath.Base(path),
		stream: stream,
		format: format,
	}, nil
}

// Duration is the length of one pass through the track.
func (t *Track) Duration() time.Duration {
	return t.format.SampleRate.D(t.stream.Len())
}

// Play starts the track. Volume is a linear gain where 1 leaves the signal unchanged
// and 0 mutes it.
func (t *Track) Play(loop bool, volume float64) error {
	if t.ctrl != nil {
		return fmt.Errorf("track %s already playing", t.Name)
	}
	rate, err := initSpeaker(t.format.SampleRate)
	if err != nil {
		return err
	}

	count := 1
	if loop {
		count = -1
	}
	var s beep.Streamer = beep.Loop(count, t.stream)
	if rate != t.format.SampleRate {
		s = beep.Resample(4, t.format.SampleRate, rate, s)
	}

	exp, silent := gainExponent(volume)
	t.volume = &effects.Volume{Streamer: s, Base: volumeBase, Volume: exp, Silent: silent}
	t.ctrl = &beep.Ctrl{Streamer: t.volume}
	speaker.Play(t.ctrl)
	return nil
}

// SetVolume changes the linear gain of a playing track.
func (t *Track) SetVolume(volume float64) {
	if t.volume == nil {
		return
	}
	exp, silent := gainExponent(volume)
	speaker.Lock()
	t.volume.Volume = exp
	t.volume.Silent = silent
	speaker.Unlock()
}

func (t *Track) Close() error {
	if t.ctrl != nil {
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	return t.stream.Close()
}

// Shutdown stops every track and releases the output device.
func Shutdown() {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerRate == 0 {
		return
	}
	speaker.Clear()
	speaker.Close()
	speakerRate = 0
}

// gainExponent converts a linear gain to beep's exponent for volumeBase.
func gainExponent(gain float64) (exp float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	return math.Log(gain) / math.Log(volumeBase), false
}
