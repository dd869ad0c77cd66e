// Package audio plays the splat effect and the looping soundtrack.
package audio

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/catchase/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// format is what every loaded or synthesized sound is converted to.
var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Player triggers session sounds. Implementations must not block the caller.
type Player interface {
	Splat()
	Close() error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Splat()       {}
func (Nop) Close() error { return nil }

// Speaker plays through the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	splat  *beep.Buffer
	music  *beep.Ctrl
	logger *log.Logger
	closed bool
}

// Open loads the sounds described by cfg and starts the soundtrack.
// It returns Nop when audio is disabled. A configured file that cannot be
// loaded is an error; empty paths use synthesized sounds.
func Open(cfg config.AudioConfig, logger *log.Logger) (Player, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}

	splat, err := loadSplat(cfg.SplatPath)
	if err != nil {
		return nil, err
	}
	music, err := loadMusic(cfg.MusicPath)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: initializing speaker: %w", err)
	}

	s := &Speaker{
		mixer:  &beep.Mixer{},
		splat:  splat,
		music:  &beep.Ctrl{Streamer: newVolume(music, cfg.MusicVolume)},
		logger: logger,
	}
	s.mixer.Add(s.music)
	speaker.Play(s.mixer)

	logger.Debug("audio ready", "splat", describe(cfg.SplatPath), "music", describe(cfg.MusicPath))
	return s, nil
}

// Splat plays the splat effect once, overlapping any that are still playing.
func (s *Speaker) Splat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	speaker.Lock()
	s.mixer.Add(s.splat.Streamer(0, s.splat.Len()))
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	speaker.Lock()
	s.music.Paused = true
	s.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	return nil
}

func describe(path string) string {
	if path == "" {
		return "synthesized"
	}
	return path
}

// loadSplat returns the splat effect as an in-memory buffer.
func loadSplat(path string) (*beep.Buffer, error) {
	if path == "" {
		buf := beep.NewBuffer(format)
		buf.Append(beep.Take(sampleRate.N(250*time.Millisecond), newSplatGenerator(sampleRate)))
		return buf, nil
	}
	return loadWAV(path)
}

// loadMusic returns an endless soundtrack stream.
func loadMusic(path string) (beep.Streamer, error) {
	if path == "" {
		return newMusicGenerator(sampleRate), nil
	}
	buf, err := loadWAV(path)
	if err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: %s: no samples", path)
	}
	return beep.Loop(-1, buf.Streamer(0, buf.Len())), nil
}

// loadWAV decodes a WAV file into a buffer at the playback sample rate.
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: opening %s: %w", path, err)
	}

	streamer, srcFormat, err := wav.Decode(f)
	if err != nil {
		f.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("audio: decoding %s: %w", path, err)
	}
	defer streamer.Close() //nolint:errcheck // Read-only, fully buffered

	var s beep.Streamer = streamer
	if srcFormat.SampleRate != sampleRate {
		s = beep.Resample(4, srcFormat.SampleRate, sampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: reading %s: %w", path, err)
	}
	return buf, nil
}

// newVolume scales a stream by a linear factor. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
