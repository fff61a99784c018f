// Package audio provides sound output: a single allocatable speaker for
// music or voice and a shared mixer for fire-and-forget effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Config holds the initial volume levels (0.0 to 1.0).
type Config struct {
	MasterVolume float64
	SFXVolume    float64
}

// Manager owns the output device.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	sfxVolume    float64

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer

	speaker *Speaker
	busy    bool
}

// New creates a new audio manager. The device is not opened until Init.
func New(cfg Config) *Manager {
	m := &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: clamp(cfg.MasterVolume, 0, 1),
		sfxVolume:    clamp(cfg.SFXVolume, 0, 1),
		sfxMixer:     &beep.Mixer{},
	}
	m.speaker = &Speaker{m: m}
	return m
}

// Init opens the output device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close stops all playback and releases the device.
func (m *Manager) Close() {
	m.speaker.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
	m.busy = false
}

// IsInitialized returns whether the device is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Alloc hands out the speaker, or nil if another owner holds it.
func (m *Manager) Alloc() *Speaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return nil
	}
	m.busy = true
	return m.speaker
}

// Free returns the speaker. It reports false if s is not the allocated speaker.
func (m *Manager) Free(s *Speaker) bool {
	m.mu.Lock()
	if !m.busy || s != m.speaker {
		m.mu.Unlock()
		return false
	}
	m.busy = false
	m.mu.Unlock()

	s.Stop()
	return true
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	m.masterVolume = clamp(vol, 0, 1)
	m.mu.Unlock()
	m.speaker.applyVolume()
}

// SetSFXVolume sets the effects volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp(vol, 0, 1)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SFXVolume returns the effects volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolume
}

// PlaySFX mixes a WAV effect into the output.
func (m *Manager) PlaySFX(data []byte) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolume
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	stream, err := m.decode(data)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   volumeExp(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// decode decodes WAV data and resamples it to the device rate.
func (m *Manager) decode(data []byte) (beep.StreamSeekCloser, error) {
	stream, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if format.SampleRate == m.sampleRate {
		return stream, nil
	}
	return &resampled{
		StreamSeekCloser: stream,
		out:              beep.Resample(4, format.SampleRate, m.sampleRate, stream),
	}, nil
}

// resampled streams through a resampler but seeks and closes the source.
type resampled struct {
	beep.StreamSeekCloser
	out beep.Streamer
}

func (r *resampled) Stream(samples [][2]float64) (int, bool) {
	return r.out.Stream(samples)
}

// volumeExp converts a 0-1 linear volume to the exponent effects.Volume
// expects with Base 2, so the applied gain is vol itself: vol=1 -> 0,
// vol=0.5 -> -1, vol=0.25 -> -2. Callers mark vol <= 0 as Silent.
func volumeExp(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
