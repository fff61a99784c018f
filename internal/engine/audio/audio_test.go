package audio

import (
	"errors"
	"math"
	"testing"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.125, -3},
	}

	for _, tt := range tests {
		if got := volumeExp(tt.vol); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("volumeExp(%v) = %v, want %v", tt.vol, got, tt.want)
		}
		// Base 2 gain must equal the linear volume
		if gain := math.Pow(2, volumeExp(tt.vol)); math.Abs(gain-tt.vol) > 1e-9 {
			t.Errorf("gain for %v = %v", tt.vol, gain)
		}
	}

	if volumeExp(0) >= volumeExp(0.125) {
		t.Error("zero volume should map below any audible level")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New(Config{MasterVolume: 0.8, SFXVolume: 3})
	if m == nil {
		t.Fatal("New() returned nil")
	}

	if m.MasterVolume() != 0.8 {
		t.Errorf("master volume = %f, want 0.8", m.MasterVolume())
	}
	if m.SFXVolume() != 1.0 {
		t.Errorf("sfx volume = %f, want 1.0 (clamped)", m.SFXVolume())
	}
	if m.IsInitialized() {
		t.Error("manager must not open the device before Init")
	}
}

func TestSetVolume(t *testing.T) {
	m := New(Config{MasterVolume: 1, SFXVolume: 1})

	m.SetMasterVolume(0.5)
	if m.MasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.MasterVolume())
	}

	m.SetMasterVolume(2.0)
	if m.MasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.MasterVolume())
	}

	m.SetSFXVolume(-1.0)
	if m.SFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.SFXVolume())
	}
}

func TestSingleSpeakerAllocation(t *testing.T) {
	m := New(Config{MasterVolume: 1, SFXVolume: 1})

	s := m.Alloc()
	if s == nil {
		t.Fatal("first Alloc should succeed")
	}
	if again := m.Alloc(); again != nil {
		t.Error("second Alloc should fail while the speaker is busy")
	}

	if m.Free(&Speaker{m: m}) {
		t.Error("freeing a foreign speaker should fail")
	}
	if !m.Free(s) {
		t.Error("freeing the allocated speaker should succeed")
	}
	if m.Free(s) {
		t.Error("double free should fail")
	}

	if s2 := m.Alloc(); s2 != s {
		t.Error("speaker should be allocatable again after Free")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New(Config{MasterVolume: 1, SFXVolume: 1})

	if err := m.PlaySFX([]byte("RIFF")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlaySFX before Init = %v, want ErrNotInitialized", err)
	}
	s := m.Alloc()
	if err := s.Play([]byte("RIFF"), false); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}
	if s.Playing() {
		t.Error("nothing should be playing")
	}

	// Close without Init is a no-op
	m.Close()
}
