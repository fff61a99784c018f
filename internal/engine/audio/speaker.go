package audio

import (
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// Speaker is the single output channel handed out by Manager.Alloc.
// Playing a new clip replaces the current one.
type Speaker struct {
	m *Manager

	stream  beep.StreamSeekCloser
	ctrl    *beep.Ctrl
	volume  *effects.Volume
	level   float64
	playing bool
}

// Play starts WAV data on the speaker, looping if loop is set.
func (s *Speaker) Play(data []byte, loop bool) error {
	if !s.m.IsInitialized() {
		return ErrNotInitialized
	}
	s.Stop()

	stream, err := s.m.decode(data)
	if err != nil {
		return err
	}

	var src beep.Streamer = stream
	if loop {
		src = &loopStreamer{stream: stream}
	}

	s.stream = stream
	s.ctrl = &beep.Ctrl{Streamer: src}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	if s.level == 0 {
		s.level = 1
	}
	s.applyVolume()
	s.playing = true

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.playing = false
	})))
	return nil
}

// Stop ends playback and releases the decoded stream.
func (s *Speaker) Stop() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Streamer = nil
	s.playing = false
	speaker.Unlock()

	s.stream.Close()
	s.stream = nil
	s.ctrl = nil
	s.volume = nil
}

// Pause pauses playback.
func (s *Speaker) Pause() {
	s.setPaused(true)
}

// Resume resumes paused playback.
func (s *Speaker) Resume() {
	s.setPaused(false)
}

func (s *Speaker) setPaused(paused bool) {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

// SetVolume sets the speaker level (0.0 to 1.0), scaled by the master volume.
func (s *Speaker) SetVolume(vol float64) {
	s.level = clamp(vol, 0, 1)
	s.applyVolume()
}

// Playing reports whether a clip is still streaming.
func (s *Speaker) Playing() bool {
	if !s.m.IsInitialized() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return s.playing
}

func (s *Speaker) applyVolume() {
	if s.volume == nil {
		return
	}
	vol := s.m.MasterVolume() * s.level

	speaker.Lock()
	s.volume.Silent = vol <= 0
	s.volume.Volume = volumeExp(vol)
	speaker.Unlock()
}

// loopStreamer rewinds its source whenever it drains.
type loopStreamer struct {
	stream beep.StreamSeekCloser
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.stream.Stream(samples[filled:])
		filled += n
		if !ok {
			if err := l.stream.Seek(0); err != nil {
				return filled, filled > 0
			}
			if n == 0 && l.stream.Len() == 0 {
				return filled, filled > 0
			}
			continue
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.stream.Err()
}
