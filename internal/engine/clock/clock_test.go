package clock

import (
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestFirstFrameHasZeroDelta(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewWithSource(ft.now)

	c.Start()
	if c.DT() != 0 {
		t.Errorf("DT on first frame = %v, want 0", c.DT())
	}
	ft.advance(4 * time.Millisecond)
	c.Finish()

	if c.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", c.Frames())
	}
	if c.Work() != 4*time.Millisecond {
		t.Errorf("Work = %v, want 4ms", c.Work())
	}
}

func TestDeltaSpansWholeIteration(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewWithSource(ft.now)

	c.Start()
	ft.advance(5 * time.Millisecond)
	c.Finish()
	// Pacing wait outside the bracket still counts toward the next delta
	ft.advance(11 * time.Millisecond)

	c.Start()
	if c.DT() != 16*time.Millisecond {
		t.Errorf("DT = %v, want 16ms", c.DT())
	}
	if got := c.Seconds(); got != 0.016 {
		t.Errorf("Seconds = %f, want 0.016", got)
	}
	ft.advance(2 * time.Millisecond)
	c.Finish()

	if c.Work() != 2*time.Millisecond {
		t.Errorf("Work = %v, want 2ms", c.Work())
	}
	if c.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", c.Frames())
	}
}

func TestFinishWithoutStart(t *testing.T) {
	c := New()
	c.Finish()
	if c.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", c.Frames())
	}
}
