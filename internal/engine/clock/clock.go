// Package clock measures real elapsed time per loop iteration.
package clock

import "time"

// Clock brackets each iteration with Start and Finish.
//
// DT is the real time between the start of the previous iteration and the
// start of the current one, so it includes any pacing wait done by the
// presentation surface. It is zero on the first iteration.
type Clock struct {
	now func() time.Time

	started   time.Time
	lastStart time.Time
	dt        time.Duration
	work      time.Duration
	frames    uint64
	running   bool
}

// New creates a clock reading the wall clock.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock reading time from now. Used by tests.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Start marks the beginning of an iteration.
func (c *Clock) Start() {
	c.started = c.now()
	if c.frames > 0 {
		c.dt = c.started.Sub(c.lastStart)
	}
	c.running = true
}

// Finish marks the end of an iteration.
func (c *Clock) Finish() {
	if !c.running {
		return
	}
	c.work = c.now().Sub(c.started)
	c.lastStart = c.started
	c.frames++
	c.running = false
}

// DT returns the real delta measured at the last Start.
func (c *Clock) DT() time.Duration {
	return c.dt
}

// Seconds returns DT in seconds.
func (c *Clock) Seconds() float64 {
	return c.dt.Seconds()
}

// Work returns how long the last finished iteration took, excluding any
// time spent between Finish and the next Start.
func (c *Clock) Work() time.Duration {
	return c.work
}

// Frames returns the number of finished iterations.
func (c *Clock) Frames() uint64 {
	return c.frames
}
