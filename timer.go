package folio

// FrameClock turns host timestamps (seconds, monotonically increasing) into
// per-frame deltas.
type FrameClock struct {
	last    float64
	started bool
}

// Tick returns the time since the previous Tick clamped to [0, 1]. The first
// Tick after a Reset returns 0.
func (c *FrameClock) Tick(ts float64) float64 {
	if !c.started {
		c.started = true
		c.last = ts
		return 0
	}
	dt := Clamp(ts-c.last, 0, 1)
	c.last = ts
	return dt
}

// Reset forgets the previous timestamp.
func (c *FrameClock) Reset() {
	c.started = false
	c.last = 0
}

// Timer is a restartable countdown.
type Timer struct {
	Duration  float64
	remaining float64
}

// NewTimer returns a timer that fires every duration seconds.
func NewTimer(duration float64) *Timer {
	return &Timer{Duration: duration, remaining: duration}
}

// Update counts down by dt. When the remaining time drops below zero the
// timer restarts from Duration and Update returns true.
func (t *Timer) Update(dt float64) bool {
	t.remaining -= dt
	if t.remaining < 0 {
		t.remaining = t.Duration
		return true
	}
	return false
}

// Reset restarts the countdown.
func (t *Timer) Reset() {
	t.remaining = t.Duration
}

// Remaining returns the time left before the timer fires.
func (t *Timer) Remaining() float64 {
	return t.remaining
}
