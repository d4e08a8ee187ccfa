package state

import "time"

// PlaybackState drives timeline playback over the solution's discrete
// time steps (0..makespan). Adapted from internal/vis/state/playback.go,
// which tracked a continuous float64 second count; here CurrentTime is
// a float64 tick position so DrawPathTrail can still interpolate
// smoothly between two integer steps, but Step{Forward,Back} and the
// timeline labels always land on whole ticks.
type PlaybackState struct {
	CurrentTime float64 // fractional tick position, 0..MaxTime
	MaxTime     float64 // makespan, in ticks
	Speed       float64 // ticks advanced per wall-clock second
	Playing     bool

	lastUpdate time.Time
}

// NewPlaybackState builds playback state for a solution of the given
// makespan (in ticks).
func NewPlaybackState(makespan int) *PlaybackState {
	return &PlaybackState{
		CurrentTime: 0,
		MaxTime:     float64(makespan),
		Speed:       1.0,
		Playing:     false,
		lastUpdate:  time.Now(),
	}
}

// TogglePlay starts or pauses playback, restarting from zero if it was
// sitting at the end.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

func (p *PlaybackState) Play()  { p.Playing = true; p.lastUpdate = time.Now() }
func (p *PlaybackState) Pause() { p.Playing = false }

// Reset returns playback to tick zero, paused.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves CurrentTime forward by the wall-clock time elapsed
// since the last call, scaled by Speed; it is a no-op while paused.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime jumps to an arbitrary tick position, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and advances by exactly one tick.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(float64(int(p.CurrentTime) + 1))
}

// StepBack pauses and rewinds by exactly one tick.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(float64(int(p.CurrentTime) - 1))
}

// SetSpeed sets the ticks-per-second playback rate, clamped to a
// sane range.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.1 {
		speed = 0.1
	}
	if speed > 10 {
		speed = 10
	}
	p.Speed = speed
}

// Progress returns current playback position as a 0..1 fraction.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
