package engine

import (
	"fmt"
	"sync"
)

// AlarmSink is the looping-sound primitive the host runtime provides.
// Play starts the loop, Stop halts it. Both may be called repeatedly.
type AlarmSink interface {
	Play() error
	Stop()
}

// AlarmGate wraps an AlarmSink behind the one-time audio unlock. The host
// blocks automated playback until a user gesture has proven the autoplay
// gate open, so the gate starts locked and only ever moves locked→unlocked.
//
// The gate is an instance object handed to the engine, not a process-wide
// singleton; two dashboards (or two tests) never share audio state.
type AlarmGate struct {
	mu       sync.Mutex
	sink     AlarmSink
	unlocked bool
	sounding bool
}

func NewAlarmGate(sink AlarmSink) *AlarmGate {
	return &AlarmGate{sink: sink}
}

// Unlock performs the user-gesture probe: play then immediately stop.
// A successful probe unlocks the gate for the rest of the process lifetime.
// Calling Unlock on an already-unlocked gate is a no-op.
func (g *AlarmGate) Unlock() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unlocked {
		return nil
	}
	if err := g.sink.Play(); err != nil {
		return fmt.Errorf("audio unlock probe failed: %w", err)
	}
	g.sink.Stop()
	g.unlocked = true
	return nil
}

func (g *AlarmGate) Unlocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unlocked
}

// Start begins the looping alarm if the gate is unlocked and the alarm is
// not already sounding. Locked gates swallow the request silently.
func (g *AlarmGate) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.unlocked || g.sounding {
		return
	}
	if err := g.sink.Play(); err != nil {
		return
	}
	g.sounding = true
}

// Stop halts the alarm. Safe to call when nothing is sounding, and must be
// called on shutdown so a torn-down dashboard never leaves an orphaned loop.
func (g *AlarmGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.sounding {
		return
	}
	g.sink.Stop()
	g.sounding = false
}

// Sounding reports whether the loop is currently playing.
func (g *AlarmGate) Sounding() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sounding
}
