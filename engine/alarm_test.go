package engine

import (
	"errors"
	"testing"
)

type fakeSink struct {
	plays   int
	stops   int
	playErr error
}

func (s *fakeSink) Play() error {
	s.plays++
	return s.playErr
}

func (s *fakeSink) Stop() { s.stops++ }

func TestAlarmGateStartsLocked(t *testing.T) {
	sink := &fakeSink{}
	g := NewAlarmGate(sink)

	g.Start()
	if sink.plays != 0 || g.Sounding() {
		t.Fatal("locked gate played sound")
	}
}

func TestAlarmGateUnlockProbesPlayThenStop(t *testing.T) {
	sink := &fakeSink{}
	g := NewAlarmGate(sink)

	if err := g.Unlock(); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if sink.plays != 1 || sink.stops != 1 {
		t.Fatalf("probe played %d stopped %d, want 1/1", sink.plays, sink.stops)
	}
	if !g.Unlocked() {
		t.Fatal("gate still locked after successful probe")
	}

	// Second unlock is a no-op, not a second probe.
	if err := g.Unlock(); err != nil {
		t.Fatalf("repeat unlock failed: %v", err)
	}
	if sink.plays != 1 {
		t.Fatalf("repeat unlock re-probed: %d plays", sink.plays)
	}
}

func TestAlarmGateUnlockFailureKeepsLocked(t *testing.T) {
	sink := &fakeSink{playErr: errors.New("autoplay blocked")}
	g := NewAlarmGate(sink)

	if err := g.Unlock(); err == nil {
		t.Fatal("expected unlock error")
	}
	if g.Unlocked() {
		t.Fatal("failed probe unlocked the gate")
	}

	// A later gesture can retry and succeed.
	sink.playErr = nil
	if err := g.Unlock(); err != nil {
		t.Fatalf("retry unlock failed: %v", err)
	}
	if !g.Unlocked() {
		t.Fatal("retry probe did not unlock")
	}
}

func TestAlarmGateStartStopLifecycle(t *testing.T) {
	sink := &fakeSink{}
	g := NewAlarmGate(sink)
	if err := g.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	probePlays, probeStops := sink.plays, sink.stops

	g.Start()
	if !g.Sounding() || sink.plays != probePlays+1 {
		t.Fatal("unlocked gate did not start the loop")
	}

	// Starting while already sounding must not stack plays.
	g.Start()
	if sink.plays != probePlays+1 {
		t.Fatalf("double start played again: %d", sink.plays)
	}

	g.Stop()
	if g.Sounding() || sink.stops != probeStops+1 {
		t.Fatal("stop did not halt the loop")
	}

	// Stop with nothing sounding is a safe no-op.
	g.Stop()
	if sink.stops != probeStops+1 {
		t.Fatalf("idle stop reached the sink: %d stops", sink.stops)
	}

	// Gate never re-locks; a later Start works again.
	g.Start()
	if !g.Sounding() {
		t.Fatal("gate refused to restart after stop")
	}
}
