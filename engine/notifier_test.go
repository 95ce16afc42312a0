package engine

import (
	"testing"

	"go-lifeline/types"
)

func critical(id string) types.Incident {
	return types.Incident{ID: id, EmergencyType: "Fire", Status: types.StatusActive}
}

func TestReviewNotifiesOncePerIncident(t *testing.T) {
	n := newNotifier()
	active := []types.Incident{critical("a1")}

	fresh := n.review(active, types.ViewerOperator)
	if len(fresh) != 1 || fresh[0].ID != "a1" {
		t.Fatalf("first pass fresh = %v, want [a1]", fresh)
	}

	// The same incident surviving four more passes must stay quiet.
	for i := 0; i < 4; i++ {
		if fresh := n.review(active, types.ViewerOperator); len(fresh) != 0 {
			t.Fatalf("pass %d re-notified: %v", i+2, fresh)
		}
	}
}

func TestReviewReNotifiesAfterDisappearing(t *testing.T) {
	n := newNotifier()
	active := []types.Incident{critical("a1")}

	n.review(active, types.ViewerOperator)
	n.review(nil, types.ViewerOperator) // incident resolved and left the set

	// Reappearing counts as a new occurrence.
	if fresh := n.review(active, types.ViewerOperator); len(fresh) != 1 {
		t.Fatalf("reappearing incident not re-notified: %v", fresh)
	}
}

func TestMarkSeenSuppressesBeforeUpstreamPropagates(t *testing.T) {
	n := newNotifier()
	active := []types.Incident{critical("a1")}

	n.review(active, types.ViewerOperator)
	n.markSeen("a1", types.ViewerOperator)

	// The incident keeps arriving with the stale flag while the write
	// propagates; the local set must keep it quiet.
	n.review(nil, types.ViewerOperator)
	if fresh := n.review(active, types.ViewerOperator); len(fresh) != 0 {
		t.Fatalf("locally seen incident re-notified: %v", fresh)
	}
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	n := newNotifier()
	n.markSeen("a1", types.ViewerOperator)
	n.markSeen("a1", types.ViewerOperator)

	if fresh := n.review([]types.Incident{critical("a1")}, types.ViewerOperator); len(fresh) != 0 {
		t.Fatalf("seen incident notified: %v", fresh)
	}
}

func TestReviewTracksClassesIndependently(t *testing.T) {
	n := newNotifier()
	active := []types.Incident{critical("a1")}

	n.review(active, types.ViewerOperator)
	n.markSeen("a1", types.ViewerOperator)

	// The super class has its own ledger; the operator's ack changes nothing.
	if fresh := n.review(active, types.ViewerSuperOperator); len(fresh) != 1 {
		t.Fatalf("super class missed its own first notification: %v", fresh)
	}
}
