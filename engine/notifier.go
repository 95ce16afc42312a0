package engine

import (
	"sync"

	"go-lifeline/types"
)

// notifier tracks which critical incidents have already been surfaced per
// viewer class, so an incident alerts exactly once per class no matter how
// many aggregation passes it survives.
type notifier struct {
	mu         sync.Mutex
	seen       map[types.ViewerClass]map[string]bool
	prevActive map[types.ViewerClass]map[string]bool
}

func newNotifier() *notifier {
	return &notifier{
		seen:       make(map[types.ViewerClass]map[string]bool),
		prevActive: make(map[types.ViewerClass]map[string]bool),
	}
}

// review takes the current active-critical incident set for a viewer class
// and returns the ones that newly appeared since the previous pass. Locally
// seen incidents are dropped even before the upstream flag write has
// propagated back through the incident stream.
func (n *notifier) review(active []types.Incident, class types.ViewerClass) []types.Incident {
	n.mu.Lock()
	defer n.mu.Unlock()

	cur := make(map[string]bool, len(active))
	var fresh []types.Incident
	for _, in := range active {
		if n.seen[class][in.ID] {
			continue
		}
		cur[in.ID] = true
		if !n.prevActive[class][in.ID] {
			fresh = append(fresh, in)
		}
	}
	n.prevActive[class] = cur
	return fresh
}

// markSeen records the operator action locally. Idempotent. If the upstream
// write races a pass that still carries the stale flag, the local set keeps
// the incident quiet; a brief duplicate re-alert on another instance is
// accepted eventual consistency, not a bug.
func (n *notifier) markSeen(id string, class types.ViewerClass) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seen[class] == nil {
		n.seen[class] = make(map[string]bool)
	}
	n.seen[class][id] = true
}
