// Package dedup collapses duplicate incident deliveries. The reporting
// channels are at-least-once, so the same real-world event shows up with
// fresh document IDs; two incidents count as one event when their
// location+type signature matches within a short window.
package dedup

import (
	"strconv"
	"strings"
	"time"

	"go-lifeline/types"
)

// Window is how close two same-signature timestamps must be to count as a
// duplicate delivery. Same signature further apart is treated as two real
// events even if it is actually a resend.
const Window = 5000 * time.Millisecond

// Signature is the normalized (location, type) key:
// lowercase(address-or-"lat,lng") + "|" + lowercase(type).
func Signature(in types.Incident) string {
	loc := strings.ToLower(strings.TrimSpace(in.Location.Address))
	if loc == "" {
		loc = strconv.FormatFloat(in.Location.Lat, 'f', -1, 64) + "," +
			strconv.FormatFloat(in.Location.Lng, 'f', -1, 64)
	}
	return loc + "|" + strings.ToLower(in.EmergencyType)
}

// Deduplicate returns the incidents with duplicate deliveries dropped,
// preserving first-seen order. An incident is dropped when its ID was
// already accepted in this pass, or when an accepted incident with the same
// signature sits within Window of it (by the incidents' own timestamps).
//
// Tables are rebuilt from scratch on every call. Upstream delivers full
// snapshots, and carrying state across passes would wrongly merge distinct
// events that happen to share a signature.
func Deduplicate(incidents []types.Incident) []types.Incident {
	lastSeen := make(map[string]time.Time, len(incidents))
	acceptedIDs := make(map[string]bool, len(incidents))

	out := make([]types.Incident, 0, len(incidents))
	for _, in := range incidents {
		if acceptedIDs[in.ID] {
			continue
		}
		sig := Signature(in)
		if prev, ok := lastSeen[sig]; ok {
			delta := in.Timestamp.Sub(prev)
			if delta < 0 {
				delta = -delta
			}
			if delta < Window {
				continue
			}
		}
		acceptedIDs[in.ID] = true
		lastSeen[sig] = in.Timestamp
		out = append(out, in)
	}
	return out
}
