// Package engine is the aggregation-and-alerting core of the dashboard.
//
// Three live collections (incidents, displaced persons, shelters) push full
// snapshots through one fan-in channel consumed by a single goroutine. Every
// snapshot from any stream triggers one synchronous recompute over whatever
// the other two caches currently hold, stale or empty. That trade favors
// latency over join consistency: the first frame after startup under-counts
// until every stream has delivered once, and that is deliberate.
package engine

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"go-lifeline/dedup"
	"go-lifeline/regions"
	"go-lifeline/types"
)

type StreamID string

const (
	StreamIncidents StreamID = "incidents"
	StreamPersons   StreamID = "displacedPersons"
	StreamShelters  StreamID = "shelters"
)

// Snapshot is one full result-set delivery from a live collection. Only the
// slice matching Stream is read; the others stay nil.
type Snapshot struct {
	Stream    StreamID
	Incidents []types.Incident
	Persons   []types.DisplacedPerson
	Shelters  []types.Shelter
}

// StreamFailure is a subscription-level error classified at the db boundary.
// Failures never unwind into a recompute; the failed stream simply stops
// updating its cache and the last-known-good snapshot keeps serving.
type StreamFailure struct {
	Stream           StreamID
	PermissionDenied bool
	IndexAdvisory    string // non-empty when a composite index is missing
	Err              error
}

// Status is the sticky stream-health view for the banner and status endpoint.
type Status struct {
	PermissionDenied map[StreamID]bool `json:"permissionDenied"`
	IndexAdvisories  []string          `json:"indexAdvisories"`
}

// MarkSeenFunc persists a seen flag upstream. Nil disables persistence.
type MarkSeenFunc func(ctx context.Context, incidentID, field string) error

// How many activity items a frame carries.
const activityLimit = 20

// How many raised alerts the engine keeps for late HTTP readers.
const recentAlertLimit = 50

// Engine holds the three snapshot caches and everything derived from them.
// All caches are transient: a restart rebuilds the world from the next
// snapshot delivery.
type Engine struct {
	viewer   Viewer
	resolver *regions.Resolver
	notifier *notifier
	alarm    *AlarmGate
	markSeen MarkSeenFunc

	events chan any // Snapshot or StreamFailure, single consumer in Run

	// Caches below are touched only by the Run goroutine.
	incidents []types.Incident
	persons   []types.DisplacedPerson
	shelters  []types.Shelter

	mu         sync.Mutex
	frame      types.DashboardFrame
	haveFrame  bool
	frameSubs  []func(types.DashboardFrame)
	alertSubs  []func([]types.Alert)
	recent     []types.Alert
	denied     map[StreamID]bool
	advisories []string
}

// New builds an engine for one dashboard viewer. The alarm gate is owned by
// the caller so tests and parallel dashboards never share audio state.
func New(viewer Viewer, alarm *AlarmGate, markSeen MarkSeenFunc) *Engine {
	return &Engine{
		viewer:   viewer,
		resolver: regions.NewResolver(),
		notifier: newNotifier(),
		alarm:    alarm,
		markSeen: markSeen,
		events:   make(chan any, 16),
		denied:   make(map[StreamID]bool),
	}
}

// Push delivers a stream snapshot. Safe from any goroutine; processing
// happens on the Run goroutine, one discrete pass per snapshot.
func (e *Engine) Push(snap Snapshot) {
	e.events <- snap
}

// Fail records a subscription failure for a stream.
func (e *Engine) Fail(f StreamFailure) {
	e.events <- f
}

// Run consumes the fan-in until ctx is cancelled. Cancelling ctx is the
// group release for everything the engine owns, including the alarm loop.
func (e *Engine) Run(ctx context.Context) {
	defer e.alarm.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.events:
			switch v := ev.(type) {
			case Snapshot:
				e.apply(v)
			case StreamFailure:
				e.recordFailure(v)
			}
		}
	}
}

func (e *Engine) apply(snap Snapshot) {
	switch snap.Stream {
	case StreamIncidents:
		e.incidents = snap.Incidents
	case StreamPersons:
		e.persons = snap.Persons
	case StreamShelters:
		e.shelters = snap.Shelters
	default:
		log.Printf("engine: snapshot for unknown stream %q dropped", snap.Stream)
		return
	}
	e.recompute()
}

func (e *Engine) recordFailure(f StreamFailure) {
	e.mu.Lock()
	if f.PermissionDenied {
		e.denied[f.Stream] = true
	}
	if f.IndexAdvisory != "" {
		e.advisories = append(e.advisories, f.IndexAdvisory)
	}
	e.mu.Unlock()
	log.Printf("engine: stream %s failed: %v (permission=%v)", f.Stream, f.Err, f.PermissionDenied)
}

// recompute runs the full join over the three caches and emits one atomic
// result. Runs on the Run goroutine only.
func (e *Engine) recompute() {
	incidents, persons, shelters := applyScope(e.viewer, e.resolver, e.incidents, e.persons, e.shelters)
	deduped := dedup.Deduplicate(incidents)

	aggs := make([]types.RegionAggregate, len(regions.Catalog))
	index := make(map[string]int, len(regions.Catalog))
	for i, r := range regions.Catalog {
		aggs[i] = types.RegionAggregate{Name: r.Name}
		index[r.Name] = i
	}

	for _, dp := range persons {
		aggs[index[e.resolver.ResolveAddress(dp.CurrentLocation)]].DisplacedCount++
	}

	totalAvailable := 0
	for _, sh := range shelters {
		p := regions.Point{Lat: sh.Location.Lat, Lng: sh.Location.Lng}
		i := index[e.resolver.Resolve(p, sh.Location.Address)]
		aggs[i].ShelterCount++
		aggs[i].TotalCapacity += sh.Capacity
		aggs[i].OccupiedCapacity += sh.Occupied()
		totalAvailable += sh.AvailableCapacity
	}

	var activeCritical []types.Incident
	incidentRegion := make(map[string]string, len(deduped))
	for _, in := range deduped {
		p := regions.Point{Lat: in.Location.Lat, Lng: in.Location.Lng}
		region := e.resolver.Resolve(p, in.Location.Address)
		incidentRegion[in.ID] = region
		if in.Status.Critical() {
			aggs[index[region]].CriticalAlerts++
			if !in.SeenBy(e.viewer.Class) {
				activeCritical = append(activeCritical, in)
			}
		}
	}

	totalDisplaced, totalCapacity, totalOccupied, totalCritical := 0, 0, 0, 0
	for i := range aggs {
		aggs[i].RiskLevel = ScoreRisk(aggs[i])
		totalDisplaced += aggs[i].DisplacedCount
		totalCapacity += aggs[i].TotalCapacity
		totalOccupied += aggs[i].OccupiedCapacity
		totalCritical += aggs[i].CriticalAlerts
	}

	kpis := types.KPISnapshot{
		TotalDisplaced:    totalDisplaced,
		ActiveAlertCount:  totalCritical,
		AvailableCapacity: totalAvailable,
	}
	if totalCapacity > 0 {
		kpis.OccupancyRatePct = float64(totalOccupied) / float64(totalCapacity) * 100
	}

	frame := types.DashboardFrame{
		KPIs:     kpis,
		Regions:  aggs,
		Activity: buildActivity(deduped, incidentRegion),
	}

	e.emitFrame(frame)
	e.raiseAlerts(activeCritical, incidentRegion)
}

// buildActivity projects the newest deduplicated incidents into the feed,
// newest first.
func buildActivity(deduped []types.Incident, region map[string]string) []types.ActivityItem {
	sorted := make([]types.Incident, len(deduped))
	copy(sorted, deduped)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if len(sorted) > activityLimit {
		sorted = sorted[:activityLimit]
	}

	items := make([]types.ActivityItem, 0, len(sorted))
	for _, in := range sorted {
		desc := in.Location.Address
		if desc == "" {
			desc = "reported near " + region[in.ID]
		}
		items = append(items, types.ActivityItem{
			ID:          in.ID,
			Title:       in.EmergencyType + " — " + region[in.ID],
			Description: desc,
			Severity:    activitySeverity(in.Status),
			Region:      region[in.ID],
			Time:        in.Timestamp,
		})
	}
	return items
}

func activitySeverity(s types.IncidentStatus) string {
	switch s {
	case types.StatusActive, types.StatusTransmitting:
		return "critical"
	case types.StatusResponding, types.StatusInTransit:
		return "warning"
	default:
		return "info"
	}
}

func (e *Engine) emitFrame(frame types.DashboardFrame) {
	e.mu.Lock()
	e.frame = frame
	e.haveFrame = true
	subs := make([]func(types.DashboardFrame), len(e.frameSubs))
	copy(subs, e.frameSubs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(frame)
	}
}

func (e *Engine) raiseAlerts(activeCritical []types.Incident, region map[string]string) {
	fresh := e.notifier.review(activeCritical, e.viewer.Class)

	if len(fresh) > 0 {
		now := time.Now().UTC()
		alerts := make([]types.Alert, 0, len(fresh))
		for _, in := range fresh {
			alerts = append(alerts, types.Alert{Incident: in, Region: region[in.ID], RaisedAt: now})
		}

		e.mu.Lock()
		e.recent = append(e.recent, alerts...)
		if n := len(e.recent); n > recentAlertLimit {
			e.recent = e.recent[n-recentAlertLimit:]
		}
		subs := make([]func([]types.Alert), len(e.alertSubs))
		copy(subs, e.alertSubs)
		e.mu.Unlock()

		for _, fn := range subs {
			fn(alerts)
		}
		e.alarm.Start()
	}

	// The loop stops on its own the moment nothing critical remains.
	if len(activeCritical) == 0 {
		e.alarm.Stop()
	}
}

// SubscribeFrames registers a callback for every recompute result. Callbacks
// run on the engine goroutine; keep them short.
func (e *Engine) SubscribeFrames(fn func(types.DashboardFrame)) {
	e.mu.Lock()
	e.frameSubs = append(e.frameSubs, fn)
	e.mu.Unlock()
}

// SubscribeAlerts registers a callback for newly surfaced critical incidents.
func (e *Engine) SubscribeAlerts(fn func([]types.Alert)) {
	e.mu.Lock()
	e.alertSubs = append(e.alertSubs, fn)
	e.mu.Unlock()
}

// LatestFrame returns the most recent frame, if any pass has run yet.
func (e *Engine) LatestFrame() (types.DashboardFrame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame, e.haveFrame
}

// RecentAlerts returns the alerts raised most recently, oldest first.
func (e *Engine) RecentAlerts() []types.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Alert, len(e.recent))
	copy(out, e.recent)
	return out
}

// StreamStatus returns the sticky failure flags.
func (e *Engine) StreamStatus() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Status{PermissionDenied: make(map[StreamID]bool, len(e.denied))}
	for k, v := range e.denied {
		st.PermissionDenied[k] = v
	}
	st.IndexAdvisories = append(st.IndexAdvisories, e.advisories...)
	return st
}

// MarkSeen records the operator action locally and persists the viewer
// class's seen flag upstream. Idempotent either way.
func (e *Engine) MarkSeen(ctx context.Context, incidentID string) error {
	e.notifier.markSeen(incidentID, e.viewer.Class)
	if e.markSeen == nil {
		return nil
	}
	return e.markSeen(ctx, incidentID, types.SeenField(e.viewer.Class))
}

// UnlockAudio runs the one-time user-gesture probe against the alarm gate.
func (e *Engine) UnlockAudio() error {
	return e.alarm.Unlock()
}

// AudioUnlocked reports the gate state.
func (e *Engine) AudioUnlocked() bool {
	return e.alarm.Unlocked()
}

// Viewer returns who this engine instance aggregates for.
func (e *Engine) Viewer() Viewer {
	return e.viewer
}
