package types

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RegionAggregate is derived, never stored. Every aggregation pass rebuilds
// the full set from scratch, one entry per catalog region.
type RegionAggregate struct {
	Name             string    `json:"name"`
	DisplacedCount   int       `json:"displacedCount"`
	ShelterCount     int       `json:"shelterCount"`
	TotalCapacity    int       `json:"totalCapacity"`
	OccupiedCapacity int       `json:"occupiedCapacity"`
	CriticalAlerts   int       `json:"criticalAlerts"`
	RiskLevel        RiskLevel `json:"riskLevel"`
}

// KPISnapshot holds the global derived totals recomputed alongside the
// region aggregates.
type KPISnapshot struct {
	TotalDisplaced    int     `json:"totalDisplaced"`
	OccupancyRatePct  float64 `json:"occupancyRatePct"`
	ActiveAlertCount  int     `json:"activeAlertCount"`
	AvailableCapacity int     `json:"availableCapacity"`
}

// ActivityItem is the display projection of a deduplicated incident,
// produced only for the newest entries of the feed.
type ActivityItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Region      string    `json:"region"`
	Time        time.Time `json:"time"`
}

// DashboardFrame is what the view layer receives on every recompute.
type DashboardFrame struct {
	KPIs     KPISnapshot       `json:"kpis"`
	Regions  []RegionAggregate `json:"regions"`
	Activity []ActivityItem    `json:"activity"`
}

// Alert is a newly surfaced critical incident for the current viewer class.
type Alert struct {
	Incident Incident  `json:"incident"`
	Region   string    `json:"region"`
	RaisedAt time.Time `json:"raisedAt"`
}
