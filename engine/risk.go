package engine

import "go-lifeline/types"

// Risk thresholds per region.
const (
	highOccupancyRatio   = 0.8
	mediumOccupancyRatio = 0.5
	highDisplacedCount   = 100
	mediumDisplacedCount = 50
)

// ScoreRisk derives the region risk level. Branch order matters: a region
// with no shelter capacity and nobody displaced but one live critical
// incident must come out high, so the critical check cannot sit behind the
// occupancy math.
func ScoreRisk(agg types.RegionAggregate) types.RiskLevel {
	ratio := 0.0
	if agg.TotalCapacity > 0 {
		ratio = float64(agg.OccupiedCapacity) / float64(agg.TotalCapacity)
	}

	switch {
	case ratio > highOccupancyRatio || agg.DisplacedCount > highDisplacedCount || agg.CriticalAlerts > 0:
		return types.RiskHigh
	case ratio > mediumOccupancyRatio || agg.DisplacedCount > mediumDisplacedCount:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
