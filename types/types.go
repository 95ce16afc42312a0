package types

import "time"

// Location is the one canonical geo shape. Raw documents arrive with a few
// field-name variants (lat/latitude/_lat etc), the db layer normalizes them
// into this before anything downstream sees them.
type Location struct {
	Lat     float64 `firestore:"lat" json:"lat"`
	Lng     float64 `firestore:"lng" json:"lng"`
	Address string  `firestore:"address" json:"address"`
}

// IsZero reports whether the coordinate carries no usable point. (0,0) is
// the null island sentinel the reporting channels send when GPS is missing.
func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lng == 0
}

type IncidentStatus string

const (
	StatusActive       IncidentStatus = "Active"
	StatusResponding   IncidentStatus = "Responding"
	StatusInTransit    IncidentStatus = "InTransit"
	StatusResolved     IncidentStatus = "Resolved"
	StatusTransmitting IncidentStatus = "transmitting" // legacy reporting-channel synonym for Active
	StatusDeclined     IncidentStatus = "declined"
)

// Critical reports whether the incident still demands operator attention.
func (s IncidentStatus) Critical() bool {
	return s == StatusActive || s == StatusTransmitting
}

// ViewerClass is the two-level visibility scope. Operators and
// super-operators keep independent "seen" bookkeeping on each incident.
type ViewerClass string

const (
	ViewerOperator      ViewerClass = "operator"
	ViewerSuperOperator ViewerClass = "super"
)

type Incident struct {
	ID                  string         `firestore:"-" json:"id"`
	EmergencyType       string         `firestore:"emergencyType" json:"emergencyType"`
	Location            Location       `firestore:"location" json:"location"`
	Status              IncidentStatus `firestore:"status" json:"status"`
	Timestamp           time.Time      `firestore:"timestamp" json:"timestamp"`
	SeenByOperator      bool           `firestore:"seenByOperator" json:"seenByOperator"`
	SeenBySuperOperator bool           `firestore:"seenBySuperOperator" json:"seenBySuperOperator"`
}

// SeenBy returns the seen flag for the given viewer class.
func (in Incident) SeenBy(class ViewerClass) bool {
	if class == ViewerSuperOperator {
		return in.SeenBySuperOperator
	}
	return in.SeenByOperator
}

// SeenField is the Firestore field name backing SeenBy for a viewer class.
func SeenField(class ViewerClass) string {
	if class == ViewerSuperOperator {
		return "seenBySuperOperator"
	}
	return "seenByOperator"
}

type DisplacedPerson struct {
	ID                string `firestore:"-" json:"id"`
	CurrentLocation   string `firestore:"currentLocation" json:"currentLocation"`
	AssignedShelterID string `firestore:"assignedShelterId,omitempty" json:"assignedShelterId,omitempty"`
}

type Shelter struct {
	ID                string   `firestore:"-" json:"id"`
	Location          Location `firestore:"location" json:"location"`
	Capacity          int      `firestore:"capacity" json:"capacity"`
	AvailableCapacity int      `firestore:"availableCapacity" json:"availableCapacity"`
}

// Occupied is capacity minus what is still free. The availableCapacity
// invariant (0 <= available <= capacity) is assumed from upstream, not
// enforced here.
func (s Shelter) Occupied() int {
	return s.Capacity - s.AvailableCapacity
}
