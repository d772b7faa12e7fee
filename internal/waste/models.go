package waste

import "time"

// Category classifies a detected piece of waste.
type Category string

const (
	CategoryPlastic Category = "plastic"
	CategoryMetal   Category = "metal"
	CategoryPaper   Category = "paper"
	CategoryOrganic Category = "organic"
	CategoryOther   Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPlastic, CategoryMetal, CategoryPaper, CategoryOrganic, CategoryOther:
		return true
	}
	return false
}

// Status tracks the one-way detected -> collected transition.
type Status string

const (
	StatusDetected  Status = "detected"
	StatusCollected Status = "collected"
)

// Record is a waste detection (and optionally later collection) event. The
// RobotID is a weak reference with no referential-integrity guarantee.
type Record struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Region    string    `json:"region,omitempty"`
	// Latitude/Longitude are optional; both nil when no geolocation was
	// reported.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	// Confidence is the detector's score in [0,1]; nil when not reported.
	Confidence *float64 `json:"confidence,omitempty"`
	RobotID    string   `json:"robotId,omitempty"`
}

// Detection carries the caller-supplied fields for a detection report. The
// identifier, timestamp, and initial status are server-assigned.
type Detection struct {
	Category   Category `json:"category"`
	Region     string   `json:"region"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Confidence *float64 `json:"confidence"`
	RobotID    string   `json:"robotId"`
}

// Stats aggregates record counts. With every record carrying a status,
// Detected + Collected == Total.
type Stats struct {
	Total     int `json:"total"`
	Detected  int `json:"detected"`
	Collected int `json:"collected"`
}
