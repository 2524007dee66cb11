package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRiskLevel = errors.New("invalid risk level")

// RiskLevel is the shared severity scale for analyses, reports and
// incidents.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// riskRank orders the scale; unknown levels rank below none.
var riskRank = map[RiskLevel]int{
	RiskNone:     0,
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// Valid reports whether the level is one of the known values.
func (r RiskLevel) Valid() bool {
	_, ok := riskRank[r]
	return ok
}

// AtLeast reports whether r is at or above min on the severity scale.
func (r RiskLevel) AtLeast(min RiskLevel) bool {
	return riskRank[r] >= riskRank[min]
}

// SourceType distinguishes feed hardware.
type SourceType string

const (
	SourceCamera SourceType = "camera"
	SourceDrone  SourceType = "drone"
	SourceSensor SourceType = "sensor"
)

// Source is a registered camera/drone/sensor feed.
type Source struct {
	ID        uuid.UUID  `json:"id"`
	SourceID  string     `json:"sourceId"`
	Name      string     `json:"name"`
	Type      SourceType `json:"type"`
	Location  string     `json:"location"`
	Lat       *float64   `json:"lat,omitempty"`
	Lng       *float64   `json:"lng,omitempty"`
	Protocol  string     `json:"protocol,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Frame is a single snapshot captured from a source.
type Frame struct {
	ID          uuid.UUID `json:"id"`
	SourceID    string    `json:"sourceId"`
	StorageURL  string    `json:"storageUrl"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FPSEstimate float64   `json:"fpsEstimate"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Analysis is the structured judgment the external vision service returns
// for one frame.
type Analysis struct {
	ID                uuid.UUID `json:"id"`
	FrameID           uuid.UUID `json:"frameId"`
	CrowdDensity      RiskLevel `json:"crowdDensity"`
	EstimatedPeople   int       `json:"estimatedPeople"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	DetectedBehaviors []string  `json:"detectedBehaviors"`
	Confidence        float64   `json:"confidence"`
	CreatedAt         time.Time `json:"createdAt"`
}
