package roster

import (
	"fmt"
	"time"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// Axis selects which bucket system a distribution is computed over.
type Axis string

const (
	AxisAge   Axis = "age"
	AxisPhase Axis = "phase"
)

func ParseAxis(v string) (Axis, error) {
	switch Axis(v) {
	case AxisAge, AxisPhase:
		return Axis(v), nil
	default:
		return "", fmt.Errorf("invalid axis %q: valid values are %s, %s", v, AxisAge, AxisPhase)
	}
}

// BucketNames returns the axis's bucket names in canonical order.
func (a Axis) BucketNames() []string {
	switch a {
	case AxisPhase:
		names := make([]string, 0, len(player.Phases))
		for _, phase := range player.Phases {
			names = append(names, string(phase))
		}
		return names
	default:
		names := make([]string, 0, len(player.AgeBuckets))
		for _, bucket := range player.AgeBuckets {
			names = append(names, string(bucket))
		}
		return names
	}
}

// Snapshot is an immutable squad under analysis. It is created by the
// caller and never mutated by any analysis operation.
type Snapshot struct {
	TeamName string
	Players  []player.Profile
}

// SavedTeam is a named squad composition persisted for later analysis.
// Re-saving the same name fully overwrites the previous set.
type SavedTeam struct {
	TeamName  string
	PlayerIDs []string
	SavedAt   time.Time
}

// Distribution compares a squad's bucket fractions against configured ideal
// targets. Current fractions sum to 1 for a non-empty squad; for an empty
// squad every bucket is 0 and BalanceScore is 0.
type Distribution struct {
	Axis         Axis
	Current      map[string]float64
	Ideal        map[string]float64
	Gaps         map[string]float64
	BalanceScore float64
}

// SizeStatus describes how the squad headcount compares to targets.
type SizeStatus string

const (
	SizeUnderstaffed SizeStatus = "understaffed"
	SizeOverstaffed  SizeStatus = "overstaffed"
	SizeAcceptable   SizeStatus = "acceptable"
	SizeOptimal      SizeStatus = "optimal"
)

// Metrics holds basic squad headline numbers.
type Metrics struct {
	TotalPlayers int
	AverageAge   float64
	SizeStatus   SizeStatus
	SizeMessage  string
}

// Severity grades how badly a bucket falls short of its target.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Need is a bucket whose current share falls short of the ideal by more
// than the configured threshold.
type Need struct {
	Axis     Axis
	Bucket   string
	Gap      float64
	Severity Severity
}

// BalanceReport is the full squad-composition analysis payload.
type BalanceReport struct {
	TeamName       string
	Metrics        Metrics
	AgeAnalysis    Distribution
	PhaseAnalysis  Distribution
	AgeBalance     float64
	PhaseBalance   float64
	OverallBalance float64
	Needs          []Need
	Advisories     []string
}
