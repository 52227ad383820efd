package roster

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// Targets stores squad-composition analysis parameters. The distribution
// variants that diverged across the original analyzers live here as named
// configuration rather than duplicated constants.
type Targets struct {
	SquadSizeMin      int
	SquadSizeMax      int
	SquadSizeOptimal  int
	AgeDistribution   map[string]float64
	PhaseDistribution map[string]float64
	// NeedThreshold is the deficit fraction beyond which a bucket becomes a
	// need. A gap above twice the threshold is graded high severity.
	NeedThreshold float64
}

func DefaultTargets() Targets {
	return Targets{
		SquadSizeMin:     20,
		SquadSizeMax:     28,
		SquadSizeOptimal: 24,
		AgeDistribution: map[string]float64{
			string(player.AgeBucketU21):    0.15,
			string(player.AgeBucket21To25): 0.30,
			string(player.AgeBucket26To29): 0.35,
			string(player.AgeBucket30Plus): 0.20,
		},
		PhaseDistribution: map[string]float64{
			string(player.PhaseBreakthrough): 0.20,
			string(player.PhaseDevelopment):  0.30,
			string(player.PhasePeak):         0.35,
			string(player.PhaseTwilight):     0.15,
		},
		NeedThreshold: 0.10,
	}
}

func (t Targets) Validate() error {
	if t.SquadSizeMin <= 0 || t.SquadSizeMax < t.SquadSizeMin {
		return fmt.Errorf("invalid squad size bounds: min=%d max=%d", t.SquadSizeMin, t.SquadSizeMax)
	}
	if t.SquadSizeOptimal < t.SquadSizeMin || t.SquadSizeOptimal > t.SquadSizeMax {
		return fmt.Errorf("optimal squad size %d outside [%d,%d]", t.SquadSizeOptimal, t.SquadSizeMin, t.SquadSizeMax)
	}
	if t.NeedThreshold <= 0 || t.NeedThreshold >= 1 {
		return fmt.Errorf("need threshold must be in (0,1): %v", t.NeedThreshold)
	}

	return nil
}

func (t Targets) idealFor(axis Axis) map[string]float64 {
	if axis == AxisPhase {
		return t.PhaseDistribution
	}

	return t.AgeDistribution
}

// Analyze computes the squad's bucket distribution over one axis and
// compares it against the configured ideal. Players with unknown age count
// in the denominator but belong to no bucket.
func Analyze(snapshot Snapshot, axis Axis, targets Targets) Distribution {
	ideal := targets.idealFor(axis)
	buckets := axis.BucketNames()

	current := make(map[string]float64, len(buckets))
	for _, bucket := range buckets {
		current[bucket] = 0
	}

	total := len(snapshot.Players)
	if total > 0 {
		for _, p := range snapshot.Players {
			if !p.AgeKnown() {
				continue
			}
			current[bucketFor(axis, p.Age)] += 1 / float64(total)
		}
	}

	gaps := make(map[string]float64, len(buckets))
	for _, bucket := range buckets {
		gaps[bucket] = ideal[bucket] - current[bucket]
	}

	score := 0.0
	if total > 0 {
		score = BalanceScore(current, ideal)
	}

	return Distribution{
		Axis:         axis,
		Current:      current,
		Ideal:        copyDistribution(ideal),
		Gaps:         gaps,
		BalanceScore: score,
	}
}

// BalanceScore measures how closely current matches ideal: 1 minus half the
// total absolute difference. Both arguments are distributions over the same
// partition, so the result lands in [0,1].
func BalanceScore(current, ideal map[string]float64) float64 {
	sum := 0.0
	for bucket, want := range ideal {
		sum += math.Abs(want - current[bucket])
	}

	score := 1 - sum/2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}

	return score
}

// IdentifyNeeds returns the buckets whose deficit exceeds the threshold,
// ordered by gap size descending. Ties preserve the canonical bucket order,
// never map iteration order.
func IdentifyNeeds(dist Distribution, threshold float64) []Need {
	buckets := dist.Axis.BucketNames()
	needs := make([]Need, 0, len(buckets))

	for _, bucket := range buckets {
		gap := dist.Gaps[bucket]
		if gap <= threshold {
			continue
		}

		severity := SeverityMedium
		if gap > 2*threshold {
			severity = SeverityHigh
		}
		needs = append(needs, Need{
			Axis:     dist.Axis,
			Bucket:   bucket,
			Gap:      gap,
			Severity: severity,
		})
	}

	sort.SliceStable(needs, func(i, j int) bool {
		return needs[i].Gap > needs[j].Gap
	})

	return needs
}

// EvaluateSquadSize grades the headcount against configured bounds, with an
// exact shortfall or excess count in the message.
func EvaluateSquadSize(total int, targets Targets) (SizeStatus, string) {
	switch {
	case total < targets.SquadSizeMin:
		deficit := targets.SquadSizeMin - total
		return SizeUnderstaffed, fmt.Sprintf("need %d more players to reach the minimum of %d", deficit, targets.SquadSizeMin)
	case total > targets.SquadSizeMax:
		excess := total - targets.SquadSizeMax
		return SizeOverstaffed, fmt.Sprintf("squad too large by %d players, maximum is %d", excess, targets.SquadSizeMax)
	case total == targets.SquadSizeOptimal:
		return SizeOptimal, fmt.Sprintf("squad size matches the optimal %d", targets.SquadSizeOptimal)
	default:
		return SizeAcceptable, fmt.Sprintf("squad size %d is within [%d,%d]", total, targets.SquadSizeMin, targets.SquadSizeMax)
	}
}

// MetricsOf computes headline squad numbers. Average age considers only
// players with a known age.
func MetricsOf(snapshot Snapshot, targets Targets) Metrics {
	total := len(snapshot.Players)

	ageSum := 0
	known := 0
	for _, p := range snapshot.Players {
		if p.AgeKnown() {
			ageSum += p.Age
			known++
		}
	}

	averageAge := 0.0
	if known > 0 {
		averageAge = math.Round(float64(ageSum)/float64(known)*10) / 10
	}

	status, message := EvaluateSquadSize(total, targets)

	return Metrics{
		TotalPlayers: total,
		AverageAge:   averageAge,
		SizeStatus:   status,
		SizeMessage:  message,
	}
}

// Advisories renders human-readable guidance from the size evaluation and
// per-bucket gaps that cross the threshold in either direction.
func Advisories(metrics Metrics, distributions []Distribution, threshold float64) []string {
	out := make([]string, 0, 8)
	if metrics.SizeStatus == SizeUnderstaffed || metrics.SizeStatus == SizeOverstaffed {
		out = append(out, metrics.SizeMessage)
	}

	for _, dist := range distributions {
		for _, bucket := range dist.Axis.BucketNames() {
			gap := dist.Gaps[bucket]
			if math.Abs(gap) <= threshold {
				continue
			}

			label := strings.ReplaceAll(bucket, "_", "-")
			if gap > 0 {
				out = append(out, fmt.Sprintf("need more %s players (+%.0f%%)", label, gap*100))
			} else {
				out = append(out, fmt.Sprintf("reduce %s players (%.0f%%)", label, gap*100))
			}
		}
	}

	return out
}

func bucketFor(axis Axis, age int) string {
	if axis == AxisPhase {
		return string(player.PhaseForAge(age))
	}

	return string(player.BucketForAge(age))
}

func copyDistribution(src map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(src))
	for bucket, fraction := range src {
		out[bucket] = fraction
	}

	return out
}
