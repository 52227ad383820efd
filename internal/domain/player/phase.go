package player

// Phase is a career life-cycle stage derived from age and optionally
// adjusted by the external classifier.
type Phase string

const (
	PhaseBreakthrough Phase = "breakthrough"
	PhaseDevelopment  Phase = "development"
	PhasePeak         Phase = "peak"
	PhaseTwilight     Phase = "twilight"
)

// Phases lists all career phases in canonical order. Consumers that iterate
// buckets must use this order for deterministic output.
var Phases = []Phase{PhaseBreakthrough, PhaseDevelopment, PhasePeak, PhaseTwilight}

// AgeBucket partitions players by age for distribution analysis. The
// boundaries deliberately differ from the phase boundaries (21-25 here vs
// development's 21-24): the two bucket systems are independent axes.
type AgeBucket string

const (
	AgeBucketU21    AgeBucket = "u21"
	AgeBucket21To25 AgeBucket = "21_25"
	AgeBucket26To29 AgeBucket = "26_29"
	AgeBucket30Plus AgeBucket = "30_plus"
)

// AgeBuckets lists all age buckets in canonical order.
var AgeBuckets = []AgeBucket{AgeBucketU21, AgeBucket21To25, AgeBucket26To29, AgeBucket30Plus}

// PhaseForAge maps an age to its career phase. Boundaries are closed
// intervals: breakthrough 17-20, development 21-24, peak 25-29,
// twilight 30-40. Ages outside the table clamp to the nearest phase.
func PhaseForAge(age int) Phase {
	switch {
	case age <= 20:
		return PhaseBreakthrough
	case age <= 24:
		return PhaseDevelopment
	case age <= 29:
		return PhasePeak
	default:
		return PhaseTwilight
	}
}

// BucketForAge maps a non-negative age to exactly one age bucket.
func BucketForAge(age int) AgeBucket {
	switch {
	case age < 21:
		return AgeBucketU21
	case age <= 25:
		return AgeBucket21To25
	case age <= 29:
		return AgeBucket26To29
	default:
		return AgeBucket30Plus
	}
}

// ReconcilePhase resolves a disagreement between the age-derived phase and
// an externally predicted label. Age is ground truth; the learned model is a
// noisy signal, so the age-derived phase always wins. The second return
// reports whether the prediction disagreed, so callers can log the
// reconciliation event.
func ReconcilePhase(age int, predicted Phase) (Phase, bool) {
	derived := PhaseForAge(age)
	if predicted == "" {
		return derived, false
	}

	return derived, predicted != derived
}

// ParsePhase converts an external label to a Phase. Unknown labels return
// false rather than an error so classifier output can degrade gracefully.
func ParsePhase(label string) (Phase, bool) {
	switch Phase(label) {
	case PhaseBreakthrough, PhaseDevelopment, PhasePeak, PhaseTwilight:
		return Phase(label), true
	default:
		return "", false
	}
}

// BucketContains reports whether a player of the given age belongs to the
// named bucket. The name may come from either axis: a career phase or an age
// bucket. Unknown ages (0) belong to no bucket.
func BucketContains(bucket string, age int) bool {
	if age <= 0 {
		return false
	}
	if phase, ok := ParsePhase(bucket); ok {
		return PhaseForAge(age) == phase
	}

	switch AgeBucket(bucket) {
	case AgeBucketU21, AgeBucket21To25, AgeBucket26To29, AgeBucket30Plus:
		return BucketForAge(age) == AgeBucket(bucket)
	default:
		return false
	}
}
