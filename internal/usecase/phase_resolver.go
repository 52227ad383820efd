package usecase

import (
	"context"
	"log/slog"

	"github.com/scoutlab/squadscope/external/phasemodel"
	"github.com/scoutlab/squadscope/internal/domain/player"
)

// PhaseClassifier predicts a career phase from engineered model features.
type PhaseClassifier interface {
	Classify(ctx context.Context, features player.ModelFeatures) (phasemodel.Prediction, error)
}

// PhaseResolver combines the model prediction with the age rule. The age
// rule always wins; the model only ever confirms or gets logged as a
// disagreement. A classifier failure degrades to the age rule silently at
// warn level, never to an error for the caller.
type PhaseResolver struct {
	classifier PhaseClassifier
	logger     *slog.Logger
}

func NewPhaseResolver(classifier PhaseClassifier, logger *slog.Logger) *PhaseResolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &PhaseResolver{
		classifier: classifier,
		logger:     logger,
	}
}

func (r *PhaseResolver) Resolve(ctx context.Context, profile player.Profile) player.Phase {
	if r == nil || r.classifier == nil || !profile.AgeKnown() {
		return player.PhaseForAge(profile.Age)
	}

	prediction, err := r.classifier.Classify(ctx, profile.ModelFeatures())
	if err != nil {
		r.logger.WarnContext(ctx, "phase classifier unavailable, using age rule",
			"player_id", profile.ID,
			"error", err,
		)
		return player.PhaseForAge(profile.Age)
	}

	phase, disagreed := player.ReconcilePhase(profile.Age, prediction.Phase)
	if disagreed {
		r.logger.InfoContext(ctx, "phase prediction overridden by age rule",
			"player_id", profile.ID,
			"predicted", prediction.Phase,
			"confidence", prediction.Confidence,
			"resolved", phase,
		)
	}

	return phase
}
