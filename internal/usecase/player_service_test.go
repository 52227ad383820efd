package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scoutlab/squadscope/external/phasemodel"
	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/memory"
)

type stubClassifier struct {
	prediction phasemodel.Prediction
	err        error
	calls      int
}

func (c *stubClassifier) Classify(_ context.Context, _ player.ModelFeatures) (phasemodel.Prediction, error) {
	c.calls++
	if c.err != nil {
		return phasemodel.Prediction{}, c.err
	}
	return c.prediction, nil
}

func TestIngestPlayers_NormalizesAndStores(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	classifier := &stubClassifier{prediction: phasemodel.Prediction{Phase: player.PhasePeak, Confidence: 0.9}}
	service := NewPlayerService(repo, NewPhaseResolver(classifier, nil), nil)

	records := []player.RawRecord{
		{
			ID:           "p-1",
			FullName:     "First Player",
			BirthDateAge: "Mar 2, 1999 (27)",
			MarketValue:  "€40.00m",
			CareerStats: []player.RawSeason{
				{Appearances: "30", Goals: "10", Assists: "5", Minutes: "2,500"},
			},
		},
		{FullName: "No ID"},
	}

	result, err := service.IngestPlayers(context.Background(), records)
	if err != nil {
		t.Fatalf("ingest players: %v", err)
	}
	if result.Received != 2 || result.Stored != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored, exists, err := repo.GetByID(context.Background(), "p-1")
	if err != nil || !exists {
		t.Fatalf("expected stored player, exists=%t err=%v", exists, err)
	}
	if stored.Age != 27 || stored.MarketValue != 40_000_000 {
		t.Fatalf("unexpected normalization: age=%d value=%v", stored.Age, stored.MarketValue)
	}
	if stored.Phase != player.PhasePeak {
		t.Fatalf("unexpected phase: %s", stored.Phase)
	}
}

func TestIngestPlayers_AgeRuleOverridesModelPrediction(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	classifier := &stubClassifier{prediction: phasemodel.Prediction{Phase: player.PhaseTwilight, Confidence: 0.8}}
	service := NewPlayerService(repo, NewPhaseResolver(classifier, nil), nil)

	_, err := service.IngestPlayers(context.Background(), []player.RawRecord{
		{ID: "p-2", BirthDateAge: "Jan 1, 2007 (19)"},
	})
	if err != nil {
		t.Fatalf("ingest players: %v", err)
	}

	stored, _, _ := repo.GetByID(context.Background(), "p-2")
	if stored.Phase != player.PhaseBreakthrough {
		t.Fatalf("age rule must win, got phase=%s", stored.Phase)
	}
}

func TestIngestPlayers_ClassifierFailureDegradesToAgeRule(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	classifier := &stubClassifier{err: errors.New("model down")}
	service := NewPlayerService(repo, NewPhaseResolver(classifier, nil), nil)

	result, err := service.IngestPlayers(context.Background(), []player.RawRecord{
		{ID: "p-3", BirthDateAge: "Jan 1, 1993 (33)"},
	})
	if err != nil {
		t.Fatalf("classifier failure must not fail ingestion: %v", err)
	}
	if result.Stored != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	stored, _, _ := repo.GetByID(context.Background(), "p-3")
	if stored.Phase != player.PhaseTwilight {
		t.Fatalf("expected age-derived twilight, got %s", stored.Phase)
	}
}

func TestIngestPlayers_EmptyBatch(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(nil), NewPhaseResolver(nil, nil), nil)

	if _, err := service.IngestPlayers(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPlayer_NotFound(t *testing.T) {
	service := NewPlayerService(memory.NewPlayerRepository(nil), NewPhaseResolver(nil, nil), nil)

	if _, err := service.GetPlayer(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetPlayer(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
