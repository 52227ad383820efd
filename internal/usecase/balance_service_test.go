package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/memory"
)

func storedSquad(ages ...int) ([]player.Profile, []string) {
	profiles := make([]player.Profile, 0, len(ages))
	ids := make([]string, 0, len(ages))
	for i, age := range ages {
		id := string(rune('a' + i))
		profiles = append(profiles, player.Profile{
			ID:    id,
			Age:   age,
			Phase: player.PhaseForAge(age),
		})
		ids = append(ids, id)
	}

	return profiles, ids
}

func TestAnalyzeBalance_StoredIDs(t *testing.T) {
	profiles, ids := storedSquad(19, 19, 27, 28)
	service := NewBalanceService(memory.NewPlayerRepository(profiles), roster.DefaultTargets(), nil)

	report, err := service.AnalyzeBalance(context.Background(), SquadInput{
		TeamName:  "Test FC",
		PlayerIDs: ids,
	})
	if err != nil {
		t.Fatalf("analyze balance: %v", err)
	}

	if report.TeamName != "Test FC" {
		t.Fatalf("unexpected team name %q", report.TeamName)
	}
	if report.Metrics.TotalPlayers != 4 {
		t.Fatalf("unexpected player count %d", report.Metrics.TotalPlayers)
	}
	if report.AgeAnalysis.Current["u21"] != 0.5 {
		t.Fatalf("unexpected u21 fraction %v", report.AgeAnalysis.Current["u21"])
	}
	if report.OverallBalance != (report.AgeBalance+report.PhaseBalance)/2 {
		t.Fatal("overall balance must average the two axes")
	}
	if len(report.Needs) == 0 {
		t.Fatal("expected needs for an unbalanced squad")
	}
	for i := 1; i < len(report.Needs); i++ {
		if report.Needs[i].Gap > report.Needs[i-1].Gap {
			t.Fatal("needs must be ordered by gap descending")
		}
	}
	if len(report.Advisories) == 0 {
		t.Fatal("expected advisories")
	}
}

func TestAnalyzeBalance_MissingPlayers(t *testing.T) {
	profiles, _ := storedSquad(24)
	service := NewBalanceService(memory.NewPlayerRepository(profiles), roster.DefaultTargets(), nil)

	_, err := service.AnalyzeBalance(context.Background(), SquadInput{
		PlayerIDs: []string{"a", "ghost"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeBalance_InlineRecordsAreNotPersisted(t *testing.T) {
	repo := memory.NewPlayerRepository(nil)
	service := NewBalanceService(repo, roster.DefaultTargets(), nil)

	report, err := service.AnalyzeBalance(context.Background(), SquadInput{
		TeamName: "Inline XI",
		Records: []player.RawRecord{
			{ID: "r-1", BirthDateAge: "Jan 1, 2004 (22)"},
			{ID: "r-2", BirthDateAge: "Jan 1, 1998 (28)"},
		},
	})
	if err != nil {
		t.Fatalf("analyze balance: %v", err)
	}
	if report.Metrics.TotalPlayers != 2 {
		t.Fatalf("unexpected player count %d", report.Metrics.TotalPlayers)
	}

	all, _ := repo.All(context.Background())
	if len(all) != 0 {
		t.Fatalf("inline records must not be persisted, found %d", len(all))
	}
}

func TestAnalyzeBalance_RequiresSquad(t *testing.T) {
	service := NewBalanceService(memory.NewPlayerRepository(nil), roster.DefaultTargets(), nil)

	if _, err := service.AnalyzeBalance(context.Background(), SquadInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.AnalyzeBalance(context.Background(), SquadInput{PlayerIDs: []string{"a", "a"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicates, got %v", err)
	}
}

func TestAnalyzeDistribution_PhaseAxis(t *testing.T) {
	profiles, ids := storedSquad(19, 23, 27, 31)
	service := NewBalanceService(memory.NewPlayerRepository(profiles), roster.DefaultTargets(), nil)

	dist, err := service.AnalyzeDistribution(context.Background(), SquadInput{PlayerIDs: ids}, roster.AxisPhase)
	if err != nil {
		t.Fatalf("analyze distribution: %v", err)
	}

	if dist.Axis != roster.AxisPhase {
		t.Fatalf("unexpected axis %s", dist.Axis)
	}
	for _, bucket := range []string{"breakthrough", "development", "peak", "twilight"} {
		if dist.Current[bucket] != 0.25 {
			t.Fatalf("unexpected %s fraction %v", bucket, dist.Current[bucket])
		}
	}
}
