package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scoutlab/squadscope/internal/domain/roster"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/memory"
	"github.com/scoutlab/squadscope/internal/platform/cache"
)

func newTeamServiceForTest(t *testing.T, ages ...int) (*TeamService, []string) {
	t.Helper()

	profiles, ids := storedSquad(ages...)
	balance := NewBalanceService(memory.NewPlayerRepository(profiles), roster.DefaultTargets(), nil)

	service := NewTeamService(memory.NewSavedTeamRepository(), balance, cache.NewStore(time.Minute), nil)
	service.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	return service, ids
}

func TestSaveTeam_CreateAndOverwrite(t *testing.T) {
	service, ids := newTeamServiceForTest(t, 19, 23, 27, 31)

	saved, err := service.SaveTeam(context.Background(), SaveTeamInput{
		TeamName:  "First XI",
		PlayerIDs: ids[:2],
	})
	if err != nil {
		t.Fatalf("save team: %v", err)
	}
	if saved.SavedAt != time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected saved at: %v", saved.SavedAt)
	}

	// Re-saving the same name replaces the player set entirely.
	saved, err = service.SaveTeam(context.Background(), SaveTeamInput{
		TeamName:  "First XI",
		PlayerIDs: ids[2:],
	})
	if err != nil {
		t.Fatalf("re-save team: %v", err)
	}

	got, err := service.GetTeam(context.Background(), "First XI")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.PlayerIDs) != 2 || got.PlayerIDs[0] != ids[2] {
		t.Fatalf("expected replacement set, got %v", got.PlayerIDs)
	}

	teams, err := service.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected exactly one team, got %d", len(teams))
	}
}

func TestSaveTeam_Validation(t *testing.T) {
	service, ids := newTeamServiceForTest(t, 24)

	if _, err := service.SaveTeam(context.Background(), SaveTeamInput{PlayerIDs: ids}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := service.SaveTeam(context.Background(), SaveTeamInput{TeamName: "No Players"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty ids, got %v", err)
	}
}

func TestDeleteTeam_DistinctNotFound(t *testing.T) {
	service, ids := newTeamServiceForTest(t, 24, 27)

	if _, err := service.SaveTeam(context.Background(), SaveTeamInput{TeamName: "Doomed", PlayerIDs: ids}); err != nil {
		t.Fatalf("save team: %v", err)
	}

	if err := service.DeleteTeam(context.Background(), "Doomed"); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if err := service.DeleteTeam(context.Background(), "Doomed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := service.GetTeam(context.Background(), "Doomed"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTeamBalance_AnalyzesSavedComposition(t *testing.T) {
	service, ids := newTeamServiceForTest(t, 19, 19, 27, 28)

	if _, err := service.SaveTeam(context.Background(), SaveTeamInput{TeamName: "Analyzed XI", PlayerIDs: ids}); err != nil {
		t.Fatalf("save team: %v", err)
	}

	report, err := service.TeamBalance(context.Background(), "Analyzed XI")
	if err != nil {
		t.Fatalf("team balance: %v", err)
	}
	if report.TeamName != "Analyzed XI" {
		t.Fatalf("unexpected team name %q", report.TeamName)
	}
	if report.Metrics.TotalPlayers != 4 {
		t.Fatalf("unexpected player count %d", report.Metrics.TotalPlayers)
	}

	// A second read serves the cached report.
	again, err := service.TeamBalance(context.Background(), "Analyzed XI")
	if err != nil {
		t.Fatalf("cached team balance: %v", err)
	}
	if again.OverallBalance != report.OverallBalance {
		t.Fatal("cached report must match")
	}
}

func TestTeamBalance_UnknownTeam(t *testing.T) {
	service, _ := newTeamServiceForTest(t, 24)

	if _, err := service.TeamBalance(context.Background(), "Nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
