package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	"github.com/scoutlab/squadscope/external/phasemodel"
	"github.com/scoutlab/squadscope/internal/config"
	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/domain/roster"
	repocache "github.com/scoutlab/squadscope/internal/infrastructure/repository/cache"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/jsonfile"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/memory"
	"github.com/scoutlab/squadscope/internal/infrastructure/repository/postgres"
	"github.com/scoutlab/squadscope/internal/interfaces/httpapi"
	basecache "github.com/scoutlab/squadscope/internal/platform/cache"
	idgen "github.com/scoutlab/squadscope/internal/platform/id"
	"github.com/scoutlab/squadscope/internal/platform/resilience"
	"github.com/scoutlab/squadscope/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router from
// configuration. The returned cleanup closes backend resources and is safe
// to call even when construction fails.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	cleanup := func() {}

	targets, err := analysisTargets(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	playerRepo, teamRepo, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	if cfg.CacheEnabled {
		repoCache := basecache.NewStore(cfg.CacheTTL)
		playerRepo = repocache.NewPlayerRepository(playerRepo, repoCache)
		teamRepo = repocache.NewSavedTeamRepository(teamRepo, repoCache)
	}

	var classifier usecase.PhaseClassifier
	if cfg.PhaseModelEnabled {
		classifier = phasemodel.NewClient(phasemodel.ClientConfig{
			BaseURL: cfg.PhaseModelBaseURL,
			Timeout: cfg.PhaseModelTimeout,
			Retries: cfg.PhaseModelMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PhaseModelCircuitEnabled,
				FailureThreshold: cfg.PhaseModelCircuitFailures,
				OpenTimeout:      cfg.PhaseModelCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PhaseModelCircuitHalfOpenMax,
			},
		}, logger)
	}

	resolver := usecase.NewPhaseResolver(classifier, logger)
	playerSvc := usecase.NewPlayerService(playerRepo, resolver, logger)
	balanceSvc := usecase.NewBalanceService(playerRepo, targets, logger)
	teamSvc := usecase.NewTeamService(teamRepo, balanceSvc, basecache.NewStore(cfg.CacheTTL), logger)
	recommendationSvc := usecase.NewRecommendationService(
		playerRepo,
		teamRepo,
		balanceSvc,
		targets,
		cfg.RecommendationTopK,
		idgen.NewRandomGenerator(),
		logger,
	)
	projectionSvc := usecase.NewProjectionService(playerRepo, logger)

	handler := httpapi.NewHandler(playerSvc, balanceSvc, teamSvc, recommendationSvc, projectionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, cleanup, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func analysisTargets(cfg config.Config) (roster.Targets, error) {
	targets := roster.DefaultTargets()
	targets.SquadSizeMin = cfg.SquadSizeMin
	targets.SquadSizeMax = cfg.SquadSizeMax
	targets.SquadSizeOptimal = cfg.SquadSizeOptimal
	targets.NeedThreshold = cfg.NeedThreshold
	targets.AgeDistribution, targets.PhaseDistribution = cfg.TargetOverrides(targets.AgeDistribution, targets.PhaseDistribution)

	if err := targets.Validate(); err != nil {
		return roster.Targets{}, fmt.Errorf("invalid analysis targets: %w", err)
	}

	return targets, nil
}

func buildRepositories(cfg config.Config) (player.Repository, roster.SavedTeamRepository, func(), error) {
	cleanup := func() {}

	switch cfg.Storage {
	case config.StorageMemory:
		return memory.NewPlayerRepository(memory.SeedProfiles()), memory.NewSavedTeamRepository(), cleanup, nil

	case config.StoragePostgres:
		db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
			otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		cleanup = func() { _ = db.Close() }
		return postgres.NewPlayerRepository(db), postgres.NewSavedTeamRepository(db), cleanup, nil

	default:
		playerRepo, err := jsonfile.NewPlayerRepository(filepath.Join(cfg.DataDir, "players.json"))
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("open player store: %w", err)
		}
		teamRepo, err := jsonfile.NewSavedTeamRepository(filepath.Join(cfg.DataDir, "teams.json"))
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("open team store: %w", err)
		}
		return playerRepo, teamRepo, cleanup, nil
	}
}
