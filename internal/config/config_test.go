package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default jsonfile", func(t *testing.T) {
		t.Setenv("APP_STORAGE", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Storage != StorageJSONFile {
			t.Fatalf("unexpected default storage: %q", cfg.Storage)
		}
	})

	t.Run("invalid backend", func(t *testing.T) {
		t.Setenv("APP_STORAGE", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid APP_STORAGE")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "squadscope-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "squadscope-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_AnalysisConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SquadSizeMin != 20 || cfg.SquadSizeMax != 28 || cfg.SquadSizeOptimal != 24 {
			t.Fatalf("unexpected squad size defaults: %d/%d/%d", cfg.SquadSizeMin, cfg.SquadSizeMax, cfg.SquadSizeOptimal)
		}
		if cfg.NeedThreshold != 0.10 {
			t.Fatalf("unexpected need threshold default: %v", cfg.NeedThreshold)
		}
		if cfg.RecommendationTopK != 3 {
			t.Fatalf("unexpected top-k default: %d", cfg.RecommendationTopK)
		}
		if cfg.AgeDistribution != nil {
			t.Fatalf("expected nil age distribution without override")
		}
	})

	t.Run("threshold bounds", func(t *testing.T) {
		t.Setenv("ANALYSIS_NEED_THRESHOLD", "1.5")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for out-of-range ANALYSIS_NEED_THRESHOLD")
		}
	})

	t.Run("distribution override parsing", func(t *testing.T) {
		t.Setenv("ANALYSIS_NEED_THRESHOLD", "")
		t.Setenv("ANALYSIS_AGE_DISTRIBUTION", "u21:0.10,21_25:0.35,26_29:0.35,30_plus:0.20")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AgeDistribution["21_25"] != 0.35 {
			t.Fatalf("unexpected age distribution override: %+v", cfg.AgeDistribution)
		}
	})

	t.Run("invalid distribution item", func(t *testing.T) {
		t.Setenv("ANALYSIS_AGE_DISTRIBUTION", "u21-0.10")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for malformed ANALYSIS_AGE_DISTRIBUTION")
		}
	})
}

func TestLoad_PhaseModelConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("PHASE_MODEL_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.PhaseModelEnabled {
			t.Fatalf("expected PhaseModelEnabled=false by default")
		}
	})

	t.Run("enabled requires base url", func(t *testing.T) {
		t.Setenv("PHASE_MODEL_ENABLED", "true")
		t.Setenv("PHASE_MODEL_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when PHASE_MODEL_ENABLED=true without PHASE_MODEL_BASE_URL")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("PHASE_MODEL_ENABLED", "true")
		t.Setenv("PHASE_MODEL_BASE_URL", "http://localhost:9000")
		t.Setenv("PHASE_MODEL_TIMEOUT", "5s")
		t.Setenv("PHASE_MODEL_MAX_RETRIES", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.PhaseModelEnabled {
			t.Fatalf("expected PhaseModelEnabled=true")
		}
		if cfg.PhaseModelTimeout != 5*time.Second {
			t.Fatalf("unexpected phase model timeout: %s", cfg.PhaseModelTimeout)
		}
		if cfg.PhaseModelMaxRetries != 2 {
			t.Fatalf("unexpected phase model retries: %d", cfg.PhaseModelMaxRetries)
		}
	})
}

func TestTargetOverrides(t *testing.T) {
	ageDefault := map[string]float64{"u21": 0.15}
	phaseDefault := map[string]float64{"peak": 0.35}

	t.Run("keeps defaults when unset", func(t *testing.T) {
		cfg := Config{}
		age, phase := cfg.TargetOverrides(ageDefault, phaseDefault)
		if age["u21"] != 0.15 || phase["peak"] != 0.35 {
			t.Fatalf("expected defaults to pass through")
		}
	})

	t.Run("applies overrides", func(t *testing.T) {
		cfg := Config{AgeDistribution: map[string]float64{"u21": 0.25}}
		age, phase := cfg.TargetOverrides(ageDefault, phaseDefault)
		if age["u21"] != 0.25 {
			t.Fatalf("expected age override to win, got %v", age["u21"])
		}
		if phase["peak"] != 0.35 {
			t.Fatalf("expected phase default to survive, got %v", phase["peak"])
		}
	})
}
