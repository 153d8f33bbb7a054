package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/assist"
	"github.com/ppiankov/veracity/internal/cache"
	"github.com/ppiankov/veracity/internal/logging"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
	"github.com/ppiankov/veracity/internal/search"
)

// loadConfig builds the effective configuration: defaults, then the
// config file, then environment overrides
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// VERACITY_BRAVE_API_KEY via viper's env binding
	if key := viper.GetString("brave_api_key"); key != "" {
		cfg.Search.BraveAPIKey = key
	}
	return cfg, nil
}

// buildEngine assembles the registry, cache, assistant and pipeline
func buildEngine(cfg *model.Config, fixturePath string, logger *zap.Logger) (*pipeline.Engine, error) {
	registry := search.NewRegistry()

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = home + "/.veracity/cache"
		}
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
	}

	register := func(p search.Provider) {
		if store != nil {
			p = search.NewCachedProvider(p, store, cfg.Cache.MemoryTTL)
		}
		registry.Register(p)
	}

	register(search.NewWikipediaProvider(cfg.Search.UserAgent, cfg.Search.CallTimeout))
	register(search.NewDuckDuckGoProvider(cfg.Search.UserAgent, cfg.Search.CallTimeout))
	if cfg.Search.BraveAPIKey != "" {
		brave, err := search.NewBraveProvider(cfg.Search.BraveAPIKey, cfg.Search.CallTimeout)
		if err != nil {
			return nil, fmt.Errorf("configure brave provider: %w", err)
		}
		register(brave)
	}

	if fixturePath != "" {
		hits, err := loadFixtures(fixturePath)
		if err != nil {
			return nil, err
		}
		// Fixtures replace live providers entirely for reproducible runs
		registry = search.NewRegistry()
		registry.Register(search.NewFixtureProvider("fixture", hits))
		cfg.Search.Providers = []string{"fixture"}
	}

	assistant, err := assist.New(cfg.Assist, logger)
	if err != nil {
		return nil, err
	}

	checker := pipeline.NewChecker(cfg, registry, assistant, logger)
	return pipeline.NewEngine(cfg, registry, checker, logger), nil
}

// loadFixtures reads search hits from a JSON file
func loadFixtures(path string) ([]model.SearchHit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	var hits []model.SearchHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return hits, nil
}

// newLogger builds the CLI logger honoring the verbose flag
func newLogger() *zap.Logger {
	logger, err := logging.New(verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
