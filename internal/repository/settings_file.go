package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rverdelli/PlatformVA/internal/entity"
	"go.uber.org/zap"
)

const settingsCacheKey = "settings"

// SettingsFile persists the operator settings record as a single JSON file.
// Last write wins; the record may be absent, in which case Load returns
// empty-string defaults.
type SettingsFile struct {
	path  string
	cache *gocache.Cache
	mu    sync.RWMutex
}

func NewSettingsFile(path string, cacheTTL time.Duration) *SettingsFile {
	return &SettingsFile{
		path:  path,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Load returns the persisted settings, or empty defaults if the file is
// absent or unparsable. It never fails.
func (s *SettingsFile) Load(ctx context.Context) entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cached, ok := s.cache.Get(settingsCacheKey); ok {
		return cached.(entity.Settings)
	}

	var settings entity.Settings

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		ctxzap.Warn(ctx, "settings file is unparsable, using defaults",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return entity.Settings{}
	}

	s.cache.SetDefault(settingsCacheKey, settings)

	return settings
}

// Save overwrites the settings file wholesale.
func (s *SettingsFile) Save(ctx context.Context, settings entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	s.cache.Delete(settingsCacheKey)

	ctxzap.Info(ctx, "settings saved",
		zap.String("path", s.path),
		zap.Bool("api_key_set", settings.APIKey != ""),
	)

	return nil
}

// Clear deletes the settings file if present. Idempotent.
func (s *SettingsFile) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove settings file: %w", err)
	}

	s.cache.Delete(settingsCacheKey)

	ctxzap.Info(ctx, "settings cleared", zap.String("path", s.path))

	return nil
}
