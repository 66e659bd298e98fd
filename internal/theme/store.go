package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/HerbHall/schooldesk/internal/services"
	"go.uber.org/zap"
)

// DefaultStorageKey is the settings key holding the cached theme.
const DefaultStorageKey = "theme:colors"

// LocalStore caches the active theme as one JSON document under a single key.
type LocalStore struct {
	repo   services.SettingsRepository
	key    string
	logger *zap.Logger
}

// NewLocalStore creates a LocalStore. An empty key selects DefaultStorageKey.
func NewLocalStore(repo services.SettingsRepository, key string, logger *zap.Logger) *LocalStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &LocalStore{repo: repo, key: key, logger: logger}
}

// Read returns the cached theme. Anything unusable (unparsable JSON, a
// failing mapping) is removed from storage and reported as absent.
func (s *LocalStore) Read(ctx context.Context) (Mapping, bool) {
	setting, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, services.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("failed to read cached theme", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}

	var m Mapping
	if err := json.Unmarshal([]byte(setting.Value), &m); err != nil {
		s.logger.Warn("cached theme is not valid JSON, discarding", zap.String("key", s.key), zap.Error(err))
		s.discard(ctx)
		return nil, false
	}
	if !IsValid(m) {
		s.logger.Warn("cached theme failed validation, discarding",
			zap.String("key", s.key),
			zap.Any("problems", Problems(m)),
		)
		s.discard(ctx)
		return nil, false
	}
	return m, true
}

// Write replaces the cached theme with m, extra keys included.
func (s *LocalStore) Write(ctx context.Context, m Mapping) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := s.repo.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	return nil
}

func (s *LocalStore) discard(ctx context.Context) {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		s.logger.Warn("failed to remove invalid cached theme", zap.String("key", s.key), zap.Error(err))
	}
}
