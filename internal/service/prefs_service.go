package service

import (
	"context"
	"log/slog"

	"github.com/recitelabs/recite-api/internal/domain"
)

// PrefsService reads and updates the personalization preferences that
// shape generated content.
type PrefsService struct {
	engine *Engine
	logger *slog.Logger
}

// NewPrefsService creates a PrefsService.
func NewPrefsService(engine *Engine, logger *slog.Logger) *PrefsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrefsService{
		engine: engine,
		logger: logger.With(slog.String("component", "prefs_service")),
	}
}

// Get returns a copy of the current preferences.
func (s *PrefsService) Get(ctx context.Context) (domain.PersonalizationPrefs, error) {
	var prefs domain.PersonalizationPrefs
	err := s.engine.View(func(data *domain.Data) error {
		prefs = *data.Prefs
		return nil
	})
	return prefs, err
}

// Update replaces the preferences. Numeric fields are clamped to their
// valid ranges rather than rejected.
func (s *PrefsService) Update(
	ctx context.Context,
	prefs domain.PersonalizationPrefs,
) (domain.PersonalizationPrefs, error) {
	prefs.Clamp()
	err := s.engine.Update(ctx, func(data *domain.Data) error {
		*data.Prefs = prefs
		return nil
	})
	if err != nil {
		return domain.PersonalizationPrefs{}, err
	}
	s.logger.Info("preferences updated")
	return prefs, nil
}
