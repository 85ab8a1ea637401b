package service

import (
	"github.com/rs/zerolog"

	"universe-manager/internal/constants"
	"universe-manager/internal/settings"
)

// SettingsService exposes the settings document and announces every change, including edits made on disk.
type SettingsService struct {
	store  *settings.Store
	logger zerolog.Logger
}

func NewSettingsService(store *settings.Store, events Publisher, logger zerolog.Logger) *SettingsService {
	store.OnChange(func(doc settings.Settings) {
		events.Publish(Event{Type: EventSettingsChanged, Data: doc})
	})
	return &SettingsService{store: store, logger: logger}
}

func (s *SettingsService) Get() settings.Settings {
	return s.store.Get()
}

func (s *SettingsService) Fonts() []string {
	return constants.Fonts
}

func (s *SettingsService) AddStyle(style string) (settings.Settings, error) {
	doc, err := s.store.AddStyle(style)
	if err != nil {
		s.logger.Error().Err(err).Str("style", style).Msg("failed to add match style")
	}
	return doc, err
}

func (s *SettingsService) RemoveStyle(style string) (settings.Settings, error) {
	return s.store.RemoveStyle(style)
}

func (s *SettingsService) SetFont(font string) (settings.Settings, error) {
	return s.store.SetFont(font)
}
