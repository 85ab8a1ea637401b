package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"universe-manager/internal/api"
	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
	"universe-manager/internal/metrics"
	"universe-manager/internal/portrait"
)

// ImageFetcher downloads a portrait from a URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*api.Image, error)
}

type PortraitService struct {
	store   portrait.Store
	fetcher ImageFetcher
	roster  *RosterService
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewPortraitService(
	store portrait.Store,
	fetcher ImageFetcher,
	roster *RosterService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *PortraitService {
	return &PortraitService{
		store:   store,
		fetcher: fetcher,
		roster:  roster,
		metrics: m,
		logger:  logger,
	}
}

// Upload stores body as the wrestler's portrait, replacing any previous one.
func (s *PortraitService) Upload(ctx context.Context, name, filename, contentType string, body io.Reader) (*domain.Wrestler, error) {
	data, err := io.ReadAll(io.LimitReader(body, constants.MaxPortraitBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read portrait: %w", err)
	}
	return s.put(ctx, name, filename, contentType, data, "upload")
}

// Import downloads the portrait at rawURL for the wrestler.
func (s *PortraitService) Import(ctx context.Context, name, rawURL string) (*domain.Wrestler, error) {
	if _, err := domain.Required("url", rawURL); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.PortraitFetchTimeout)
	defer cancel()

	img, err := s.fetcher.Fetch(fetchCtx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, name, "portrait"+img.Ext, img.ContentType, img.Body, "url")
}

func (s *PortraitService) put(ctx context.Context, name, filename, contentType string, data []byte, source string) (*domain.Wrestler, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image data", domain.ErrMissingField)
	}
	if len(data) > constants.MaxPortraitBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes", domain.ErrInvalidValue, constants.MaxPortraitBytes)
	}

	w, err := s.roster.GetWrestlerByName(ctx, name)
	if err != nil {
		return nil, err
	}
	key, err := portrait.Key(w.Name, filename)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = portrait.ContentType(key)
	}

	info, err := s.store.Put(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Str("driver", string(s.store.Driver())).Msg("failed to store portrait")
		return nil, err
	}

	if w.ImagePath != "" && w.ImagePath != key {
		if _, err := s.store.Delete(ctx, w.ImagePath); err != nil {
			s.logger.Warn().Err(err).Str("key", w.ImagePath).Msg("failed to remove previous portrait")
		}
	}
	if err := s.roster.SetPortrait(ctx, w.Name, key); err != nil {
		return nil, err
	}
	w.ImagePath = key

	s.metrics.PortraitsStored.WithLabelValues(source).Inc()
	s.logger.Info().
		Str("name", w.Name).
		Str("key", key).
		Int64("size", info.Size).
		Str("source", source).
		Msg("portrait stored")
	return w, nil
}

// Open streams the wrestler's portrait. The caller closes the reader.
func (s *PortraitService) Open(ctx context.Context, name string) (portrait.Info, io.ReadCloser, error) {
	w, err := s.roster.GetWrestlerByName(ctx, name)
	if err != nil {
		return portrait.Info{}, nil, err
	}
	if w.ImagePath == "" {
		return portrait.Info{}, nil, fmt.Errorf("%w: %q has no portrait", portrait.ErrNotFound, name)
	}
	return s.store.Get(ctx, w.ImagePath)
}
