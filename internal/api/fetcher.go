package api

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"universe-manager/internal/config"
	"universe-manager/internal/constants"
	"universe-manager/internal/domain"
)

var ErrFetchFailed = errors.New("portrait download failed")

// Image is a downloaded portrait ready to be stored.
type Image struct {
	Body        []byte
	ContentType string
	Ext         string
}

// FetchStats tracks outbound portrait downloads.
type FetchStats struct {
	Requests  int       `json:"requests"`
	Failures  int       `json:"failures"`
	LastURL   string    `json:"last_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PortraitFetcher downloads portrait images over HTTP, throttled so a burst of imports
// does not hammer the remote host.
type PortraitFetcher struct {
	client  *fasthttp.Client
	limiter *rate.Limiter
	logger  zerolog.Logger

	statsMu sync.RWMutex
	stats   FetchStats
}

func NewPortraitFetcher(cfg *config.Config, logger zerolog.Logger) *PortraitFetcher {
	return newPortraitFetcher(&fasthttp.Client{
		MaxConnsPerHost:     16,
		ReadTimeout:         constants.PortraitFetchTimeout,
		WriteTimeout:        constants.PortraitFetchTimeout,
		MaxIdleConnDuration: time.Minute,
		MaxResponseBodySize: constants.MaxPortraitBytes,
	}, cfg.Portrait.FetchRPS, logger)
}

func newPortraitFetcher(client *fasthttp.Client, rps float64, logger zerolog.Logger) *PortraitFetcher {
	return &PortraitFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), constants.PortraitFetchBurst),
		logger:  logger.With().Str("component", "portrait_fetcher").Logger(),
	}
}

func (f *PortraitFetcher) Stats() FetchStats {
	f.statsMu.RLock()
	defer f.statsMu.RUnlock()
	return f.stats
}

func (f *PortraitFetcher) record(rawURL string, failed bool) {
	f.statsMu.Lock()
	defer f.statsMu.Unlock()
	f.stats.Requests++
	if failed {
		f.stats.Failures++
	}
	f.stats.LastURL = rawURL
	f.stats.UpdatedAt = time.Now()
}

// Fetch downloads an image. The extension comes from the response Content-Type, falling
// back to the URL path, and must be one of the accepted portrait types.
func (f *PortraitFetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: portrait url %q", domain.ErrInvalidValue, rawURL)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	img, err := f.do(ctx, rawURL, u.Path)
	f.record(rawURL, err != nil)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", rawURL).Msg("portrait download failed")
		return nil, err
	}
	return img, nil
}

func (f *PortraitFetcher) do(ctx context.Context, rawURL, urlPath string) (*Image, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "image/png, image/jpeg, image/gif")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.PortraitFetchTimeout)
	}
	if err := f.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}

	contentType := string(resp.Header.ContentType())
	ext := extensionFor(contentType, urlPath)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidValue, contentType)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrFetchFailed)
	}
	return &Image{
		Body:        slices.Clone(body),
		ContentType: mediaType(contentType),
		Ext:         ext,
	}, nil
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}

func extensionFor(contentType, urlPath string) string {
	switch mediaType(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	ext := strings.ToLower(path.Ext(urlPath))
	if slices.Contains(constants.PortraitExtensions, ext) {
		return ext
	}
	return ""
}
