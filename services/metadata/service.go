// Package metadata fetches catalog records from TMDB and normalizes them into
// the models package shapes. When TMDB is not configured or a call fails the
// service answers with deterministic mock data instead of an error.
package metadata

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/singleflight"

	"freeflix/models"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidKind     = errors.New("invalid media kind")
)

// Categories accepted by ByCategory, per kind.
var categories = map[models.MediaKind][]string{
	models.KindFilm:   {"popular", "top_rated", "now_playing", "upcoming"},
	models.KindSeries: {"popular", "top_rated", "on_the_air", "airing_today"},
}

func validCategory(kind models.MediaKind, category string) bool {
	for _, c := range categories[kind] {
		if c == category {
			return true
		}
	}
	return false
}

// Config configures a Service.
type Config struct {
	APIKey            string
	Language          string
	CacheDir          string
	CacheTTLHours     int
	Demo              bool
	Timeout           time.Duration
	RequestsPerSecond int
	// Fs backs the cache; nil uses the OS filesystem.
	Fs afero.Fs
	// HTTPClient overrides the TMDB transport; nil builds one from Timeout.
	HTTPClient *http.Client
	// BaseURL overrides the TMDB API root (tests).
	BaseURL string
}

type Service struct {
	tmdb   *tmdbClient
	cache  *fileCache
	demo   bool
	flight singleflight.Group

	// fetchTimeout bounds a shared upstream fetch, which outlives any single caller.
	fetchTimeout time.Duration
}

func NewService(cfg Config) *Service {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: timeout}
	}
	ttl := cfg.CacheTTLHours
	if ttl <= 0 {
		ttl = 24
	}

	client := newTMDBClient(cfg.APIKey, cfg.Language, httpc, cfg.RequestsPerSecond)
	if cfg.BaseURL != "" {
		client.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	svc := &Service{
		tmdb:  client,
		cache: newFileCache(fs, filepath.Join(cfg.CacheDir, "metadata"), ttl),
		demo:  cfg.Demo,
	}
	// Room for the outbound rate limiter wait on top of the request itself.
	svc.fetchTimeout = 2 * timeout
	if svc.Demo() {
		log.Printf("[metadata] no TMDB key or demo mode enabled; serving mock data")
	}
	return svc
}

// Demo reports whether the service only serves mock data.
func (s *Service) Demo() bool {
	return s.demo || !s.tmdb.configured()
}

// ClearCache removes all cached responses.
func (s *Service) ClearCache() error {
	return s.cache.clear()
}

func cacheKey(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

// shared runs fetch once per key across concurrent callers. The fetch is
// detached from the caller that started it, so one disconnecting client does
// not fail the others waiting on the same key. A caller whose own ctx ends
// stops waiting and gets ctx.Err().
func (s *Service) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := s.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// cached is shared plus the file cache. fetch errors are returned untouched
// and never cached.
func cached[T any](ctx context.Context, s *Service, key string, fetch func(context.Context) (T, error)) (T, error) {
	var out T
	if ok, _ := s.cache.get(key, &out); ok {
		return out, nil
	}
	v, err := s.shared(ctx, key, func(ctx context.Context) (any, error) {
		res, err := fetch(ctx)
		if err != nil {
			return res, err
		}
		if err := s.cache.set(key, res); err != nil {
			log.Printf("[metadata] cache write failed: %v", err)
		}
		return res, nil
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}

// shouldFallBack reports whether err is a data failure that mock data can
// paper over. Only the caller's own cancellation is returned as an error.
func shouldFallBack(ctx context.Context) bool {
	return ctx.Err() == nil
}

// Trending returns the weekly trending films and series.
func (s *Service) Trending(ctx context.Context) ([]models.ContentSummary, error) {
	if s.Demo() {
		return demoTrending(), nil
	}
	items, err := cached(ctx, s, cacheKey("trending", "all", "week", s.tmdb.language),
		func(ctx context.Context) ([]models.ContentSummary, error) {
			page, err := s.tmdb.trending(ctx)
			if err != nil {
				return nil, err
			}
			return summariesFromPage(page, ""), nil
		})
	if err != nil {
		if !shouldFallBack(ctx) {
			return nil, err
		}
		log.Printf("[metadata] trending fetch failed, using mock data: %v", err)
		return demoTrending(), nil
	}
	return items, nil
}

// ByCategory returns a TMDB list (popular, top_rated, ...) for kind.
func (s *Service) ByCategory(ctx context.Context, kind models.MediaKind, category string) ([]models.ContentSummary, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if !validCategory(kind, category) {
		return nil, fmt.Errorf("%s/%s: %w", kind, category, ErrUnknownCategory)
	}
	if s.Demo() {
		return demoCategory(kind), nil
	}

	items, err := cached(ctx, s, cacheKey("list", string(kind), category, s.tmdb.language),
		func(ctx context.Context) ([]models.ContentSummary, error) {
			page, err := s.tmdb.list(ctx, kind.TMDBType(), category)
			if err != nil {
				return nil, err
			}
			return summariesFromPage(page, kind), nil
		})
	if err != nil {
		if !shouldFallBack(ctx) {
			return nil, err
		}
		log.Printf("[metadata] %s/%s fetch failed, using mock data: %v", kind, category, err)
		return demoCategory(kind), nil
	}
	return items, nil
}

// Detail returns the full record for a title, or nil when TMDB has no such
// title. Other failures fall back to a mock record.
func (s *Service) Detail(ctx context.Context, id int64, kind models.MediaKind) (*models.ContentDetail, error) {
	if id <= 0 || !kind.Valid() {
		return nil, nil
	}
	if s.Demo() {
		return demoDetail(id, kind), nil
	}

	detail, err := cached(ctx, s, cacheKey("detail", string(kind), strconv.FormatInt(id, 10), s.tmdb.language),
		func(ctx context.Context) (*models.ContentDetail, error) {
			raw, err := s.tmdb.details(ctx, kind.TMDBType(), id)
			if err != nil {
				return nil, err
			}
			return detailFromTMDB(raw, kind), nil
		})
	switch {
	case errors.Is(err, errTMDBNotFound):
		return nil, nil
	case err != nil:
		if !shouldFallBack(ctx) {
			return nil, err
		}
		log.Printf("[metadata] detail %s/%d fetch failed, using mock data: %v", kind, id, err)
		return demoDetail(id, kind), nil
	}
	return detail, nil
}

// Search queries films and series. Results without artwork are dropped.
// Search results are not cached.
func (s *Service) Search(ctx context.Context, query string) ([]models.ContentSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.ContentSummary{}, nil
	}
	if s.Demo() {
		return demoSearch(query), nil
	}

	v, err := s.shared(ctx, "search:"+query, func(ctx context.Context) (any, error) {
		return s.tmdb.searchMulti(ctx, query)
	})
	if err != nil {
		if !shouldFallBack(ctx) {
			return nil, err
		}
		log.Printf("[metadata] search %q failed, using mock data: %v", query, err)
		return demoSearch(query), nil
	}

	all := summariesFromPage(v.(*tmdbPage), "")
	out := make([]models.ContentSummary, 0, len(all))
	for _, item := range all {
		if item.HasArtwork() {
			out = append(out, item)
		}
	}
	return out, nil
}
