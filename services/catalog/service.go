// Package catalog composes the browse-facing pages (home rows, movie and
// series listings, search) on top of the metadata service.
package catalog

//go:generate mockgen -source=service.go -destination=mock_metadata_test.go -package=catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"freeflix/models"
	"freeflix/services/metadata"
)

// DefaultMinQueryLength is the shortest trimmed query that reaches the
// metadata backend.
const DefaultMinQueryLength = 2

type metadataSource interface {
	Trending(ctx context.Context) ([]models.ContentSummary, error)
	ByCategory(ctx context.Context, kind models.MediaKind, category string) ([]models.ContentSummary, error)
	Detail(ctx context.Context, id int64, kind models.MediaKind) (*models.ContentDetail, error)
	Search(ctx context.Context, query string) ([]models.ContentSummary, error)
}

var _ metadataSource = (*metadata.Service)(nil)

type Service struct {
	meta           metadataSource
	minQueryLength int
	// pickHero returns an index in [0, n).
	pickHero func(n int) int
}

func NewService(meta metadataSource, minQueryLength int) *Service {
	if minQueryLength <= 0 {
		minQueryLength = DefaultMinQueryLength
	}
	return &Service{
		meta:           meta,
		minQueryLength: minQueryLength,
		pickHero:       rand.IntN,
	}
}

// Home fetches the four home rows in parallel and picks a random trending
// title as the hero.
func (s *Service) Home(ctx context.Context) (models.HomePage, error) {
	var trending, topRated, nowPlaying, popularSeries []models.ContentSummary

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		trending, err = s.meta.Trending(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		topRated, err = s.meta.ByCategory(ctx, models.KindFilm, "top_rated")
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		nowPlaying, err = s.meta.ByCategory(ctx, models.KindFilm, "now_playing")
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		popularSeries, err = s.meta.ByCategory(ctx, models.KindSeries, "popular")
		return err
	})
	if err := p.Wait(); err != nil {
		return models.HomePage{}, fmt.Errorf("compose home: %w", err)
	}

	page := models.HomePage{
		Rows: []models.ContentRow{
			{Title: "Trending Now", LinkPath: "/latest", Items: nonNil(trending)},
			{Title: "Top Rated Movies", LinkPath: "/movies", Large: true, Items: nonNil(topRated)},
			{Title: "Popular Series", LinkPath: "/series", Items: nonNil(popularSeries)},
			{Title: "New Releases", LinkPath: "/movies", Items: nonNil(nowPlaying)},
		},
	}
	if len(trending) > 0 {
		hero := trending[s.pickHero(len(trending))]
		page.Hero = &hero
	}
	return page, nil
}

// Browse merges the popular and top rated lists for kind. Titles present in
// both keep their first (popular) position.
func (s *Service) Browse(ctx context.Context, kind models.MediaKind) (models.BrowsePage, error) {
	if !kind.Valid() {
		return models.BrowsePage{}, metadata.ErrInvalidKind
	}

	var popular, topRated []models.ContentSummary
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		popular, err = s.meta.ByCategory(ctx, kind, "popular")
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		topRated, err = s.meta.ByCategory(ctx, kind, "top_rated")
		return err
	})
	if err := p.Wait(); err != nil {
		return models.BrowsePage{}, fmt.Errorf("browse %s: %w", kind, err)
	}

	merged := lo.UniqBy(append(append([]models.ContentSummary{}, popular...), topRated...),
		func(item models.ContentSummary) int64 { return item.ID })
	merged = lo.Map(merged, func(item models.ContentSummary, _ int) models.ContentSummary {
		item.Kind = kind
		return item
	})

	return models.BrowsePage{Kind: kind, Title: browseTitle(kind), Items: merged}, nil
}

func browseTitle(kind models.MediaKind) string {
	if kind == models.KindSeries {
		return "TV Series"
	}
	return "Movies"
}

// Search forwards query to the metadata backend once it is long enough.
func (s *Service) Search(ctx context.Context, query string) ([]models.ContentSummary, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < s.minQueryLength {
		return []models.ContentSummary{}, nil
	}
	results, err := s.meta.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return nonNil(results), nil
}

// Detail returns the full record for a title, or nil when it does not exist.
func (s *Service) Detail(ctx context.Context, kind models.MediaKind, id int64) (*models.ContentDetail, error) {
	return s.meta.Detail(ctx, id, kind)
}

func nonNil(items []models.ContentSummary) []models.ContentSummary {
	if items == nil {
		return []models.ContentSummary{}
	}
	return items
}
