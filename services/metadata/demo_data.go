package metadata

import (
	"fmt"
	"strings"

	"freeflix/models"
)

// Artwork used for mock records, which carry no TMDB image paths.
var demoImages = []string{
	"https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?q=80&w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1536440136628-849c177e76a1?q=80&w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1598899134739-24c46f58b8c0?q=80&w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1574375927938-d5a98e8efe85?q=80&w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1616530940355-351fabd9524b?q=80&w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1512149177596-f817c7ef5d4c?q=80&w=800&auto=format&fit=crop",
}

const demoOverview = "In a world where artificial intelligence rules, one hero rises to challenge the system. " +
	"Experience the thrill, the drama, and the spectacular visuals in this critically acclaimed masterpiece."

const (
	demoFirstID  = 100
	demoRowCount = 10
)

// generateDemo builds count deterministic records of the given kind.
func generateDemo(count int, kind models.MediaKind) []models.ContentSummary {
	out := make([]models.ContentSummary, 0, count)
	for i := 0; i < count; i++ {
		item := models.ContentSummary{
			ID:            int64(demoFirstID + i),
			Overview:      demoOverview,
			RatingAverage: 7 + float64((i*37)%200)/100,
			PosterURL:     demoImages[i%len(demoImages)],
			BackdropURL:   demoImages[(i+1)%len(demoImages)],
			Kind:          kind,
		}
		if kind == models.KindSeries {
			item.DisplayName = fmt.Sprintf("Awesome Series %d", i+1)
			item.PrimaryDate = "2023-09-01"
		} else {
			item.DisplayName = fmt.Sprintf("Epic Movie Title %d", i+1)
			item.PrimaryDate = "2023-11-15"
		}
		out = append(out, item)
	}
	return out
}

func demoTrending() []models.ContentSummary {
	return generateDemo(demoRowCount, models.KindFilm)
}

// demoCategory mirrors the live API shape: every film category serves the
// same mock row, as does every series category.
func demoCategory(kind models.MediaKind) []models.ContentSummary {
	return generateDemo(demoRowCount, kind)
}

// demoSearch filters mock trending titles by a folded substring match.
func demoSearch(query string) []models.ContentSummary {
	needle := foldText(query)
	if needle == "" {
		return []models.ContentSummary{}
	}
	out := []models.ContentSummary{}
	for _, item := range demoTrending() {
		if strings.Contains(foldText(item.DisplayName), needle) {
			out = append(out, item)
		}
	}
	return out
}

func demoDetail(id int64, kind models.MediaKind) *models.ContentDetail {
	base := demoTrending()[0]
	base.ID = id
	base.Kind = kind
	if kind == models.KindSeries {
		base.DisplayName = "Mock Series"
		base.PrimaryDate = "2023-09-01"
	} else {
		base.DisplayName = "Mockbuster Movie"
	}

	runtime := 124
	detail := &models.ContentDetail{
		ContentSummary: base,
		Genres:         []models.Genre{{ID: 1, Name: "Action"}, {ID: 2, Name: "Sci-Fi"}},
		RuntimeMinutes: &runtime,
		Cast: []models.CastMember{
			{ID: 1, Name: "John Doe", Role: "The Hero"},
			{ID: 2, Name: "Jane Smith", Role: "The Villain"},
		},
		Similar: generateDemo(5, kind),
	}
	if kind == models.KindSeries {
		detail.Seasons = []models.Season{
			{Number: 1, EpisodeCount: 8, Name: "Season 1"},
			{Number: 2, EpisodeCount: 10, Name: "Season 2"},
		}
	}
	return detail
}
