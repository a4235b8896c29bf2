package playback

import (
	"errors"
	"testing"

	"freeflix/models"
)

func twoSeasons() []models.Season {
	return []models.Season{
		{Number: 1, EpisodeCount: 8},
		{Number: 2, EpisodeCount: 10},
	}
}

func assertPosition(t *testing.T, n *Navigator, season, episode int) {
	t.Helper()
	if n.Season() != season || n.Episode() != episode {
		t.Fatalf("position = S%dE%d, want S%dE%d", n.Season(), n.Episode(), season, episode)
	}
}

func TestNewNavigator_FilmIsIdle(t *testing.T) {
	n := NewNavigator(models.KindFilm, twoSeasons())
	if n.Phase() != models.PhaseIdle {
		t.Fatalf("phase = %s, want idle", n.Phase())
	}
	assertPosition(t, n, 0, 0)
	if err := n.SelectSeason(2); !errors.Is(err, ErrNotSeries) {
		t.Fatalf("SelectSeason on film: err = %v", err)
	}
	if err := n.SelectEpisode(1); !errors.Is(err, ErrNotSeries) {
		t.Fatalf("SelectEpisode on film: err = %v", err)
	}
	if n.NextEpisode() || n.PrevEpisode() {
		t.Fatal("next/prev must be no-ops for films")
	}
}

func TestNewNavigator_SeriesStartsAtS1E1(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	assertPosition(t, n, 1, 1)
	if n.Phase() != models.PhaseSeasonSelected {
		t.Fatalf("phase = %s, want season_selected", n.Phase())
	}
}

func TestNewNavigator_NoSeasonsFallsBackToSeasonOne(t *testing.T) {
	n := NewNavigator(models.KindSeries, nil)
	assertPosition(t, n, 1, 1)
	if got := n.Seasons(); len(got) != 1 || got[0].Number != 1 {
		t.Fatalf("seasons = %+v, want fallback season 1", got)
	}
	if n.NextEpisode() {
		t.Fatal("fallback season has a single episode")
	}
}

func TestNewNavigator_StartsAtFirstKnownSeasonWhenOneMissing(t *testing.T) {
	n := NewNavigator(models.KindSeries, []models.Season{
		{Number: 0, EpisodeCount: 3}, // specials are dropped
		{Number: 4, EpisodeCount: 6},
		{Number: 3, EpisodeCount: 5},
	})
	assertPosition(t, n, 3, 1)
}

func TestSelectSeason_ResetsEpisode(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	if err := n.SelectEpisode(6); err != nil {
		t.Fatalf("SelectEpisode: %v", err)
	}
	if err := n.SelectSeason(2); err != nil {
		t.Fatalf("SelectSeason: %v", err)
	}
	assertPosition(t, n, 2, 1)
	if n.Phase() != models.PhaseSeasonSelected {
		t.Fatalf("phase = %s", n.Phase())
	}
}

func TestSelectSeason_UnknownClampsToNearest(t *testing.T) {
	n := NewNavigator(models.KindSeries, []models.Season{
		{Number: 1, EpisodeCount: 4},
		{Number: 3, EpisodeCount: 4},
		{Number: 7, EpisodeCount: 4},
	})
	cases := map[int]int{-5: 1, 0: 1, 2: 1, 4: 3, 5: 3, 6: 7, 99: 7}
	for req, want := range cases {
		if err := n.SelectSeason(req); err != nil {
			t.Fatalf("SelectSeason(%d): %v", req, err)
		}
		if n.Season() != want {
			t.Errorf("SelectSeason(%d) -> %d, want %d", req, n.Season(), want)
		}
	}
}

func TestSelectEpisode_RejectsOutOfRange(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	if err := n.SelectEpisode(3); err != nil {
		t.Fatalf("SelectEpisode(3): %v", err)
	}
	for _, bad := range []int{0, -1, 9} {
		if err := n.SelectEpisode(bad); !errors.Is(err, ErrEpisodeOutOfRange) {
			t.Fatalf("SelectEpisode(%d): err = %v, want ErrEpisodeOutOfRange", bad, err)
		}
		assertPosition(t, n, 1, 3)
	}
	if err := n.SelectEpisode(8); err != nil {
		t.Fatalf("SelectEpisode(8): %v", err)
	}
	assertPosition(t, n, 1, 8)
}

func TestNextEpisode_SingleSeasonStopsAtLast(t *testing.T) {
	n := NewNavigator(models.KindSeries, []models.Season{{Number: 1, EpisodeCount: 8}})
	for i := 0; i < 7; i++ {
		if !n.NextEpisode() {
			t.Fatalf("NextEpisode #%d returned false", i+1)
		}
	}
	assertPosition(t, n, 1, 8)
	if n.NextEpisode() {
		t.Fatal("NextEpisode past the last episode must be a no-op")
	}
	assertPosition(t, n, 1, 8)
}

func TestNextEpisode_CrossesSeasonBoundary(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	if err := n.SelectEpisode(8); err != nil {
		t.Fatalf("SelectEpisode: %v", err)
	}
	if !n.NextEpisode() {
		t.Fatal("expected rollover into season 2")
	}
	assertPosition(t, n, 2, 1)
}

func TestNextEpisode_SkipsMissingSeasonNumbers(t *testing.T) {
	n := NewNavigator(models.KindSeries, []models.Season{
		{Number: 1, EpisodeCount: 1},
		{Number: 3, EpisodeCount: 2},
	})
	n.NextEpisode()
	assertPosition(t, n, 3, 1)
	n.PrevEpisode()
	assertPosition(t, n, 1, 1)
}

func TestPrevEpisode_CrossesSeasonBoundaryAndStopsAtFirst(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	if n.PrevEpisode() {
		t.Fatal("PrevEpisode at S1E1 must be a no-op")
	}
	assertPosition(t, n, 1, 1)

	if err := n.SelectSeason(2); err != nil {
		t.Fatalf("SelectSeason: %v", err)
	}
	if !n.PrevEpisode() {
		t.Fatal("expected rollback into season 1")
	}
	assertPosition(t, n, 1, 8)
	if n.Phase() != models.PhaseEpisodeSelected {
		t.Fatalf("phase = %s", n.Phase())
	}
}

func TestRestore(t *testing.T) {
	n := NewNavigator(models.KindSeries, twoSeasons())
	if !n.Restore(2, 10) {
		t.Fatal("Restore(2,10) should succeed")
	}
	assertPosition(t, n, 2, 10)
	if n.Restore(3, 1) || n.Restore(1, 9) {
		t.Fatal("Restore must reject invalid positions")
	}
	assertPosition(t, n, 2, 10)
}
