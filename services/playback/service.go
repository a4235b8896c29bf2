// Package playback keeps the per-viewer player state: which title is open,
// which embed source is selected, and where the viewer is within a series.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"freeflix/models"
	"freeflix/services/streaming"
)

var (
	ErrSessionNotFound  = errors.New("playback session not found")
	ErrContentNotFound  = errors.New("content not found")
	ErrInvalidContentID = errors.New("invalid content id")
)

// DefaultSessionTTL is how long an untouched session is kept.
const DefaultSessionTTL = 6 * time.Hour

// detailFetcher loads the record a player needs (title and seasons).
type detailFetcher interface {
	Detail(ctx context.Context, id int64, kind models.MediaKind) (*models.ContentDetail, error)
}

type entry struct {
	session models.PlaybackSession
	nav     *Navigator
}

// Service manages playback sessions in memory.
type Service struct {
	mu            sync.RWMutex
	sessions      map[string]*entry
	details       detailFetcher
	defaultSource string
	ttl           time.Duration
	now           func() time.Time
	stop          chan struct{}
	stopOnce      sync.Once
}

// NewService creates a playback service. defaultSource falls back to the
// first catalog entry when empty or unknown.
func NewService(details detailFetcher, defaultSource string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	svc := &Service{
		sessions:      make(map[string]*entry),
		details:       details,
		defaultSource: streaming.LookupOrDefault(defaultSource).ID,
		ttl:           ttl,
		now:           time.Now,
		stop:          make(chan struct{}),
	}
	go svc.cleanupLoop()
	return svc
}

// OpenRequest describes a navigation to the player.
type OpenRequest struct {
	Kind      models.MediaKind
	ContentID int64
	// SessionID reuses an existing session when set.
	SessionID string
	// KeepState carries the source and position over to a different title.
	KeepState bool
	// SourceID overrides the source; empty keeps the current/default one.
	SourceID string
}

// Open starts or re-targets a playback session. Opening the same title on an
// existing session keeps its state; a different title resets it unless
// KeepState is set.
func (s *Service) Open(ctx context.Context, req OpenRequest) (models.PlaybackSession, error) {
	if req.ContentID <= 0 {
		return models.PlaybackSession{}, ErrInvalidContentID
	}
	if !req.Kind.Valid() {
		return models.PlaybackSession{}, ErrContentNotFound
	}
	if req.SourceID != "" {
		if _, ok := streaming.Lookup(req.SourceID); !ok {
			return models.PlaybackSession{}, fmt.Errorf("open session: %w", streaming.ErrUnknownSource)
		}
	}

	detail, err := s.details.Detail(ctx, req.ContentID, req.Kind)
	if err != nil {
		return models.PlaybackSession{}, fmt.Errorf("load %s %d: %w", req.Kind, req.ContentID, err)
	}
	if detail == nil {
		return models.PlaybackSession{}, ErrContentNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	id := strings.TrimSpace(req.SessionID)
	existing, ok := s.sessions[id]
	if ok && existing.session.IsIdle(s.ttl, now) {
		delete(s.sessions, id)
		ok = false
	}
	if ok && id != "" {
		sel := existing.session.Selection
		if sel.ContentID == req.ContentID && sel.Kind == req.Kind {
			if req.SourceID != "" {
				existing.session.Selection.SourceID = streaming.LookupOrDefault(req.SourceID).ID
			}
			existing.session.LastSeen = now
			return s.refreshLocked(existing), nil
		}

		next := s.newEntry(id, detail, req.Kind, now)
		next.session.CreatedAt = existing.session.CreatedAt
		if req.KeepState {
			next.session.Selection.SourceID = sel.SourceID
			if sel.Season > 0 && !next.nav.Restore(sel.Season, sel.Episode) {
				_ = next.nav.SelectSeason(sel.Season)
			}
		}
		if req.SourceID != "" {
			next.session.Selection.SourceID = streaming.LookupOrDefault(req.SourceID).ID
		}
		s.sessions[id] = next
		log.Printf("[playback] session %s moved to %s %d (keepState=%v)", id, req.Kind, req.ContentID, req.KeepState)
		return s.refreshLocked(next), nil
	}

	e := s.newEntry(uuid.NewString(), detail, req.Kind, now)
	if req.SourceID != "" {
		e.session.Selection.SourceID = streaming.LookupOrDefault(req.SourceID).ID
	}
	s.sessions[e.session.ID] = e
	log.Printf("[playback] opened session %s for %s %d", e.session.ID, req.Kind, req.ContentID)
	return s.refreshLocked(e), nil
}

func (s *Service) newEntry(id string, detail *models.ContentDetail, kind models.MediaKind, now time.Time) *entry {
	var seasons []models.Season
	if kind == models.KindSeries {
		seasons = detail.PlayableSeasons()
	}
	nav := NewNavigator(kind, seasons)
	return &entry{
		nav: nav,
		session: models.PlaybackSession{
			ID:    id,
			Title: detail.DisplayName,
			Selection: models.PlaybackSelection{
				ContentID: detail.ID,
				Kind:      kind,
				SourceID:  s.defaultSource,
			},
			Seasons:   nav.Seasons(),
			CreatedAt: now,
			LastSeen:  now,
		},
	}
}

// refreshLocked copies the navigator position into the session and
// recomputes the embed URL. Must be called with mu held.
func (s *Service) refreshLocked(e *entry) models.PlaybackSession {
	sel := &e.session.Selection
	sel.Season = e.nav.Season()
	sel.Episode = e.nav.Episode()
	sel.Phase = e.nav.Phase()
	src := streaming.LookupOrDefault(sel.SourceID)
	sel.SourceID = src.ID
	e.session.EmbedURL = streaming.Resolve(src, sel.ContentID, sel.Kind, e.nav.Season(), e.nav.Episode())
	return cloneSession(e.session)
}

func cloneSession(in models.PlaybackSession) models.PlaybackSession {
	out := in
	if in.Seasons != nil {
		out.Seasons = make([]models.Season, len(in.Seasons))
		copy(out.Seasons, in.Seasons)
	}
	return out
}

// Get returns a session and marks it as seen.
func (s *Service) Get(id string) (models.PlaybackSession, error) {
	return s.mutate(id, func(*entry) error { return nil })
}

// SelectSeason moves the session to a season (clamped to a known one).
func (s *Service) SelectSeason(id string, season int) (models.PlaybackSession, error) {
	return s.mutate(id, func(e *entry) error { return e.nav.SelectSeason(season) })
}

// SelectEpisode moves the session to an episode of the current season.
func (s *Service) SelectEpisode(id string, episode int) (models.PlaybackSession, error) {
	return s.mutate(id, func(e *entry) error { return e.nav.SelectEpisode(episode) })
}

// Next advances one episode. At the last episode the session is unchanged.
func (s *Service) Next(id string) (models.PlaybackSession, error) {
	return s.mutate(id, func(e *entry) error {
		if e.session.Selection.Kind != models.KindSeries {
			return ErrNotSeries
		}
		e.nav.NextEpisode()
		return nil
	})
}

// Prev goes back one episode. At the first episode the session is unchanged.
func (s *Service) Prev(id string) (models.PlaybackSession, error) {
	return s.mutate(id, func(e *entry) error {
		if e.session.Selection.Kind != models.KindSeries {
			return ErrNotSeries
		}
		e.nav.PrevEpisode()
		return nil
	})
}

// SelectSource switches the embed provider. Switching is always manual.
func (s *Service) SelectSource(id, sourceID string) (models.PlaybackSession, error) {
	return s.mutate(id, func(e *entry) error {
		src, ok := streaming.Lookup(sourceID)
		if !ok {
			return fmt.Errorf("select source %q: %w", sourceID, streaming.ErrUnknownSource)
		}
		e.session.Selection.SourceID = src.ID
		return nil
	})
}

func (s *Service) mutate(id string, fn func(*entry) error) (models.PlaybackSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return models.PlaybackSession{}, ErrSessionNotFound
	}
	now := s.now().UTC()
	if e.session.IsIdle(s.ttl, now) {
		delete(s.sessions, id)
		return models.PlaybackSession{}, ErrSessionNotFound
	}
	if err := fn(e); err != nil {
		return s.refreshLocked(e), err
	}
	e.session.LastSeen = now
	return s.refreshLocked(e), nil
}

// Close removes a session.
func (s *Service) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup removes idle sessions and returns how many were dropped.
func (s *Service) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	count := 0
	for id, e := range s.sessions {
		if e.session.IsIdle(s.ttl, now) {
			delete(s.sessions, id)
			count++
		}
	}
	return count
}

// Shutdown stops the background cleanup loop.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Service) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				log.Printf("[playback] evicted %d idle sessions", n)
			}
		}
	}
}
