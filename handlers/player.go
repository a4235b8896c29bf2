package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"freeflix/models"
	playbacksvc "freeflix/services/playback"
	"freeflix/services/streaming"
)

type playbackService interface {
	Open(ctx context.Context, req playbacksvc.OpenRequest) (models.PlaybackSession, error)
	Get(id string) (models.PlaybackSession, error)
	SelectSeason(id string, season int) (models.PlaybackSession, error)
	SelectEpisode(id string, episode int) (models.PlaybackSession, error)
	Next(id string) (models.PlaybackSession, error)
	Prev(id string) (models.PlaybackSession, error)
	SelectSource(id, sourceID string) (models.PlaybackSession, error)
	Close(id string) error
}

var _ playbackService = (*playbacksvc.Service)(nil)

// PlayerHandler exposes playback sessions: the season/episode/source
// selection behind a player, with its resolved embed URL.
type PlayerHandler struct {
	Service playbackService
}

func NewPlayerHandler(s playbackService) *PlayerHandler {
	return &PlayerHandler{Service: s}
}

type openSessionRequest struct {
	SessionID string `json:"sessionId"`
	KeepState bool   `json:"keepState"`
	SourceID  string `json:"sourceId"`
}

type selectRequest struct {
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
	SourceID string `json:"sourceId"`
}

// decodeOptional decodes a JSON body into v. An empty body is accepted.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeSessionError maps playback errors to HTTP status codes.
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playbacksvc.ErrContentNotFound), errors.Is(err, playbacksvc.ErrInvalidContentID):
		notFound(w)
	case errors.Is(err, playbacksvc.ErrSessionNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, playbacksvc.ErrEpisodeOutOfRange), errors.Is(err, playbacksvc.ErrNotSeries):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, streaming.ErrUnknownSource):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("[player] unexpected error: %v", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

// Open starts a session for /api/player/{kind}/{id}/sessions, or re-targets
// the session named in the body.
func (h *PlayerHandler) Open(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := contentRoute(r)
	if !ok {
		notFound(w)
		return
	}
	var body openSessionRequest
	if err := decodeOptional(r, &body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Service.Open(r.Context(), playbacksvc.OpenRequest{
		Kind:      kind,
		ContentID: id,
		SessionID: body.SessionID,
		KeepState: body.KeepState,
		SourceID:  body.SourceID,
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.Service.Get(mux.Vars(r)["sessionID"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *PlayerHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Close(mux.Vars(r)["sessionID"]); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Action applies /api/player/sessions/{sessionID}/{action}. On a rejected
// change the body carries the error and the state is left as it was.
func (h *PlayerHandler) Action(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionID"]
	action := strings.ToLower(vars["action"])

	var body selectRequest
	if err := decodeOptional(r, &body); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		session models.PlaybackSession
		err     error
	)
	switch action {
	case "season":
		session, err = h.Service.SelectSeason(sessionID, body.Season)
	case "episode":
		session, err = h.Service.SelectEpisode(sessionID, body.Episode)
	case "next":
		session, err = h.Service.Next(sessionID)
	case "prev":
		session, err = h.Service.Prev(sessionID)
	case "source":
		session, err = h.Service.SelectSource(sessionID, body.SourceID)
	default:
		jsonError(w, "unknown action", http.StatusNotFound)
		return
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
