package handlers

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"freeflix/models"
	"freeflix/services/search"
)

type searchService interface {
	Search(ctx context.Context, query string) ([]models.ContentSummary, error)
}

type originPolicy interface {
	Allowed(origin string) bool
}

// LiveSearchHandler streams search-as-you-type results over a websocket.
// Every client message restarts the debounce window; only the result for the
// last query in a burst is sent back.
type LiveSearchHandler struct {
	Service searchService
	Delay   time.Duration
	// Origins admits cross-origin clients with the same rules as the CORS
	// middleware. Nil accepts same-origin clients only.
	Origins originPolicy
}

func NewLiveSearchHandler(s searchService, delay time.Duration) *LiveSearchHandler {
	return &LiveSearchHandler{Service: s, Delay: delay}
}

type liveSearchRequest struct {
	Query string `json:"query"`
}

type liveSearchResponse struct {
	Query   string                  `json:"query"`
	Results []models.ContentSummary `json:"results"`
	Error   string                  `json:"error,omitempty"`
}

func (h *LiveSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	opts := &websocket.AcceptOptions{}
	if h.Origins != nil {
		origin := r.Header.Get("Origin")
		if origin != "" && !sameHost(origin, r.Host) && !h.Origins.Allowed(origin) {
			log.Printf("[live-search] rejected origin %q", origin)
			jsonError(w, "origin not allowed", http.StatusForbidden)
			return
		}
		opts.InsecureSkipVerify = true
	}

	c, err := websocket.Accept(w, r, opts)
	if err != nil {
		log.Printf("[live-search] accept failed: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	deliver := func(query string, results []models.ContentSummary, err error) {
		msg := liveSearchResponse{Query: query, Results: results}
		if err != nil {
			msg.Results = []models.ContentSummary{}
			msg.Error = err.Error()
		}
		if msg.Results == nil {
			msg.Results = []models.ContentSummary{}
		}
		if werr := wsjson.Write(ctx, c, msg); werr != nil {
			log.Printf("[live-search] write failed: %v", werr)
			cancel()
		}
	}
	debouncer := search.NewDebouncer[[]models.ContentSummary](ctx, h.Delay, h.Service.Search, deliver)
	defer debouncer.Stop()

	for {
		var req liveSearchRequest
		if err := wsjson.Read(ctx, c, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				c.Close(websocket.StatusNormalClosure, "")
			default:
				if ctx.Err() == nil {
					log.Printf("[live-search] read failed: %v", err)
				}
				c.Close(websocket.StatusInternalError, "search stream closed")
			}
			return
		}
		debouncer.Trigger(req.Query)
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, host)
}
