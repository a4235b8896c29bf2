package handlers

import (
	"context"
	"log"
	"net/http"

	"freeflix/api"
	"freeflix/models"
	"freeflix/services/catalog"
	"freeflix/services/streaming"
)

type catalogService interface {
	Home(ctx context.Context) (models.HomePage, error)
	Browse(ctx context.Context, kind models.MediaKind) (models.BrowsePage, error)
	Search(ctx context.Context, query string) ([]models.ContentSummary, error)
	Detail(ctx context.Context, kind models.MediaKind, id int64) (*models.ContentDetail, error)
}

var _ catalogService = (*catalog.Service)(nil)

// CatalogHandler serves the browse-facing JSON routes.
type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// SearchResponse wraps search results with the query that produced them.
type SearchResponse struct {
	Query   string                  `json:"query"`
	Results []models.ContentSummary `json:"results"`
}

func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.Home(r.Context())
	if err != nil {
		log.Printf("[catalog] %s home failed: %v", api.RequestID(r.Context()), err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) Movies(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, models.KindFilm)
}

// Latest is an alias of Movies.
func (h *CatalogHandler) Latest(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, models.KindFilm)
}

func (h *CatalogHandler) Series(w http.ResponseWriter, r *http.Request) {
	h.browse(w, r, models.KindSeries)
}

func (h *CatalogHandler) browse(w http.ResponseWriter, r *http.Request, kind models.MediaKind) {
	page, err := h.Service.Browse(r.Context(), kind)
	if err != nil {
		log.Printf("[catalog] %s browse %s failed: %v", api.RequestID(r.Context()), kind, err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results, err := h.Service.Search(r.Context(), query)
	if err != nil {
		log.Printf("[catalog] %s search %q failed: %v", api.RequestID(r.Context()), query, err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Results: results})
}

func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := contentRoute(r)
	if !ok {
		notFound(w)
		return
	}
	detail, err := h.Service.Detail(r.Context(), kind, id)
	if err != nil {
		log.Printf("[catalog] %s detail %s/%d failed: %v", api.RequestID(r.Context()), kind, id, err)
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if detail == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Sources lists the embed providers in display order.
func (h *CatalogHandler) Sources(w http.ResponseWriter, r *http.Request) {
	sources := streaming.Sources()
	out := make([]models.SourceInfo, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Info())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": streaming.Default().ID,
		"sources": out,
	})
}
