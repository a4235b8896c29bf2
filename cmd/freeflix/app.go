package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"freeflix/api"
	"freeflix/config"
	"freeflix/handlers"
	"freeflix/services/catalog"
	"freeflix/services/metadata"
	"freeflix/services/playback"
	"freeflix/utils"
)

// app owns the long-lived services behind the HTTP handler.
type app struct {
	router   *mux.Router
	metadata *metadata.Service
	playback *playback.Service
	limiter  *api.ClientRateLimiter
}

func newApp(s config.Settings, fs afero.Fs) *app {
	meta := metadata.NewService(metadata.Config{
		APIKey:            s.Metadata.TMDBAPIKey,
		Language:          s.Metadata.Language,
		CacheDir:          s.Metadata.CacheDir,
		CacheTTLHours:     s.Metadata.CacheTTLHours,
		Demo:              s.Metadata.Demo,
		Timeout:           s.Metadata.Timeout(),
		RequestsPerSecond: s.Metadata.RequestsPerSec,
		Fs:                fs,
	})
	a := &app{
		metadata: meta,
		playback: playback.NewService(meta, s.Player.DefaultSource, s.Player.SessionTTL()),
		limiter:  api.NewClientRateLimiter(s.RateLimit.RequestsPerSecond, s.RateLimit.Burst),
	}
	cat := catalog.NewService(meta, s.Search.MinQueryLength)

	origins := utils.NewOriginPolicy(s.Server.AllowedOrigins)
	r := utils.NewRouter(origins)
	r.Use(api.RequestLogger())

	version := handlers.NewVersionHandler()
	pages := handlers.NewPlayerPageHandler(a.playback)
	r.Handle("/player/{kind}/{id}", pages).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(a.limiter.Middleware())

	catalogHandler := handlers.NewCatalogHandler(cat)
	apiRouter.HandleFunc("/home", catalogHandler.Home).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/movies", catalogHandler.Movies).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/latest", catalogHandler.Latest).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/series", catalogHandler.Series).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/search", catalogHandler.Search).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/details/{kind}/{id}", catalogHandler.Details).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/sources", catalogHandler.Sources).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/version", version.GetVersion).Methods(http.MethodGet, http.MethodOptions)

	live := handlers.NewLiveSearchHandler(cat, s.Search.Debounce())
	live.Origins = origins
	apiRouter.Handle("/search/live", live).Methods(http.MethodGet)

	player := handlers.NewPlayerHandler(a.playback)
	apiRouter.HandleFunc("/player/sessions/{sessionID}", player.Get).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/player/sessions/{sessionID}", player.Close).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/player/sessions/{sessionID}/{action}", player.Action).Methods(http.MethodPost, http.MethodOptions)
	apiRouter.HandleFunc("/player/{kind}/{id}/sessions", player.Open).Methods(http.MethodPost, http.MethodOptions)

	a.router = r
	return a
}

func (a *app) Handler() http.Handler {
	return a.router
}

// Close stops the background loops of the session store and rate limiter.
func (a *app) Close() {
	a.playback.Shutdown()
	a.limiter.Close()
}
