package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	tmdbBaseURL          = "https://api.themoviedb.org/3"
	defaultTMDBRateLimit = 40
)

// errTMDBNotFound is returned for a 404 from TMDB.
var errTMDBNotFound = errors.New("tmdb: not found")

type tmdbHTTPError struct {
	Status int
	Path   string
	Body   string
}

func (e *tmdbHTTPError) Error() string {
	return fmt.Sprintf("tmdb %s: status %d: %s", e.Path, e.Status, e.Body)
}

type tmdbResult struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	MediaType    string  `json:"media_type"`
	GenreIDs     []int64 `json:"genre_ids"`
}

type tmdbPage struct {
	Page         int          `json:"page"`
	Results      []tmdbResult `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type tmdbGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tmdbCast struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type tmdbSeason struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SeasonNumber int    `json:"season_number"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
	PosterPath   string `json:"poster_path"`
}

type tmdbDetail struct {
	tmdbResult
	Genres         []tmdbGenre `json:"genres"`
	Runtime        *int        `json:"runtime"`
	EpisodeRunTime []int       `json:"episode_run_time"`
	Credits        struct {
		Cast []tmdbCast `json:"cast"`
	} `json:"credits"`
	Similar tmdbPage     `json:"similar"`
	Seasons []tmdbSeason `json:"seasons"`
}

type tmdbClient struct {
	apiKey   string
	language string
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
}

func newTMDBClient(apiKey, lang string, httpc *http.Client, requestsPerSecond int) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultTMDBRateLimit
	}
	return &tmdbClient{
		apiKey:   strings.TrimSpace(apiKey),
		language: normalizeLanguage(lang),
		baseURL:  tmdbBaseURL,
		http:     httpc,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

func (c *tmdbClient) configured() bool {
	return c != nil && c.apiKey != ""
}

// normalizeLanguage turns loose tags ("en", "pt_br") into TMDB's
// language-REGION form ("en-US", "pt-BR").
func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return "en-US"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "en-US"
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	return base.String() + "-" + region.String()
}

func (c *tmdbClient) trending(ctx context.Context) (*tmdbPage, error) {
	var page tmdbPage
	if err := c.get(ctx, "/trending/all/week", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *tmdbClient) list(ctx context.Context, mediaType, category string) (*tmdbPage, error) {
	var page tmdbPage
	if err := c.get(ctx, "/"+mediaType+"/"+category, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *tmdbClient) details(ctx context.Context, mediaType string, id int64) (*tmdbDetail, error) {
	var detail tmdbDetail
	params := url.Values{"append_to_response": {"credits,similar,videos"}}
	if err := c.get(ctx, "/"+mediaType+"/"+strconv.FormatInt(id, 10), params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *tmdbClient) searchMulti(ctx context.Context, query string) (*tmdbPage, error) {
	var page tmdbPage
	params := url.Values{"query": {query}, "include_adult": {"false"}}
	if err := c.get(ctx, "/search/multi", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *tmdbClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.configured() {
		return errors.New("tmdb api key not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	endpoint := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errTMDBNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &tmdbHTTPError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb %s: decode: %w", path, err)
	}
	return nil
}
