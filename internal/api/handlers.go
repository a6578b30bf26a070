package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vijay-prabhu/unimatch/internal/geo"
	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/university"
	"github.com/vijay-prabhu/unimatch/internal/validation"
)

// Catalog is what the handlers read universities from
type Catalog interface {
	match.Gateway
	Lookup(ctx context.Context, identifier string) (*university.University, error)
	Health(ctx context.Context) error
}

// Handler serves the API endpoints
type Handler struct {
	catalog  Catalog
	searcher *match.Searcher
	geocoder geo.Geocoder
	perPage  int
}

// NewHandler creates a Handler. geocoder may be nil.
func NewHandler(catalog Catalog, searcher *match.Searcher, geocoder geo.Geocoder, perPage int) *Handler {
	if perPage <= 0 {
		perPage = match.DefaultPerPage
	}
	return &Handler{catalog: catalog, searcher: searcher, geocoder: geocoder, perPage: perPage}
}

// SearchResponse is one page of results plus a summary of the whole set
type SearchResponse struct {
	match.Page
	Summary match.Summary `json:"summary"`
}

// UniversitiesResponse lists universities
type UniversitiesResponse struct {
	Universities []university.University `json:"universities"`
	Total        int                     `json:"total"`
}

// Health reports liveness, and the store's reachability for backends that have one
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Health(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Search runs a matching search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r.URL.Query())
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeValidationError(w, r, verr)
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.searcher.Search(r.Context(), params.Query())
	switch {
	case errors.Is(err, match.ErrInvalidQuery):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		// Details stay in the log; clients only learn the search is unavailable
		logging.Ctx(r.Context()).Error().Err(err).Msg("search request failed")
		writeError(w, r, http.StatusServiceUnavailable, "search failed")
		return
	}

	perPage := params.PerPage
	if perPage == 0 {
		perPage = h.perPage
	}

	writeJSON(w, r, http.StatusOK, SearchResponse{
		Page:    match.Paginate(results, params.Page, perPage),
		Summary: match.Summarize(results),
	})
}

// Universities lists universities, filtered like search results
func (h *Handler) Universities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := match.NewFilter(match.Filters{
		Region:         q.Get("region"),
		UniversityType: q.Get("universityType"),
		EstType:        q.Get("estType"),
	})
	name := strings.ToLower(strings.TrimSpace(q.Get("name")))

	all, err := h.catalog.FetchAllUniversities(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("university list failed")
		writeError(w, r, http.StatusServiceUnavailable, "universities unavailable")
		return
	}

	out := []university.University{}
	for i := range all {
		if !filter.UniversityMatches(&all[i]) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(all[i].Name), name) {
			continue
		}
		out = append(out, all[i])
	}

	writeJSON(w, r, http.StatusOK, UniversitiesResponse{Universities: out, Total: len(out)})
}

// University returns one university by ID or name
func (h *Handler) University(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.catalog.Lookup(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("id", id).Msg("university lookup failed")
		writeError(w, r, http.StatusServiceUnavailable, "universities unavailable")
		return
	}
	if u == nil {
		writeError(w, r, http.StatusNotFound, "university not found")
		return
	}

	if u.Position == nil && h.geocoder != nil {
		if pos, err := geo.Locate(r.Context(), h.geocoder, u); err == nil {
			u.Position = &pos
		}
	}

	writeJSON(w, r, http.StatusOK, u)
}

// Regions lists the region codes accepted by the region filter
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, university.Regions)
}
