package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/search"
)

// SearchAPI is the HTTP surface of the search relay.
type SearchAPI struct {
	svc     *search.Service
	probe   ReadyProbe
	log     *slog.Logger
	version string
}

func NewSearchAPI(svc *search.Service, probe ReadyProbe, log *slog.Logger, version string) *SearchAPI {
	return &SearchAPI{svc: svc, probe: probe, log: log, version: version}
}

func (a *SearchAPI) Handler() http.Handler {
	r := chi.NewRouter()
	mountOps(r, "npu-search", a.version, a.probe)

	r.Get("/search/{term}", a.search)

	return chain(a.log, defaultMaxBody, r)
}

func (a *SearchAPI) search(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.Search(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *SearchAPI) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, creation.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, creation.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, creation.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "creation registry unavailable")
	default:
		a.log.Error("search handler", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
