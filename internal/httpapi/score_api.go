package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Yonajim/NPUPlatform/internal/creation"
	"github.com/Yonajim/NPUPlatform/internal/score"
)

// ScoreAPI is the HTTP surface of the score ledger.
type ScoreAPI struct {
	svc     *score.Service
	probe   ReadyProbe
	log     *slog.Logger
	version string
}

func NewScoreAPI(svc *score.Service, probe ReadyProbe, log *slog.Logger, version string) *ScoreAPI {
	return &ScoreAPI{svc: svc, probe: probe, log: log, version: version}
}

func (a *ScoreAPI) Handler() http.Handler {
	r := chi.NewRouter()
	mountOps(r, "npu-scores", a.version, a.probe)

	r.Route("/scores", func(r chi.Router) {
		r.Post("/", a.post)
		r.Get("/", a.list)
		r.Get("/{id}", a.get)
		r.Get("/creation/{creationID}", a.listForCreation)
	})

	return chain(a.log, defaultMaxBody, r)
}

func (a *ScoreAPI) post(w http.ResponseWriter, r *http.Request) {
	var req score.NewScore
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		req.OwnerID = claims.Subject
	}
	rec, err := a.svc.Post(r.Context(), req)
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/scores/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *ScoreAPI) get(w http.ResponseWriter, r *http.Request) {
	rec, err := a.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *ScoreAPI) list(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.List(r.Context())
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *ScoreAPI) listForCreation(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.ListForCreation(r.Context(), chi.URLParam(r, "creationID"))
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *ScoreAPI) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, score.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, score.ErrNotFound), errors.Is(err, score.ErrCreationNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, creation.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "creation registry unavailable")
	default:
		a.log.Error("score handler", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
