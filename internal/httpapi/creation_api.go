package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Yonajim/NPUPlatform/internal/creation"
)

// maxImageBody bounds a multipart upload including the image file.
const maxImageBody = 10 << 20

// CreationAPI is the HTTP surface of the creation registry.
type CreationAPI struct {
	svc     *creation.Service
	probe   ReadyProbe
	log     *slog.Logger
	version string
}

func NewCreationAPI(svc *creation.Service, probe ReadyProbe, log *slog.Logger, version string) *CreationAPI {
	return &CreationAPI{svc: svc, probe: probe, log: log, version: version}
}

func (a *CreationAPI) Handler() http.Handler {
	r := chi.NewRouter()
	mountOps(r, "npu-creations", a.version, a.probe)

	r.Route("/creations", func(r chi.Router) {
		r.Post("/", a.create)
		r.Get("/", a.list)
		r.Get("/{id}", a.get)
		r.Put("/{id}", a.update)
		r.Delete("/{id}", a.remove)
		r.Get("/search/{term}", a.search)
	})

	return chain(a.log, maxImageBody, r)
}

func (a *CreationAPI) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBody); err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart form is required")
		return
	}
	upload, cleanup, err := formImage(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()
	if upload == nil {
		writeError(w, r, http.StatusBadRequest, "an image file is required")
		return
	}

	rec, err := a.svc.Create(r.Context(), creation.NewCreation{
		OwnerID:     ownerID(r),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Image:       upload,
	})
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/creations/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (a *CreationAPI) get(w http.ResponseWriter, r *http.Request) {
	rec, err := a.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *CreationAPI) list(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.List(r.Context())
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// update applies a partial update: only the multipart fields present in
// the request change the record.
func (a *CreationAPI) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBody); err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart form is required")
		return
	}
	upload, cleanup, err := formImage(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	var in creation.UpdateCreation
	in.Image = upload
	if v, ok := formValue(r, "owner_id"); ok {
		in.OwnerID = &v
	}
	if v, ok := formValue(r, "title"); ok {
		in.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		in.Description = &v
	}

	if err := a.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		a.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *CreationAPI) remove(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *CreationAPI) search(w http.ResponseWriter, r *http.Request) {
	out, err := a.svc.Search(r.Context(), chi.URLParam(r, "term"))
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *CreationAPI) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, creation.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, creation.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, creation.ErrConflict):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, creation.ErrUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		a.log.Error("creation handler", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// ownerID prefers the authenticated subject over the form field.
func ownerID(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return claims.Subject
	}
	return r.FormValue("owner_id")
}

func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// formImage pulls the optional image file out of the multipart form.
// The returned cleanup closes the file and is safe to call always.
func formImage(r *http.Request) (*creation.Upload, func(), error) {
	noop := func() {}
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, errors.New("image field is malformed")
	}
	contentType := strings.TrimSpace(header.Header.Get("Content-Type"))
	return &creation.Upload{
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	}, func() { _ = file.Close() }, nil
}
