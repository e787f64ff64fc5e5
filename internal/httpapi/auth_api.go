package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Yonajim/NPUPlatform/internal/auth"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthAPI is the HTTP surface of the auth authority.
type AuthAPI struct {
	svc     *auth.Service
	probe   ReadyProbe
	log     *slog.Logger
	version string
}

func NewAuthAPI(svc *auth.Service, probe ReadyProbe, log *slog.Logger, version string) *AuthAPI {
	return &AuthAPI{svc: svc, probe: probe, log: log, version: version}
}

func (a *AuthAPI) Handler() http.Handler {
	r := chi.NewRouter()
	mountOps(r, "npu-auth", a.version, a.probe)

	r.Post("/auth/register", a.register)
	r.Post("/auth/login", a.login)
	r.Post("/auth/logout", a.logout)

	return chain(a.log, defaultMaxBody, r)
}

func (a *AuthAPI) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	res, err := a.svc.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: res.Token, ExpiresAt: res.ExpiresAt})
}

func (a *AuthAPI) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	res, err := a.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: res.Token, ExpiresAt: res.ExpiresAt})
}

// logout revokes the presented token itself, so it reads the bearer
// header directly instead of going through RequireAuth.
func (a *AuthAPI) logout(w http.ResponseWriter, r *http.Request) {
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, err.Error())
		return
	}
	if err := a.svc.Logout(r.Context(), token); err != nil {
		a.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "logged_out"})
}

func (a *AuthAPI) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, auth.ErrDuplicateEmail),
		errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		a.log.Error("auth handler", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
