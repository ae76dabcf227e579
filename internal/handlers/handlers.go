package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"avisportal/internal/auth"
	"avisportal/internal/repo"
	"avisportal/internal/state"
	"avisportal/models"
)

// RepositoryInterface is the adapter surface the handlers need; mocked in tests.
type RepositoryInterface interface {
	Busy(id int) bool
	ListEntries(ctx context.Context) ([]models.Avis, error)
	ListComments(ctx context.Context, avisIDs []int) (map[int][]models.Commentaire, error)
	CreateEntry(ctx context.Context, sub repo.Submission) (*models.Avis, error)
	UpdateEntry(ctx context.Context, id int, d state.Draft) (models.AvisUpdate, error)
	DeleteEntry(ctx context.Context, id int) error
	CreateComment(ctx context.Context, avisID int, authorEmail, text string) (*models.Commentaire, error)
}

// AuthInterface is the session surface the handlers need; mocked in tests.
type AuthInterface interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut()
	Current() *auth.Session
	ParseToken(tokenString string) (string, error)
}

// Handler wires the repository adapter, the session manager and the
// director's in-memory state
type Handler struct {
	Repo         RepositoryInterface
	Auth         AuthInterface
	State        *state.DirectorState
	ConfigErrors []string
}

func NewHandler(r RepositoryInterface, a AuthInterface, s *state.DirectorState, configErrors []string) *Handler {
	return &Handler{Repo: r, Auth: a, State: s, ConfigErrors: configErrors}
}

// PingHandler answers "ok" as a liveness check
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type contextKey string

const directorEmailKey contextKey = "directorEmail"

// RequireConfig refuses data operations while required settings are missing,
// answering with the enumerable diagnostics instead of crashing.
func (h *Handler) RequireConfig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.ConfigErrors) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":   "configuration is incomplete",
				"missing": h.ConfigErrors,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireDirector guards the review surface with a bearer token.
func (h *Handler) RequireDirector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeError(w, repo.NewError(repo.CategoryInvalidCredentials, "missing bearer token"))
			return
		}

		email, err := h.Auth.ParseToken(header[len(prefix):])
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), directorEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func directorEmail(r *http.Request) string {
	email, _ := r.Context().Value(directorEmailKey).(string)
	return email
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders a classified error with a status per category. Anything
// else falls through as a 500 with its raw message.
func writeError(w http.ResponseWriter, err error) {
	var classified *repo.Error
	if !errors.As(err, &classified) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":    err.Error(),
			"category": string(repo.CategoryUnclassified),
		})
		return
	}

	status := http.StatusInternalServerError
	switch classified.Category {
	case repo.CategoryValidationFailed:
		status = http.StatusBadRequest
	case repo.CategoryInvalidCredentials:
		status = http.StatusUnauthorized
	case repo.CategoryAuthorizationPolicy:
		status = http.StatusForbidden
	case repo.CategoryNetworkUnreachable:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{
		"error":    classified.Message,
		"category": string(classified.Category),
	})
}
