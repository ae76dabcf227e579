package handlers

import (
	"encoding/json"
	"io"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler handles POST /api/login.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input loginRequest
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	session, err := h.Auth.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// LogoutHandler handles POST /api/logout. Clearing the director's working set
// is wired through the session-change listener, so nothing dangles after
// sign-out.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.Auth.SignOut()
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}
