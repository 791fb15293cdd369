package handler

import (
	"errors"
	"net/http"
	"time"

	"booksim/internal/service"

	"github.com/goccy/go-json"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type tokenRequest struct {
	APIKey string `json:"apiKey"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// @Summary Issue an API token
// @Description Exchanges the operator API key for a bearer JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param body body tokenRequest true "api key"
// @Success 200 {object} tokenResponse
// @Failure 401 {string} string
// @Failure 503 {string} string
// @Router /auth/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, exp, err := h.svc.IssueToken(req.APIKey)
	switch {
	case errors.Is(err, service.ErrAuthDisabled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp})
}
