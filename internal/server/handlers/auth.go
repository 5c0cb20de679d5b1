package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushealth/clinicsync/internal/server/jwt"
	"github.com/campushealth/clinicsync/internal/server/storage"
	"github.com/campushealth/clinicsync/pkg/api"
)

// AuthHandler handles staff authentication.
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens *jwt.Service
}

// NewAuthHandler creates the authentication handler.
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens *jwt.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		sendError(h.logger, w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Same reply as a wrong password so emails cannot be probed.
			sendError(h.logger, w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to fetch user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "failed login attempt", slog.String("email", req.Email))
		sendError(h.logger, w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, expiresIn, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, api.TokenResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
