package handlers

import (
	"net/http"

	"github.com/isdelr/login-api/internal/models"
	"github.com/isdelr/login-api/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for registration, login and token checks.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyPayload defines the structure for token verification requests.
type VerifyPayload struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// RegisterResponse is returned after a user has been saved.
type RegisterResponse struct {
	Operation string            `json:"Operation"`
	Message   string            `json:"Message"`
	Item      models.PublicUser `json:"Item"`
}

// VerifyResponse is returned by the verify endpoint.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if !decode(w, r, &payload) {
		return
	}

	user, err := h.service.Register(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		e := services.AsError(err)
		status := e.HTTPStatus()
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		} else {
			log.Info().Str("email", payload.Email).Str("reason", e.Message).Msg("Registration rejected")
		}
		writeMessage(w, status, e.Message)
		return
	}

	writeJSON(w, http.StatusOK, RegisterResponse{
		Operation: "SAVE",
		Message:   "SUCCESS",
		Item:      user,
	})
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if !decode(w, r, &payload) {
		return
	}

	res, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		e := services.AsError(err)
		status := e.HTTPStatus()
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("email", payload.Email).Msg("Failed to log in user")
		} else {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		}
		writeMessage(w, status, e.Message)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Verify checks that a token is valid and belongs to the given email.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var payload VerifyPayload
	if !decode(w, r, &payload) {
		return
	}

	if _, err := h.service.VerifyToken(r.Context(), payload.Token, payload.Email); err != nil {
		log.Debug().Err(err).Str("email", payload.Email).Msg("Token rejected")
		writeJSON(w, services.AsError(err).HTTPStatus(), VerifyResponse{Verified: false, Message: "Invalid token"})
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{Verified: true, Message: "verified"})
}
