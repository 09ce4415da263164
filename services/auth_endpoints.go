package services

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AuthEndpoints struct {
	authService *AuthService
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthEndpoints(authService *AuthService) *AuthEndpoints {
	return &AuthEndpoints{
		authService: authService,
	}
}

func (e *AuthEndpoints) RegisterRoutes(r chi.Router) {
	r.Post("/signup", e.SignupHandler)
	r.Post("/login", e.LoginHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", e.LogoutHandler)

		if e.authService.TokensEnabled() {
			r.Group(func(r chi.Router) {
				r.Use(e.authService.Middleware)
				r.Get("/me", e.MeHandler)
			})
		}
	})
}

func (e *AuthEndpoints) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := e.authService.Signup(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Username and password required")
		return
	case errors.Is(err, ErrUserExists):
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		slog.Error("Signup failed", "error", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"success": "User created"})
}

func (e *AuthEndpoints) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := e.authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("Login failed", "error", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if e.authService.TokensEnabled() {
		token, err := e.authService.GenerateAccessToken(user)
		if err != nil {
			slog.Error("Failed to generate access token", "error", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}
		e.authService.SetAuthCookie(w, token)
	}

	writeJSON(w, http.StatusOK, map[string]string{"success": "Login successful"})
}

func (e *AuthEndpoints) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	e.authService.ClearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"success": "Logout successful"})
}

func (e *AuthEndpoints) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}
