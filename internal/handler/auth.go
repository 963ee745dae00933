package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avilkin/blog-service/internal/auth"
	"github.com/avilkin/blog-service/internal/middleware"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pending, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if pending {
		h.respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "verification email sent",
			"user":    user,
		})
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	setSessionCookie(w, token)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}

// GoogleLogin exchanges a Google ID token for a local session.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		h.respondErrorMessage(w, http.StatusBadRequest, "token is required")
		return
	}

	user, token, err := h.svc.LoginWithGoogle(r.Context(), req.Token)
	if err != nil {
		h.respondError(w, err)
		return
	}

	setSessionCookie(w, token)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Profile returns the decoded session claims.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.respondError(w, auth.ErrTokenMissing)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       claims.UserID,
		"username": claims.Username,
	})
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

// Verify consumes an email-verification link.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.respondErrorMessage(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.svc.Verify(r.Context(), token); err != nil {
		// Bad or expired verification links are a client problem, not an
		// authorization failure on a protected route.
		if errors.Is(err, auth.ErrTokenInvalid) || errors.Is(err, auth.ErrTokenExpired) {
			h.respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "account verified"})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
