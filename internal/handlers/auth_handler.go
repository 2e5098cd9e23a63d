package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/abenov/lingopal/internal/config"
	"github.com/abenov/lingopal/internal/services"
	jwtutil "github.com/abenov/lingopal/pkg/jwt"
	"github.com/abenov/lingopal/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles signup, login, logout, onboarding and the current
// user endpoint.
type AuthHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(service *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Config:  cfg,
	}
}

// SignupHandler registers a new user and opens a session.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Register(r.Context(), body.FullName, body.Email, body.Password)
	if err != nil {
		log.WithError(err).Warn("Signup failed")
		respondError(w, err)
		return
	}

	if err := h.openSession(w, user.ID.Hex(), user.Email); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginHandler authenticates a user and opens a session.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.openSession(w, user.ID.Hex(), user.Email); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// LogoutHandler clears the session cookie.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Config.Env == "production",
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logout successful",
	})
}

// OnboardingHandler completes the logged-in user's profile.
func (h *AuthHandler) OnboardingHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	var input services.OnboardingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Onboard(r.Context(), claims.UserID, input)
	if err != nil {
		log.WithField("userID", claims.UserID).WithError(err).Warn("Onboarding failed")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User onboarded successfully",
		"user":    user,
	})
}

// MeHandler returns the logged-in user's account.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	user, err := h.Service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// openSession issues a session token and sets it as an HttpOnly cookie.
func (h *AuthHandler) openSession(w http.ResponseWriter, userID, email string) error {
	token, err := jwtutil.GenerateToken(userID, email, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate session token")
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.Config.TokenExpiry * 3600,
		HttpOnly: true,
		Secure:   h.Config.Env == "production",
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}
