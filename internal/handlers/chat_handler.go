package handlers

import (
	"net/http"

	"github.com/abenov/lingopal/internal/services"
	"github.com/abenov/lingopal/pkg/logger"
	"github.com/abenov/lingopal/pkg/middleware"
)

// ChatHandler exposes chat-token issuance.
type ChatHandler struct {
	Service *services.ChatService
}

// NewChatHandler initializes a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{Service: service}
}

// GetTokenHandler issues a chat token for the logged-in user.
func (h *ChatHandler) GetTokenHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	token, err := h.Service.Token(claims.UserID)
	if err != nil {
		logger.Log.Errorf("Failed to issue chat token for %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
