package handlers

import (
	"net/http"

	"github.com/abenov/lingopal/internal/services"
	"github.com/abenov/lingopal/pkg/logger"
	"github.com/abenov/lingopal/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler manages recommendations, friends and friend requests.
type UserHandler struct {
	Service *services.FriendService
}

// NewUserHandler initializes a new UserHandler.
func NewUserHandler(service *services.FriendService) *UserHandler {
	return &UserHandler{Service: service}
}

// GetRecommendedUsersHandler returns onboarded users the caller is not
// friends with yet.
func (h *UserHandler) GetRecommendedUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	users, err := h.Service.GetRecommendedUsers(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch recommended users for %s: %v", userID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// GetFriendsHandler returns the caller's friends as profile summaries.
func (h *UserHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for %s: %v", userID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

// GetFriendRequestsHandler returns the caller's pending incoming requests
// together with the accepted ones (the new-connections feed).
func (h *UserHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	incoming, err := h.Service.GetIncomingRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch incoming requests for %s: %v", userID.Hex(), err)
		respondError(w, err)
		return
	}

	accepted, err := h.Service.GetAcceptedRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch accepted requests for %s: %v", userID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"incomingRequests": incoming,
		"acceptedRequests": accepted,
	})
}

// GetOutgoingFriendRequestsHandler returns pending requests the caller
// has sent.
func (h *UserHandler) GetOutgoingFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	outgoing, err := h.Service.GetOutgoingRequests(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch outgoing requests for %s: %v", userID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"outgoingRequests": outgoing})
}

// SendFriendRequestHandler sends a friend request to the user in the path.
func (h *UserHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, ok := callerID(w, r)
	if !ok {
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user ID"})
		return
	}

	request, err := h.Service.SendRequest(r.Context(), senderID, recipientID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s to %s: %v", senderID.Hex(), recipientID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

// AcceptFriendRequestHandler accepts the friend request in the path.
func (h *UserHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	accepterID, ok := callerID(w, r)
	if !ok {
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request ID"})
		return
	}

	if err := h.Service.AcceptRequest(r.Context(), accepterID, requestID); err != nil {
		logger.Log.Warnf("Failed to accept friend request %s: %v", requestID.Hex(), err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend request accepted",
	})
}

// callerID extracts the authenticated user's ID from the request context.
func callerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
