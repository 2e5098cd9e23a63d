package services

import (
	"context"

	"github.com/abenov/lingopal/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence surface the services need for users.
// Implemented by repository.UserRepository; faked in tests.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindRecommended(ctx context.Context, userID primitive.ObjectID, exclude []primitive.ObjectID) ([]models.User, error)
}

// FriendRequestStore is the persistence surface for friend requests.
// Implemented by repository.FriendRequestRepository; faked in tests.
type FriendRequestStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error)
	GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error)
	GetAcceptedByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}
