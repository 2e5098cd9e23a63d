package services

import (
	"context"
	"fmt"
	"time"

	"github.com/abenov/lingopal/internal/chat"
	"github.com/abenov/lingopal/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("failed to find user by email: %w", mongo.ErrNoDocuments)
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to find user by id: %w", mongo.ErrNoDocuments)
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("failed to update user: %w", mongo.ErrNoDocuments)
	}
	for key, value := range fields {
		switch key {
		case "bio":
			user.Bio = value.(string)
		case "native_language":
			user.NativeLanguage = value.(string)
		case "learning_language":
			user.LearningLanguage = value.(string)
		case "location":
			user.Location = value.(string)
		case "profile_picture":
			user.ProfilePicture = value.(string)
		case "is_onboarded":
			user.IsOnboarded = value.(bool)
		}
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

func (f *fakeUserStore) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("failed to add friend: %w", mongo.ErrNoDocuments)
	}
	for _, existing := range user.Friends {
		if existing == friendID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

func (f *fakeUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (f *fakeUserStore) FindRecommended(_ context.Context, userID primitive.ObjectID, exclude []primitive.ObjectID) ([]models.User, error) {
	excluded := map[primitive.ObjectID]bool{userID: true}
	for _, id := range exclude {
		excluded[id] = true
	}

	var users []models.User
	for id, user := range f.users {
		if !excluded[id] && user.IsOnboarded {
			users = append(users, *user)
		}
	}
	return users, nil
}

type fakeRequestStore struct {
	requests map[primitive.ObjectID]*models.FriendRequest
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: make(map[primitive.ObjectID]*models.FriendRequest)}
}

func (f *fakeRequestStore) CreateRequest(_ context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.ID = primitive.NewObjectID()
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestStore) GetRequestByID(_ context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("failed to find friend request: %w", mongo.ErrNoDocuments)
	}
	return req, nil
}

func (f *fakeRequestStore) FindBetween(_ context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	for _, req := range f.requests {
		if (req.SenderID == a && req.RecipientID == b) || (req.SenderID == b && req.RecipientID == a) {
			return req, nil
		}
	}
	return nil, fmt.Errorf("failed to find friend request between users: %w", mongo.ErrNoDocuments)
}

func (f *fakeRequestStore) GetPendingByRecipient(_ context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.RecipientID == recipientID && req.Status == models.StatusPending
	}), nil
}

func (f *fakeRequestStore) GetPendingBySender(_ context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.SenderID == senderID && req.Status == models.StatusPending
	}), nil
}

func (f *fakeRequestStore) GetAcceptedByRecipient(_ context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return f.filter(func(req *models.FriendRequest) bool {
		return req.RecipientID == recipientID && req.Status == models.StatusAccepted
	}), nil
}

func (f *fakeRequestStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	req, ok := f.requests[id]
	if !ok {
		return fmt.Errorf("failed to update request status: %w", mongo.ErrNoDocuments)
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRequestStore) filter(keep func(*models.FriendRequest) bool) []models.FriendRequest {
	var requests []models.FriendRequest
	for _, req := range f.requests {
		if keep(req) {
			requests = append(requests, *req)
		}
	}
	return requests
}

type fakeDirectory struct {
	upserts []chat.UserInfo
	err     error
}

func (f *fakeDirectory) Upsert(_ context.Context, user chat.UserInfo) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, user)
	return nil
}

func (f *fakeDirectory) Token(userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "chat-token-" + userID, nil
}
