package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/abenov/lingopal/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendService implements the friend-request workflow: sending,
// accepting, and the listings derived from requests and friend sets.
type FriendService struct {
	requests FriendRequestStore
	users    UserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(requests FriendRequestStore, users UserStore) *FriendService {
	return &FriendService{
		requests: requests,
		users:    users,
	}
}

// SendRequest creates a pending friend request from sender to recipient.
// It refuses self-requests, requests to unknown users, requests to
// existing friends, and a second request between the same pair in either
// direction, whatever the first one's status.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID primitive.ObjectID) (*models.FriendRequest, error) {
	if senderID == recipientID {
		return nil, ErrSelfRequest
	}

	recipient, err := s.users.GetUserByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	for _, friendID := range recipient.Friends {
		if friendID == senderID {
			return nil, ErrAlreadyFriends
		}
	}

	existing, err := s.requests.FindBetween(ctx, senderID, recipientID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	request, err := s.requests.CreateRequest(ctx, &models.FriendRequest{
		SenderID:    senderID,
		RecipientID: recipientID,
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"senderID":    senderID.Hex(),
		"recipientID": recipientID.Hex(),
		"requestID":   request.ID.Hex(),
	}).Info("Friend request sent")
	return request, nil
}

// AcceptRequest transitions a pending request to accepted and adds each
// party to the other's friend set. Only the recipient may accept. Every
// write is idempotent, so accepting an already accepted request is a
// no-op and a retry after a partial failure converges.
func (s *FriendService) AcceptRequest(ctx context.Context, accepterID, requestID primitive.ObjectID) error {
	request, err := s.requests.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrRequestNotFound
		}
		return err
	}

	if request.RecipientID != accepterID {
		return ErrNotRecipient
	}

	if request.Status != models.StatusAccepted {
		if err := s.requests.UpdateStatus(ctx, requestID, models.StatusAccepted); err != nil {
			return err
		}
	}

	if err := s.users.AddFriend(ctx, request.SenderID, request.RecipientID); err != nil {
		return fmt.Errorf("failed to add friend to sender: %v", err)
	}
	if err := s.users.AddFriend(ctx, request.RecipientID, request.SenderID); err != nil {
		return fmt.Errorf("failed to add friend to recipient: %v", err)
	}

	logrus.WithField("requestID", requestID.Hex()).Info("Friend request accepted")
	return nil
}

// GetIncomingRequests lists pending requests addressed to the user, with
// each sender's profile joined in.
func (s *FriendService) GetIncomingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestWithProfile, error) {
	requests, err := s.requests.GetPendingByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinSenders(ctx, requests)
}

// GetAcceptedRequests lists requests the user has accepted, with each
// sender's profile joined in. Serves as a feed of new connections.
func (s *FriendService) GetAcceptedRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestWithProfile, error) {
	requests, err := s.requests.GetAcceptedByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.joinSenders(ctx, requests)
}

// GetOutgoingRequests lists pending requests the user has sent, with each
// recipient's profile joined in.
func (s *FriendService) GetOutgoingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestWithProfile, error) {
	requests, err := s.requests.GetPendingBySender(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.RecipientID)
	}
	profiles, err := s.profilesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	joined := make([]models.FriendRequestWithProfile, 0, len(requests))
	for _, req := range requests {
		entry := models.FriendRequestWithProfile{FriendRequest: req}
		if profile, ok := profiles[req.RecipientID]; ok {
			entry.Recipient = &profile
		}
		joined = append(joined, entry)
	}
	return joined, nil
}

// GetFriends dereferences the user's friend set into profile summaries.
func (s *FriendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	friends, err := s.users.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %v", err)
	}

	profiles := make([]models.PublicUser, 0, len(friends))
	for i := range friends {
		profiles = append(profiles, friends[i].Public())
	}
	return profiles, nil
}

// GetRecommendedUsers returns onboarded users excluding the requester and
// their current friends. No ranking is applied.
func (s *FriendService) GetRecommendedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	recommended, err := s.users.FindRecommended(ctx, userID, user.Friends)
	if err != nil {
		return nil, err
	}
	if recommended == nil {
		recommended = []models.User{}
	}
	return recommended, nil
}

func (s *FriendService) joinSenders(ctx context.Context, requests []models.FriendRequest) ([]models.FriendRequestWithProfile, error) {
	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.SenderID)
	}
	profiles, err := s.profilesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	joined := make([]models.FriendRequestWithProfile, 0, len(requests))
	for _, req := range requests {
		entry := models.FriendRequestWithProfile{FriendRequest: req}
		if profile, ok := profiles[req.SenderID]; ok {
			entry.Sender = &profile
		}
		joined = append(joined, entry)
	}
	return joined, nil
}

func (s *FriendService) profilesByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicUser, error) {
	profiles := make(map[primitive.ObjectID]models.PublicUser, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profiles: %v", err)
	}
	for i := range users {
		profiles[users[i].ID] = users[i].Public()
	}
	return profiles, nil
}
