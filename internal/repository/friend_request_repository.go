package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/abenov/lingopal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRequestRepository handles the friend_requests collection.
type FriendRequestRepository struct {
	collection *mongo.Collection
}

// NewFriendRequestRepository creates a new instance of FriendRequestRepository.
func NewFriendRequestRepository(db *mongo.Database) *FriendRequestRepository {
	return &FriendRequestRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a new pending friend request.
func (r *FriendRequestRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.Status = models.StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID retrieves a friend request by its ID.
func (r *FriendRequestRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}
	return &request, nil
}

// FindBetween returns the request between two users in either direction,
// whatever its status.
func (r *FriendRequestRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": a, "recipient_id": b},
			{"sender_id": b, "recipient_id": a},
		},
	}

	var request models.FriendRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend request between users: %w", err)
	}
	return &request, nil
}

// GetPendingByRecipient lists pending requests addressed to the user.
func (r *FriendRequestRepository) GetPendingByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID, "status": models.StatusPending})
}

// GetPendingBySender lists pending requests the user has sent.
func (r *FriendRequestRepository) GetPendingBySender(ctx context.Context, senderID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"sender_id": senderID, "status": models.StatusPending})
}

// GetAcceptedByRecipient lists accepted requests addressed to the user,
// used as a feed of recently accepted connections.
func (r *FriendRequestRepository) GetAcceptedByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.find(ctx, bson.M{"recipient_id": recipientID, "status": models.StatusAccepted})
}

// UpdateStatus transitions a request to the given status.
func (r *FriendRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

func (r *FriendRequestRepository) find(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	for cursor.Next(ctx) {
		var req models.FriendRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, cursor.Err()
}
