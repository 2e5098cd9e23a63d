package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request states. There is deliberately no rejected or cancelled
// state: a request either stays pending or transitions once to accepted.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// FriendRequest links two users. At most one request document exists per
// pair of users, regardless of which side sent it.
type FriendRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"sender_id" json:"senderId"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipientId"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FriendRequestWithProfile is a request with the counterpart's profile
// joined in: the sender for incoming/accepted feeds, the recipient for
// outgoing ones.
type FriendRequestWithProfile struct {
	FriendRequest
	Sender    *PublicUser `bson:"-" json:"sender,omitempty"`
	Recipient *PublicUser `bson:"-" json:"recipient,omitempty"`
}
