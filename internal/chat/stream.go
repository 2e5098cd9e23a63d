package chat

import (
	"context"
	"fmt"
	"time"

	stream "github.com/GetStream/stream-chat-go/v5"
)

// StreamDirectory implements Directory on top of the Stream Chat API.
type StreamDirectory struct {
	client *stream.Client
}

// NewStreamDirectory creates a Stream-backed chat directory.
func NewStreamDirectory(apiKey, apiSecret string) (*StreamDirectory, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("stream API key or secret is missing")
	}

	client, err := stream.NewClient(apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream client: %v", err)
	}
	return &StreamDirectory{client: client}, nil
}

// Upsert creates or updates the user in the Stream directory.
func (d *StreamDirectory) Upsert(ctx context.Context, user UserInfo) error {
	_, err := d.client.UpsertUser(ctx, &stream.User{
		ID:    user.ID,
		Name:  user.Name,
		Image: user.Image,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert stream user: %v", err)
	}
	return nil
}

// Token issues a chat access token for the user. The token itself does
// not expire; the session cookie guards access to this endpoint.
func (d *StreamDirectory) Token(userID string) (string, error) {
	token, err := d.client.CreateToken(userID, time.Time{})
	if err != nil {
		return "", fmt.Errorf("failed to create stream token: %v", err)
	}
	return token, nil
}
