package chat

import "context"

// UserInfo is the minimal identity payload mirrored to the chat directory.
type UserInfo struct {
	ID    string
	Name  string
	Image string
}

// Directory mirrors user identities to an external chat provider and
// issues chat access tokens. It is injected into the service layer so
// tests can substitute a fake.
type Directory interface {
	Upsert(ctx context.Context, user UserInfo) error
	Token(userID string) (string, error)
}
