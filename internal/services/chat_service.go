package services

import (
	"fmt"

	"github.com/abenov/lingopal/internal/chat"
)

// ChatService issues chat access tokens through the external directory.
type ChatService struct {
	directory chat.Directory
}

// NewChatService creates a new ChatService.
func NewChatService(directory chat.Directory) *ChatService {
	return &ChatService{directory: directory}
}

// Token returns a chat token for the given user.
func (s *ChatService) Token(userID string) (string, error) {
	token, err := s.directory.Token(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue chat token: %v", err)
	}
	return token, nil
}
