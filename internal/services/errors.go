package services

import "errors"

// Service-level errors. Handlers map these to HTTP status codes with
// errors.Is; anything else surfaces as a generic 500.
var (
	// ErrValidation marks missing or malformed input. Wrap it with
	// fmt.Errorf("%w: ...") to carry a caller-facing detail message.
	ErrValidation = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use, please choose another one")

	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("friend request not found")

	ErrSelfRequest      = errors.New("you cannot send a friend request to yourself")
	ErrAlreadyFriends   = errors.New("you are already friends with this user")
	ErrDuplicateRequest = errors.New("a friend request already exists between you and this user")
	ErrNotRecipient     = errors.New("you are not authorized to accept this friend request")
)
