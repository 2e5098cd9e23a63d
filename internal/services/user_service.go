package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abenov/lingopal/internal/chat"
	"github.com/abenov/lingopal/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// OnboardingInput carries the profile fields a user fills in once after
// signup.
type OnboardingInput struct {
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
	ProfilePicture   string `json:"profilePicture"`
}

// UserService encapsulates the business logic for user accounts.
type UserService struct {
	repo      UserStore
	directory chat.Directory
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, directory chat.Directory) *UserService {
	return &UserService{
		repo:      repo,
		directory: directory,
	}
}

// Register creates a new account with a hashed password and a random
// avatar, and mirrors the identity to the chat directory.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters long", ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if existing != nil {
		logrus.WithField("email", email).Warn("Signup with an email already in use")
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		FullName:       fullName,
		Email:          email,
		Password:       string(hashed),
		ProfilePicture: randomAvatar(),
		Friends:        []primitive.ObjectID{},
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	s.syncDirectory(ctx, created)

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// Authenticate verifies the email and password and returns the user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("Login with unknown email")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Login with wrong password")
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// Onboard completes the user's profile, marks them onboarded and mirrors
// the updated identity to the chat directory.
func (s *UserService) Onboard(ctx context.Context, userID string, input OnboardingInput) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	var missing []string
	if input.Bio == "" {
		missing = append(missing, "bio")
	}
	if input.NativeLanguage == "" {
		missing = append(missing, "nativeLanguage")
	}
	if input.LearningLanguage == "" {
		missing = append(missing, "learningLanguage")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	fields := map[string]interface{}{
		"bio":               input.Bio,
		"native_language":   input.NativeLanguage,
		"learning_language": input.LearningLanguage,
		"location":          input.Location,
		"is_onboarded":      true,
	}
	if input.ProfilePicture != "" {
		fields["profile_picture"] = input.ProfilePicture
	}

	updated, err := s.repo.UpdateUser(ctx, objID, fields)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to onboard user: %v", err)
	}

	s.syncDirectory(ctx, updated)

	logrus.WithField("userID", updated.ID.Hex()).Info("User onboarded successfully")
	return updated, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// syncDirectory mirrors the user to the chat directory. Sync is best
// effort: failures are logged and swallowed, never surfaced or retried.
func (s *UserService) syncDirectory(ctx context.Context, user *models.User) {
	err := s.directory.Upsert(ctx, chat.UserInfo{
		ID:    user.ID.Hex(),
		Name:  user.FullName,
		Image: user.ProfilePicture,
	})
	if err != nil {
		logrus.WithError(err).WithField("userID", user.ID.Hex()).Error("Failed to sync user to chat directory")
		return
	}
	logrus.WithField("userID", user.ID.Hex()).Info("Chat directory user synced")
}

func randomAvatar() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}
