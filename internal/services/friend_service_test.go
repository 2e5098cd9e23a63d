package services

import (
	"context"
	"testing"

	"github.com/abenov/lingopal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFriendService() (*FriendService, *fakeUserStore, *fakeRequestStore) {
	users := newFakeUserStore()
	requests := newFakeRequestStore()
	return NewFriendService(requests, users), users, requests
}

func addTestUser(users *fakeUserStore, name string, onboarded bool) *models.User {
	user := &models.User{
		FullName:    name,
		Email:       name + "@example.com",
		IsOnboarded: onboarded,
		Friends:     []primitive.ObjectID{},
	}
	created, _ := users.CreateUser(context.Background(), user)
	return created
}

func TestSendRequestToSelf(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)

	_, err := svc.SendRequest(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequestToUnknownUser(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)

	_, err := svc.SendRequest(context.Background(), alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSendRequestToExistingFriend(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)

	require.NoError(t, users.AddFriend(context.Background(), alice.ID, bob.ID))
	require.NoError(t, users.AddFriend(context.Background(), bob.ID, alice.ID))

	_, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestSendRequestDuplicateEitherDirection(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)

	request, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, request.Status)

	_, err = svc.SendRequest(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	// The reverse direction collides with the same pair.
	_, err = svc.SendRequest(context.Background(), bob.ID, alice.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestAcceptRequestMakesFriendshipSymmetric(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)

	request, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AcceptRequest(context.Background(), bob.ID, request.ID))

	aliceFriends, err := svc.GetFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bob.ID, aliceFriends[0].ID)

	bobFriends, err := svc.GetFriends(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, alice.ID, bobFriends[0].ID)
}

func TestAcceptRequestIsIdempotent(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)

	request, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AcceptRequest(context.Background(), bob.ID, request.ID))
	require.NoError(t, svc.AcceptRequest(context.Background(), bob.ID, request.ID))

	// No duplicate entries in either friend set.
	aliceFriends, err := svc.GetFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, aliceFriends, 1)

	bobFriends, err := svc.GetFriends(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Len(t, bobFriends, 1)
}

func TestAcceptRequestOnlyByRecipient(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)
	carol := addTestUser(users, "carol", true)

	request, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AcceptRequest(context.Background(), alice.ID, request.ID), ErrNotRecipient)
	assert.ErrorIs(t, svc.AcceptRequest(context.Background(), carol.ID, request.ID), ErrNotRecipient)

	// The request is still pending and no friendship was created.
	aliceFriends, err := svc.GetFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
}

func TestAcceptRequestNotFound(t *testing.T) {
	svc, users, _ := newTestFriendService()
	bob := addTestUser(users, "bob", true)

	err := svc.AcceptRequest(context.Background(), bob.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRequestListings(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)
	carol := addTestUser(users, "carol", true)

	fromAlice, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	fromCarol, err := svc.SendRequest(context.Background(), carol.ID, bob.ID)
	require.NoError(t, err)

	incoming, err := svc.GetIncomingRequests(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	for _, req := range incoming {
		require.NotNil(t, req.Sender)
		assert.Equal(t, req.SenderID, req.Sender.ID)
	}

	outgoing, err := svc.GetOutgoingRequests(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, fromAlice.ID, outgoing[0].ID)
	require.NotNil(t, outgoing[0].Recipient)
	assert.Equal(t, "bob", outgoing[0].Recipient.FullName)

	// Accepting moves the request out of the pending feeds and into the
	// accepted one.
	require.NoError(t, svc.AcceptRequest(context.Background(), bob.ID, fromCarol.ID))

	incoming, err = svc.GetIncomingRequests(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	accepted, err := svc.GetAcceptedRequests(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, fromCarol.ID, accepted[0].ID)
	require.NotNil(t, accepted[0].Sender)
	assert.Equal(t, "carol", accepted[0].Sender.FullName)
}

func TestGetFriendsEmpty(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)

	friends, err := svc.GetFriends(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, friends)
	assert.Empty(t, friends)
}

func TestRecommendedUsersExclusions(t *testing.T) {
	svc, users, _ := newTestFriendService()
	alice := addTestUser(users, "alice", true)
	bob := addTestUser(users, "bob", true)
	carol := addTestUser(users, "carol", true)
	addTestUser(users, "dave", false) // not onboarded

	request, err := svc.SendRequest(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(context.Background(), bob.ID, request.ID))

	recommended, err := svc.GetRecommendedUsers(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, recommended, 1)
	assert.Equal(t, carol.ID, recommended[0].ID)
}
