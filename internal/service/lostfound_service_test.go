package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

func newLostFoundFixture() (*LostFoundService, *memUserRepo, *memLostFoundRepo, *recordingDispatcher) {
	users := newMemUserRepo()
	posts := newMemLostFoundRepo()
	dispatcher := &recordingDispatcher{}
	return NewLostFoundService(posts, users, dispatcher, zap.NewNop()), users, posts, dispatcher
}

func TestLostFoundCreateRequiresVerification(t *testing.T) {
	svc, users, _, dispatcher := newLostFoundFixture()
	user := seedUser(t, users, nil)

	_, err := svc.Create(context.Background(), user, LostFoundCreateInput{
		Kind: domain.LostFoundKindLost, Title: "wallet", Description: "black wallet",
	})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Empty(t, dispatcher.published())
}

func TestLostFoundCreateValidatesKind(t *testing.T) {
	svc, users, _, _ := newLostFoundFixture()
	user := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })

	_, err := svc.Create(context.Background(), user, LostFoundCreateInput{
		Kind: domain.LostFoundKind("misplaced"), Title: "wallet", Description: "black wallet",
	})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestLostFoundCreatePublishesBroadcastEvent(t *testing.T) {
	svc, users, _, dispatcher := newLostFoundFixture()
	user := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })

	post, err := svc.Create(context.Background(), user, LostFoundCreateInput{
		Kind: domain.LostFoundKindFound, Title: "keys", Description: "dorm keys on a red ring",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LostFoundStatusActive, post.Status)

	published := dispatcher.published()
	require.Len(t, published, 1)
	require.Equal(t, events.EventLostFoundPosted, published[0].Type)
	payload, ok := published[0].Payload.(events.LostFoundPostedPayload)
	require.True(t, ok)
	assert.Equal(t, user.ID, payload.PosterID)
	assert.Equal(t, "found", payload.Kind)
}

func TestLostFoundUpdateStatusOwnership(t *testing.T) {
	svc, users, posts, _ := newLostFoundFixture()
	poster := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })
	stranger := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.Email = "s@example.com"
		u.Username = "s"
		u.SchoolEmail = "s@campus.edu"
	})

	post := &domain.LostFound{
		UserID: poster.ID,
		Kind:   domain.LostFoundKindLost,
		Title:  "wallet", Description: "black wallet",
		Status: domain.LostFoundStatusActive,
	}
	require.NoError(t, posts.Create(context.Background(), post))

	_, err := svc.UpdateStatus(context.Background(), stranger, post.ID, domain.LostFoundStatusResolved)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 403, domainErr.HTTPStatus)

	resolved, err := svc.UpdateStatus(context.Background(), poster, post.ID, domain.LostFoundStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.LostFoundStatusResolved, resolved.Status)
}
