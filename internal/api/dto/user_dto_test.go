package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-community/internal/domain"
)

func sampleUser() *domain.User {
	phone := "555-0100"
	personal := "personal@example.com"
	return &domain.User{
		ID:             7,
		Name:           "Casey Kim",
		Username:       "ckim",
		Email:          "ckim@example.com",
		SchoolEmail:    "ckim@campus.edu",
		PersonalEmail:  &personal,
		UniversityName: "Campus University",
		Phone:          &phone,
		Role:           domain.RoleUser,
		Status:         domain.UserStatusActive,
	}
}

func marshalKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	return keys
}

func TestPublicUserViewHidesContactUntilApproved(t *testing.T) {
	user := sampleUser()

	// unverified: contact keys must be absent, not null
	keys := marshalKeys(t, PublicUserView(user))
	assert.NotContains(t, keys, "email")
	assert.NotContains(t, keys, "phone")
	assert.NotContains(t, keys, "personalEmail")
	assert.Contains(t, keys, "name")
	assert.Contains(t, keys, "isVerified")

	// verified but not approved: still hidden
	user.IsVerified = true
	keys = marshalKeys(t, PublicUserView(user))
	assert.NotContains(t, keys, "email")
	assert.NotContains(t, keys, "phone")

	// verified and approved: visible
	user.CanShowContact = true
	keys = marshalKeys(t, PublicUserView(user))
	assert.Contains(t, keys, "email")
	assert.Contains(t, keys, "phone")
	assert.Contains(t, keys, "personalEmail")
}

func TestFullUserViewAlwaysCarriesContact(t *testing.T) {
	user := sampleUser()
	keys := marshalKeys(t, FullUserView(user))
	assert.Contains(t, keys, "email")
	assert.Contains(t, keys, "phone")
	assert.Contains(t, keys, "schoolEmail")
}

func TestUserResponseNeverLeaksPasswordHash(t *testing.T) {
	user := sampleUser()
	user.PasswordHash = "$2a$10$secret"
	raw, err := json.Marshal(FullUserView(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
