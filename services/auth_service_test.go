package services

import (
	"testing"

	"formhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *recordingMailer) {
	t.Helper()
	mailer := &recordingMailer{}
	svc := NewAuthService(newTestDB(t), "test-secret", 1, mailer, "http://localhost:8080")
	return svc, mailer
}

func TestRegisterAndVerify(t *testing.T) {
	svc, mailer := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.False(t, user.Verified)
	assert.NotEmpty(t, user.VerificationToken)
	assert.Equal(t, models.RoleAdmin, user.Role)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "new@example.com", mailer.sent[0].to)

	// Login before verification is refused.
	_, _, err = svc.Login(&LoginRequest{Email: "new@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Verify(user.VerificationToken))

	token, logged, err := svc.Login(&LoginRequest{Email: "new@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, logged.Verified)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{Email: "dup@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterRequest{Email: "dup@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{Email: "weak@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{Email: "u@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.NoError(t, svc.Verify(user.VerificationToken))

	_, _, err = svc.Login(&LoginRequest{Email: "u@example.com", Password: "not-the-one"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyUnknownToken(t *testing.T) {
	svc, _ := newAuthService(t)

	err := svc.Verify("bogus-token")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestRegisterRespondent(t *testing.T) {
	svc, mailer := newAuthService(t)

	token, err := svc.RegisterRespondent(&RegisterRequest{Email: "resp@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Empty(t, mailer.sent) // no verification round-trip

	// Created verified: an immediate login works.
	_, user, err := svc.Login(&LoginRequest{Email: "resp@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Equal(t, models.RoleRespondent, user.Role)
}
