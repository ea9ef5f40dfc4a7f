package services

import (
	"testing"
	"time"

	"github.com/b-shhhh/university-finder-ai/model"
	authutil "github.com/b-shhhh/university-finder-ai/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResetService(db *gorm.DB) *PasswordResetService {
	// No SMTP configuration in tests; outside production the service
	// logs the link instead of failing.
	return NewPasswordResetService(db, NewEmailService(), false)
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func TestRequestResetUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	existing := createUser(t, db, "alice@example.com")

	result, err := svc.RequestReset("nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, result.ResetToken)
	assert.Empty(t, result.ResetLink)

	// No reset state appears on anyone else's record.
	assert.False(t, reloadUser(t, db, existing.ID).HasResetPending())
}

func TestResetFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	user := createUser(t, db, "alice@example.com")

	result, err := svc.RequestReset("Alice@Example.com")
	require.NoError(t, err)
	require.NotEmpty(t, result.ResetToken)
	assert.Contains(t, result.ResetLink, result.ResetToken)

	stored := reloadUser(t, db, user.ID)
	require.True(t, stored.HasResetPending())
	// Only the hash is persisted.
	assert.NotEqual(t, result.ResetToken, *stored.ResetPasswordToken)
	assert.Equal(t, hashResetToken(result.ResetToken), *stored.ResetPasswordToken)

	require.NoError(t, svc.ConsumeReset(result.ResetToken, "brand-new-password"))

	stored = reloadUser(t, db, user.ID)
	assert.False(t, stored.HasResetPending())
	assert.NoError(t, authutil.VerifyPassword(stored.PasswordHash, "brand-new-password"))
}

func TestResetTokenIsSingleUse(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	createUser(t, db, "alice@example.com")

	result, err := svc.RequestReset("alice@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.ConsumeReset(result.ResetToken, "first-new-password"))
	assert.ErrorIs(t, svc.ConsumeReset(result.ResetToken, "second-new-password"), ErrInvalidResetToken)
}

func TestExpiredResetTokenRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	user := createUser(t, db, "alice@example.com")

	result, err := svc.RequestReset("alice@example.com")
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Update("reset_password_expires", past).Error)

	err = svc.ConsumeReset(result.ResetToken, "new-password-123")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// The failed attempt changes nothing.
	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash)
	assert.True(t, stored.HasResetPending())
}

func TestReRequestInvalidatesPreviousToken(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	createUser(t, db, "alice@example.com")

	first, err := svc.RequestReset("alice@example.com")
	require.NoError(t, err)
	second, err := svc.RequestReset("alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first.ResetToken, second.ResetToken)

	assert.ErrorIs(t, svc.ConsumeReset(first.ResetToken, "new-password-123"), ErrInvalidResetToken)
	assert.NoError(t, svc.ConsumeReset(second.ResetToken, "new-password-123"))
}

func TestConsumeResetGarbageToken(t *testing.T) {
	db := newTestDB(t)
	svc := newResetService(db)

	createUser(t, db, "alice@example.com")

	assert.ErrorIs(t, svc.ConsumeReset("", "new-password-123"), ErrInvalidResetToken)
	assert.ErrorIs(t, svc.ConsumeReset("deadbeef", "new-password-123"), ErrInvalidResetToken)
}
