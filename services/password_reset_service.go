package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/b-shhhh/university-finder-ai/model"
	authutil "github.com/b-shhhh/university-finder-ai/utils/auth"
	"gorm.io/gorm"
)

// ErrInvalidResetToken covers both a wrong token and an expired one.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// resetTokenTTL is how long an issued reset token stays valid.
const resetTokenTTL = time.Hour

// PasswordResetService implements the reset token lifecycle: a single
// hashed token/expiry pair stored on the user record, overwritten by
// each new request and cleared on consumption.
type PasswordResetService struct {
	db         *gorm.DB
	mailer     *EmailService
	production bool
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(db *gorm.DB, mailer *EmailService, production bool) *PasswordResetService {
	return &PasswordResetService{db: db, mailer: mailer, production: production}
}

// ResetRequestResult is returned by RequestReset. The token and link
// are only populated outside production to ease manual testing; the
// raw token is never persisted.
type ResetRequestResult struct {
	ResetToken string `json:"reset_token,omitempty"`
	ResetLink  string `json:"reset_link,omitempty"`
}

// RequestReset issues a reset token for the given email. An unknown
// email yields the same empty success result with no side effects, so
// the endpoint cannot be used to probe which addresses are registered.
func (s *PasswordResetService) RequestReset(email string) (*ResetRequestResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ResetRequestResult{}, nil
		}
		return nil, err
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return nil, err
	}
	hashed := hashResetToken(rawToken)
	expires := time.Now().Add(resetTokenTTL)

	// A single slot holds the pending pair: issuing a new token
	// invalidates any previous one.
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":   hashed,
		"reset_password_expires": expires,
	}).Error; err != nil {
		return nil, err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.mailer.FrontendURL(), "/"), rawToken)

	if err := s.mailer.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		if errors.Is(err, ErrMailerNotConfigured) && !s.production {
			log.Printf("mailer not configured, reset link for %s: %s", user.Email, resetLink)
		} else {
			return nil, err
		}
	}

	result := &ResetRequestResult{}
	if !s.production {
		result.ResetToken = rawToken
		result.ResetLink = resetLink
	}
	return result, nil
}

// ConsumeReset exchanges a valid raw token for a new password. The
// lookup requires both a matching stored hash and an expiry strictly in
// the future; anything else fails with the one generic error and no
// state change. On success the pending pair is cleared, so the token
// is single-use.
func (s *PasswordResetService) ConsumeReset(rawToken, newPassword string) error {
	if rawToken == "" {
		return ErrInvalidResetToken
	}
	hashed := hashResetToken(rawToken)

	var user model.User
	err := s.db.
		Where("reset_password_token = ? AND reset_password_expires > ?", hashed, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	passwordHash, err := authutil.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":          passwordHash,
		"reset_password_token":   nil,
		"reset_password_expires": nil,
	}).Error
}

// generateResetToken returns 256 bits of hex-encoded randomness.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashResetToken is the fast one-way hash applied to reset tokens
// before they touch storage. Unlike passwords, the tokens themselves
// are high-entropy, so sha256 is sufficient.
func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
