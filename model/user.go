package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user in the system
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // Never expose password in JSON
	FullName     string `gorm:"not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Country      string `gorm:"type:varchar(100)" json:"country,omitempty"`
	Bio          string `gorm:"type:text" json:"bio,omitempty"`
	ProfilePic   string `gorm:"type:varchar(255)" json:"profile_pic,omitempty"`
	Role         string `gorm:"type:varchar(20);default:'user'" json:"role"` // user, admin

	// SavedUniversities holds reference tokens for the user's saved
	// universities. Entries may be source ids or database ids; the
	// saved-list service keeps the sequence behaving like a set of
	// distinct universities regardless of which form was stored.
	SavedUniversities datatypes.JSONSlice[string] `json:"saved_universities"`

	// Reset token pair: sha256 of the raw token plus its expiry.
	// Always set and cleared together.
	ResetPasswordToken   *string    `gorm:"index;type:varchar(64)" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

// HasResetPending reports whether a password reset is currently pending.
func (u *User) HasResetPending() bool {
	return u.ResetPasswordToken != nil && u.ResetPasswordExpires != nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
