package models

import "time"

// UserModel is an account. Email is the identity key: repeated OAuth
// callbacks for the same email update the existing row, never duplicate it.
type UserModel struct {
	Base
	Name          string     `json:"name"`
	Email         string     `json:"email"        gorm:"uniqueIndex;not null"`
	Avatar        string     `json:"avatar"` // stored filename under the static dir, not a URL
	Provider      string     `json:"provider"     gorm:"index"`
	ProviderUID   string     `json:"-"            gorm:"index"`
	PasswordHash  *string    `json:"-"` // nil for OAuth-born accounts; they cannot log in by secret
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }

// HasPassword reports whether the account can authenticate with a local password.
func (u *UserModel) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
