package auth

import (
	"github.com/mthstanley/stockpot/internal/domain/user"
)

// AuthUser holds the login credentials bound to an app user.
type AuthUser struct {
	ID           int        `gorm:"primaryKey;autoIncrement" json:"-"`
	Username     string     `gorm:"uniqueIndex;not null;column:username" json:"-"`
	PasswordHash string     `gorm:"not null;column:password_hash" json:"-"`
	AppUserID    int        `gorm:"index;not null;column:app_user_id" json:"-"`
	AppUser      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AppUserID;references:ID" json:"user,omitempty"`
}

func (AuthUser) TableName() string { return "auth_user" }
