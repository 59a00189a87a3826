package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin is an operator allowed to browse reports.
type Admin struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	DisplayName  string `json:"display_name"`
}

func (Admin) TableName() string { return "admins" }

// SetPassword stores the bcrypt hash of plain.
func (a *Admin) SetPassword(plain string) error {
	if plain == "" {
		return errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (a *Admin) CheckPassword(plain string) bool {
	if a.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// BeforeCreate is a GORM hook that normalizes the username and falls back to
// it for an empty display name.
func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	a.Username = strings.ToLower(strings.TrimSpace(a.Username))
	if a.Username == "" {
		return errors.New("username must not be empty")
	}
	if a.DisplayName == "" {
		a.DisplayName = a.Username
	}
	return
}
