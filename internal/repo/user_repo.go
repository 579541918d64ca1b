// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file manages the reserved users table. Only the
// bootstrap account is written; no request path reads users yet.
package repo

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-optimizer-dashboard/internal/domain"
)

// EnsureBootstrapUser makes sure a user named username exists, hashing
// password with bcrypt. An existing user is left untouched. It reports
// whether a row was created. Blank username or password is a no-op.
func EnsureBootstrapUser(ctx context.Context, db *gorm.DB, username, email, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = username + "@localhost"
	}

	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{Username: username, Email: email, PasswordHash: string(hash)}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, storeErr(err)
	}
	return true, nil
}
