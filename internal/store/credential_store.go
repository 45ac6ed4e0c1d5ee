package store

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"registry-service/internal/model"
)

// CredentialStore answers login queries against the users table. It is
// read-only; accounts are created at bootstrap.
type CredentialStore struct {
	db *gorm.DB
}

// NewCredentialStore creates a credential store over the given database
func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// Verify checks a username/password pair and returns the matching user's id.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *CredentialStore) Verify(username, password string) (uint, bool) {
	var user model.User
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		return 0, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, false
	}

	return user.ID, true
}

// Lookup returns the user with the given id
func (s *CredentialStore) Lookup(userID uint) (*model.User, error) {
	var user model.User
	result := s.db.First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}
