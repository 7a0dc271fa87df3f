package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, digest string) bool
}

// BcryptHasher salts every digest with fresh randomness, so hashing the same
// password twice yields different digests that both verify.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apierror.Validation(model.ErrInvalidInput, "password must be at most 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify never errors: a malformed digest simply does not match.
func (h *BcryptHasher) Verify(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
