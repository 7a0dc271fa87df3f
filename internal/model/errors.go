package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username already registered")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")

	// ErrUnauthenticated is the single outcome of every failed session resolution.
	ErrUnauthenticated = errors.New("could not validate credentials")

	// Favorite related errors
	ErrFavoriteNotFound = errors.New("favorite not found")

	// Weather related errors
	ErrCityNotFound = errors.New("city not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
