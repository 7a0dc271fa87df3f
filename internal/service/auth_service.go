package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

type userStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

type AuthService struct {
	users     userStore
	hasher    PasswordHasher
	tokens    *TokenService
	accessTTL time.Duration
}

func NewAuthService(users userStore, hasher PasswordHasher, tokens *TokenService, accessTTL time.Duration) (*AuthService, error) {
	if accessTTL <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
	}, nil
}

// AccessTTL is the lifetime given to every token this service issues.
func (s *AuthService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateStruct(req); err != nil {
		return model.User{}, err
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, conflictError(model.ErrUserAlreadyExists, req)
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, conflictError(model.ErrEmailAlreadyExists, req)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, model.ErrUserAlreadyExists) || errors.Is(err, model.ErrEmailAlreadyExists) {
		return model.User{}, conflictError(err, req)
	}
	if err != nil {
		return model.User{}, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string) (model.User, error) {
	invalid := apierror.Unauthorized(model.ErrInvalidCredentials, "Incorrect username or password")

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, invalid
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, invalid
	}
	if err != nil {
		return model.User{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, invalid
	}

	return user, nil
}

// Login authenticates and issues an access token with the configured lifetime.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.AccessToken, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return model.AccessToken{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user.Username, s.accessTTL)
	if err != nil {
		return model.AccessToken{}, err
	}

	return model.AccessToken{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// Resolve maps a raw token to its user. Every token or lookup failure
// collapses into ErrUnauthenticated; only store outages surface as-is.
func (s *AuthService) Resolve(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, model.ErrUnauthenticated
	}

	subject, err := s.tokens.Validate(token)
	if err != nil {
		slog.Debug("access token rejected", "reason", err.Error())
		return model.User{}, model.ErrUnauthenticated
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, fmt.Errorf("resolve session: %w", err)
	}

	return user, nil
}

// conflictError names the field that collided and echoes the submitted value.
func conflictError(cause error, req model.RegisterRequest) error {
	if errors.Is(cause, model.ErrEmailAlreadyExists) {
		return apierror.Conflict(model.ErrEmailAlreadyExists, "Email already registered", req.Email)
	}
	return apierror.Conflict(model.ErrUserAlreadyExists, "Username already registered", req.Username)
}
