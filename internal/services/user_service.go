package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mriera/bloglist-backend/internal/apperr"
	"github.com/mriera/bloglist-backend/internal/auth"
	"github.com/mriera/bloglist-backend/internal/metrics"
	"github.com/mriera/bloglist-backend/internal/models"
	repo "github.com/mriera/bloglist-backend/internal/repository"
)

const minUsernameLen = 3
const minPasswordLen = 3

type UserService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, tm: tm}
}

// Register validates and creates a new user. The password length check
// runs before hashing: a hash of a too-short password would hide the
// constraint from the store.
func (s *UserService) Register(ctx context.Context, username, name, password string) (models.User, error) {
	// Lengths count runes, not bytes: a two-character multibyte
	// username is still too short.
	if utf8.RuneCountInString(username) < minUsernameLen {
		return models.User{}, apperr.Validation(fmt.Sprintf(
			"username '%s' is shorter than the minimum allowed length (%d)", username, minUsernameLen))
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return models.User{}, apperr.Validation(fmt.Sprintf(
			"password must be at least %d characters long", minPasswordLen))
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return models.User{}, apperr.Validation("expected username to be unique")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	// The unique index backs up the pre-check against racing registers.
	u, err := s.users.Create(ctx, models.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, err
	}
	metrics.UsersRegistered.Inc()
	return u, nil
}

// Login authenticates and issues a token. Unknown username and wrong
// password collapse into one error so the response leaks neither.
func (s *UserService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			metrics.Logins.WithLabelValues("failure").Inc()
			return "", models.User{}, apperr.ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.Logins.WithLabelValues("failure").Inc()
		return "", models.User{}, apperr.ErrInvalidCredentials
	}
	token, err := s.tm.Issue(u.ID.Hex())
	if err != nil {
		return "", models.User{}, err
	}
	metrics.Logins.WithLabelValues("success").Inc()
	return token, u, nil
}

// UserFromToken resolves a verified token to the stored user. Any
// failure along the way reads as a missing/invalid token to the caller.
func (s *UserService) UserFromToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperr.ErrMissingToken
	}
	uid, err := s.tm.Verify(token)
	if err != nil {
		return models.User{}, err
	}
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return models.User{}, apperr.ErrMalformedToken
	}
	u, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrMissingToken
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
