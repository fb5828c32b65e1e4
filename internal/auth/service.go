// Package auth implements credential management: registration, login,
// bearer token issuance/verification and profile updates.
package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
	"github.com/avoronova/go-todo-planner/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var emailPattern = regexp.MustCompile(emailRegex)

type Service struct {
	users  store.UserStore
	hasher *Hasher
	secret []byte

	// compared against on login misses so a nonexistent username costs the
	// same as a wrong password
	dummyHash string
}

func NewService(users store.UserStore, hasher *Hasher, secret []byte) *Service {
	dummy, err := bcrypt.GenerateFromPassword([]byte("equalizer-never-matches"), bcrypt.DefaultCost)
	if err != nil {
		panic("bcrypt self-check failed: " + err.Error())
	}
	return &Service{
		users:     users,
		hasher:    hasher,
		secret:    secret,
		dummyHash: string(dummy),
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	username := input.Username
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if username == "" || input.Password == "" || email == "" || fullName == "" {
		return nil, "", apperrors.Validation("username, password, email and fullName are all required")
	}
	if len(username) < 3 {
		return nil, "", apperrors.Validation("username must be at least 3 characters long")
	}
	if len(input.Password) < 6 {
		return nil, "", apperrors.Validation("password must be at least 6 characters long")
	}
	if !isValidEmail(email) {
		return nil, "", apperrors.Validation("invalid email")
	}
	if len(fullName) < 2 {
		return nil, "", apperrors.Validation("fullName must be at least 2 characters long")
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, "", apperrors.Internal("cannot hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperrors.Internal("cannot create token", err)
	}
	return user, token, nil
}

// Login authenticates a username/password pair. A nonexistent username and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		_ = s.hasher.Compare(ctx, s.dummyHash, password)
		return nil, "", apperrors.Auth("invalid credentials")
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		return nil, "", apperrors.Auth("invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", apperrors.Internal("cannot create token", err)
	}
	return user, token, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

type ProfilePatch struct {
	Email           *string `json:"email"`
	FullName        *string `json:"fullName"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, patch ProfilePatch) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if !isValidEmail(email) {
			return nil, apperrors.Validation("invalid email")
		}
		user.Email = email
	}
	if patch.FullName != nil {
		fullName := strings.TrimSpace(*patch.FullName)
		if len(fullName) < 2 {
			return nil, apperrors.Validation("fullName must be at least 2 characters long")
		}
		user.FullName = fullName
	}
	if patch.NewPassword != nil {
		if patch.CurrentPassword == nil {
			return nil, apperrors.Validation("currentPassword is required to change the password")
		}
		if err := s.hasher.Compare(ctx, user.PasswordHash, *patch.CurrentPassword); err != nil {
			return nil, apperrors.Auth("invalid credentials")
		}
		if len(*patch.NewPassword) < 6 {
			return nil, apperrors.Validation("password must be at least 6 characters long")
		}
		hash, err := s.hasher.Hash(ctx, *patch.NewPassword)
		if err != nil {
			return nil, apperrors.Internal("cannot hash password", err)
		}
		user.PasswordHash = hash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
