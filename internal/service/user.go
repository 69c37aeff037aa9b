package service

import (
	"SmartDocs/internal/model"
	"SmartDocs/internal/repo"
	"SmartDocs/internal/role"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, login and identity lookups. Credential
// mechanics end here: everything past this layer works with an already
// authenticated (user id, role) pair.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register creates a user with a bcrypt-hashed password. The role string is
// validated against the closed role set before anything is written.
func (s *UserService) Register(ctx context.Context, username, fullName, email, password, roleName string) (*model.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, ErrInvalidInput
	}
	rl, err := role.Parse(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}

	if existing, err := s.repo.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrLoginTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing, err := s.repo.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username: username,
		FullName: fullName,
		Email:    email,
		Password: string(hash),
		Role:     rl,
	}
	return s.repo.CreateUser(ctx, user)
}

// Login verifies credentials and returns the user on success.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID resolves the identity carried by an auth token into a full user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
