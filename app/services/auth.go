package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/logger"
	"gorm.io/gorm"
)

// RegisterInput is the self-service signup body.
type RegisterInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Phone    *string `json:"phone" validate:"max=30"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the account and a bearer token for API clients.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a CUSTOMER account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := checkInput(&in); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    trimmedOrNil(in.Phone),
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflict("Email already registered")
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials. Accounts still holding a plaintext password
// are upgraded to bcrypt on success.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrUnauthenticated, "Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	ok, legacy := auth.VerifyPassword(user.Password, in.Password)
	if !ok {
		return nil, newError(ErrUnauthenticated, "Invalid email or password")
	}

	log := logger.WithCtx(ctx)
	if legacy {
		if hash, err := auth.HashPassword(in.Password); err == nil {
			if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
				log.Warn("auth: rehash legacy password failed", "user_id", user.ID, "error", err)
			} else {
				user.Password = hash
				log.Info("auth: legacy password rehashed", "user_id", user.ID)
			}
		}
	}

	token, err := auth.GenerateToken(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, actor auth.Identity) (*models.User, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The account was deleted while the session was alive.
		return nil, unauthenticated()
	}
	return user, err
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
