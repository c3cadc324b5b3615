package services

import (
	"context"
	"strings"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/repositories"
	"github.com/ruangkopi/cafe/pkg/auth"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/validate"
)

// ProfileInput is a partial profile update. Absent fields are unchanged; an
// empty phone clears it. Role is not accepted here.
type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns a profile the actor may see: their own, or any for an admin.
func (s *UserService) Get(ctx context.Context, actor auth.Identity, id uint) (*models.User, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	if !actor.CanAccessUser(id) {
		return nil, forbidden("You can only access your own profile")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	return user, nil
}

// Update applies in to the profile of id.
func (s *UserService) Update(ctx context.Context, actor auth.Identity, id uint, in ProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalidInput("Name cannot be empty")
		}
		if len([]rune(name)) > 255 {
			return nil, invalidInput("Name is too long")
		}
		user.Name = name
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validate.Email(email) {
			return nil, invalidInput("Invalid email format")
		}
		taken, err := s.users.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflict("Email already in use")
		}
		user.Email = email
	}

	if in.Phone != nil {
		phone := trimmedOrNil(in.Phone)
		if phone != nil && len(*phone) > 30 {
			return nil, invalidInput("Phone is too long")
		}
		user.Phone = phone
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, conflict("Email already in use")
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("profile updated", "user_id", user.ID, "by", actor.UserID)
	return user, nil
}

// Delete removes an account with its orders and reviews. Admin only.
func (s *UserService) Delete(ctx context.Context, actor auth.Identity, id uint) (*models.User, error) {
	if actor.UserID == 0 {
		return nil, unauthenticated()
	}
	if !actor.IsAdmin() {
		return nil, forbidden("Admin access required")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	n, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, notFound("User not found")
	}

	logger.WithCtx(ctx).Info("user deleted", "user_id", id, "by", actor.UserID)
	return user, nil
}
