package controllers

import (
	"time"

	"github.com/ruangkopi/cafe/app/models"
	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/ctx"
)

type UserController struct {
	users *services.UserService
}

type profileResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func profileOf(u *models.User) profileResponse {
	return profileResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone, CreatedAt: u.CreatedAt}
}

// Show handles GET /users/{id}.
func (u *UserController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	u.show(c, id)
}

// Update handles PUT /users/{id}.
func (u *UserController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	u.update(c, id)
}

// Destroy handles DELETE /users/{id}.
func (u *UserController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	user, err := u.users.Delete(c.Context(), identity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{"message": "User deleted", "user": profileOf(user)})
}

// Profile handles GET /profile for the current user.
func (u *UserController) Profile(c *ctx.Context) {
	u.show(c, identity(c).UserID)
}

// UpdateProfile handles POST /profile for the current user.
func (u *UserController) UpdateProfile(c *ctx.Context) {
	u.update(c, identity(c).UserID)
}

func (u *UserController) show(c *ctx.Context, id uint) {
	user, err := u.users.Get(c.Context(), identity(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(profileOf(user))
}

func (u *UserController) update(c *ctx.Context, id uint) {
	var in services.ProfileInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := u.users.Update(c.Context(), identity(c), id, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(profileOf(user))
}
