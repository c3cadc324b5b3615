package controllers

import (
	"net/http"

	"github.com/ruangkopi/cafe/app/services"
	"github.com/ruangkopi/cafe/pkg/ctx"
	"github.com/ruangkopi/cafe/pkg/logger"
	"github.com/ruangkopi/cafe/pkg/middleware"
	"github.com/ruangkopi/cafe/pkg/session"
)

type AuthController struct {
	auth *services.AuthService
}

// Register handles POST /auth/register.
func (a *AuthController) Register(c *ctx.Context) {
	var in services.RegisterInput
	if !c.BindJSON(&in) {
		return
	}
	user, err := a.auth.Register(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(user)
}

// Login handles POST /auth/login. Browsers get a fresh session cookie; API
// clients use the returned token.
func (a *AuthController) Login(c *ctx.Context) {
	var in services.LoginInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := a.auth.Login(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}

	if sess := session.FromCtx(c.R); sess != nil {
		if err := sess.Regenerate(c.Context()); err != nil {
			logger.WithCtx(c.Context()).Warn("login: regenerate session", "error", err)
		}
		sess.Set(middleware.SessionUserID, res.User.ID)
		sess.Set(middleware.SessionRole, res.User.Role)
		if err := sess.Save(c.Context(), c.W); err != nil {
			fail(c, err)
			return
		}
	}
	c.Success(res)
}

// Logout handles POST /auth/logout.
func (a *AuthController) Logout(c *ctx.Context) {
	if sess := session.FromCtx(c.R); sess != nil {
		if err := sess.Destroy(c.Context(), c.W); err != nil {
			logger.WithCtx(c.Context()).Warn("logout: destroy session", "error", err)
		}
	}
	c.Success(map[string]string{"message": "Logged out successfully"})
}

type meResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me handles GET /auth/me.
func (a *AuthController) Me(c *ctx.Context) {
	user, err := a.auth.Me(c.Context(), identity(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
}
