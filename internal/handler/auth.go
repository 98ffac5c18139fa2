package handler

import (
	"context"      // provides context with cancellation for DB calls
	"database/sql" // SQL database interactions
	"net/http"     // HTTP status codes and primitives
	"strings"      // string manipulation utilities
	"time"         // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/sneaker-store/internal/config"     // app configuration
	"github.com/iliyamo/sneaker-store/internal/model"      // domain types
	"github.com/iliyamo/sneaker-store/internal/repository" // DB repositories
	"github.com/iliyamo/sneaker-store/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResp mirrors the token response consumed by the admin client: the
// bearer token, its expiry and the profile fields echoed back flat.
type authResp struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Expires  time.Time `json:"expires"`
}

// Register creates a user and returns a token immediately.  New accounts
// always receive the "user" role; administrators are promoted out of
// band, never through this endpoint.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Username) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be at least 3 characters"})
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid email required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u := model.User{ID: uid, Username: req.Username, Email: req.Email, Role: model.RoleUser}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Token:    access.Token,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Expires:  access.Exp,
	})
}

// Login verifies credentials and returns a fresh token.  A missing user
// and a wrong password produce the same 401 so the endpoint does not
// leak which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u, h.Cfg.TokenTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		Token:    access.Token,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
		Expires:  access.Exp,
	})
}

// Me returns the caller's persisted account record.  The token claims
// only locate the row; the profile served is the current database
// state, so a promotion or email change shows up without reissuing the
// token.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := claimUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token subject"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			// Token outlived the account.
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account no longer exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     string(u.Role),
	})
}
