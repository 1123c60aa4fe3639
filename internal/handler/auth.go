package handler

import (
	"context"  // provides context with cancellation for DB calls
	"errors"   // sentinel error matching
	"net/http" // HTTP status codes and primitives
	"regexp"   // email shape check
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/ekinsu/learnhub/internal/config"     // app configuration
	"github.com/ekinsu/learnhub/internal/model"      // domain models
	"github.com/ekinsu/learnhub/internal/repository" // DB repositories
	"github.com/ekinsu/learnhub/internal/utils"      // helpers (hashing, tokens, envelope)
)

// emailRe is a light shape check; real validation happens when the
// confirmation mail bounces. Matches the check the platform always used.
var emailRe = regexp.MustCompile(`^[\w.+-]+@[\w-]+(\.[\w-]+)+$`)

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
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      string   `json:"role"` // user | admin, default user
	Interests []string `json:"interests"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is what handlers expose about a user. The password hash has
// no place here by construction.
type userSummary struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
}

func summarize(u *model.User) userSummary {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return userSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Interests: interests}
}

// Register creates a user. No token is issued; clients log in afterwards.
// A duplicate email is a validation failure (400), not a server error.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return utils.Fail(c, http.StatusBadRequest, "please provide name, email, and password")
	}
	if !emailRe.MatchString(req.Email) {
		return utils.Fail(c, http.StatusBadRequest, "please provide a valid email")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return utils.Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return utils.Fail(c, http.StatusBadRequest, "role must be 'user' or 'admin'")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, req.Interests, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return utils.Fail(c, http.StatusBadRequest, "email already registered")
		}
		return utils.Fail(c, http.StatusInternalServerError, "failed to register user")
	}

	return utils.Message(c, http.StatusCreated, "User registered successfully. Please log in.")
}

// Login verifies credentials and returns a bearer token plus the user
// summary. Both unknown email and wrong password answer with the same
// generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return utils.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return utils.Fail(c, http.StatusBadRequest, "please provide an email and password")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.Fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return utils.Fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return utils.Fail(c, http.StatusInternalServerError, "issue token failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"token":   access.Token,
		"expires": access.Exp,
		"user":    summarize(u),
	})
}

// Me returns the authenticated user's summary, re-read from the database
// in case the profile changed since the token was issued.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.Fail(c, http.StatusUnauthorized, "not authorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.Fail(c, http.StatusNotFound, "user not found")
		}
		return utils.Fail(c, http.StatusInternalServerError, "query failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": summarize(u)})
}
