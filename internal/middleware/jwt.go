package middleware // package middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/repository"
	"github.com/ekinsu/learnhub/internal/utils"
)

// UserFinder is the narrow slice of the user repository the auth
// middleware needs: resolving a token subject to a live user record.
// *repository.UserRepo satisfies it.
type UserFinder interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// confirms the subject still exists, and injects "user_id" (uint64) and
// "role" (string) into the request context for handlers and RequireRole.
//
// Each failure mode gets its own message so clients can tell why a request
// was rejected: missing header, malformed token, expired token, bad
// signature, or a user that no longer exists. All of them are 401.
func JWTAuth(secret string, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return utils.Fail(c, http.StatusUnauthorized, "not authorized, no token provided")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject any signing method other than HMAC before
				// touching the secret.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					return utils.Fail(c, http.StatusUnauthorized, "not authorized, token has expired")
				case errors.Is(err, jwt.ErrTokenSignatureInvalid):
					return utils.Fail(c, http.StatusUnauthorized, "not authorized, invalid token signature")
				default:
					return utils.Fail(c, http.StatusUnauthorized, "not authorized, token is malformed")
				}
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return utils.Fail(c, http.StatusUnauthorized, "not authorized, invalid claims")
			}
			sub, ok := claims["sub"].(float64) // numeric claims decode as float64
			if !ok || sub <= 0 {
				return utils.Fail(c, http.StatusUnauthorized, "not authorized, invalid subject")
			}
			userID := uint64(sub)

			// The token may outlive its user; confirm the subject still
			// exists and take the role from the live record rather than
			// the (possibly stale) claim.
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return utils.Fail(c, http.StatusUnauthorized, "not authorized, user no longer exists")
				}
				return utils.Fail(c, http.StatusInternalServerError, "could not verify user")
			}

			c.Set("user_id", userID)
			c.Set("role", u.Role)
			return next(c)
		}
	}
}
