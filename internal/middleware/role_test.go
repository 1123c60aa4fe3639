package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/utils"
)

// runRole exercises RequireRole with the given context role ("" = role
// never set) and reports the recorder and whether the next handler ran.
func runRole(t *testing.T, role string, next echo.HandlerFunc, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/content", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	nextRan := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		nextRan = true
		return next(c)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, nextRan
}

func TestRequireRoleRejectsNonAdmin(t *testing.T) {
	rec, nextRan := runRole(t, model.RoleUser, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, model.RoleAdmin)
	if nextRan {
		t.Fatal("handler ran for a non-admin user")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if out["success"] != false {
		t.Fatalf("success = %v, want false", out["success"])
	}
	if msg, _ := out["error"].(string); !strings.Contains(msg, "forbidden") {
		t.Fatalf("error %q should mention forbidden", msg)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec, nextRan := runRole(t, "", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, model.RoleAdmin)
	if nextRan {
		t.Fatal("handler ran without a role in context")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	rec, nextRan := runRole(t, model.RoleAdmin, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, model.RoleAdmin)
	if !nextRan {
		t.Fatal("handler did not run for an admin user")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// A non-admin posting an invalid content payload must see 403, not the
// handler's 400: the role gate sits before any body validation.
func TestRequireRoleGatePrecedesValidation(t *testing.T) {
	rec, nextRan := runRole(t, model.RoleUser, func(c echo.Context) error {
		return utils.Fail(c, http.StatusBadRequest, "please provide title, description, and type")
	}, model.RoleAdmin)
	if nextRan {
		t.Fatal("validation ran before the role gate")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 (never 400 for a role rejection)", rec.Code)
	}
}
