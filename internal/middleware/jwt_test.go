package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ekinsu/learnhub/internal/model"
	"github.com/ekinsu/learnhub/internal/repository"
	"github.com/ekinsu/learnhub/internal/utils"
)

const testSecret = "unit-test-secret"

// fakeUsers satisfies UserFinder without a database.
type fakeUsers struct {
	users map[uint64]*model.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func signedToken(t *testing.T, secret string, userID uint64, role string, ttlMin int) string {
	t.Helper()
	at, err := utils.NewAccessToken(secret, userID, role, ttlMin)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return at.Token
}

// runJWT sends one request through JWTAuth and reports the recorder, the
// decoded body and whether the next handler ran.
func runJWT(t *testing.T, authHeader string, users UserFinder) (*httptest.ResponseRecorder, map[string]any, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/user-insights", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextRan := false
	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		nextRan = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	out := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
	}
	return rec, out, nextRan
}

func TestJWTAuthRejectionModes(t *testing.T) {
	users := &fakeUsers{users: map[uint64]*model.User{
		1: {ID: 1, Name: "Ada", Email: "ada@example.com", Role: model.RoleUser},
	}}

	cases := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "no token"},
		{"malformed token", "Bearer not.a.jwt", "malformed"},
		{"expired token", "Bearer " + signedToken(t, testSecret, 1, model.RoleUser, -5), "expired"},
		{"wrong signature", "Bearer " + signedToken(t, "other-secret", 1, model.RoleUser, 5), "signature"},
		{"deleted user", "Bearer " + signedToken(t, testSecret, 99, model.RoleUser, 5), "no longer exists"},
	}

	seen := map[string]string{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, out, nextRan := runJWT(t, tc.header, users)
			if nextRan {
				t.Fatal("next handler ran on a rejected request")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if out["success"] != false {
				t.Fatalf("success = %v, want false", out["success"])
			}
			msg, _ := out["error"].(string)
			if !strings.Contains(msg, tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", msg, tc.wantMsg)
			}
			seen[tc.name] = msg
		})
	}

	// Each rejection mode must be tellable apart from the body alone.
	byMsg := map[string]string{}
	for name, msg := range seen {
		if prev, dup := byMsg[msg]; dup {
			t.Fatalf("cases %q and %q share the message %q", prev, name, msg)
		}
		byMsg[msg] = name
	}
}

func TestJWTAuthValidTokenInjectsLiveUser(t *testing.T) {
	users := &fakeUsers{users: map[uint64]*model.User{
		7: {ID: 7, Name: "Grace", Email: "grace@example.com", Role: model.RoleUser},
	}}
	// The claim says admin; the stored record says user. The live record
	// must win so a demoted user cannot ride out an old token.
	token := signedToken(t, testSecret, 7, model.RoleAdmin, 5)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/user-insights", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint64
	var gotRole string
	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		gotID, _ = c.Get("user_id").(uint64)
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != 7 {
		t.Fatalf("user_id = %d, want 7", gotID)
	}
	if gotRole != model.RoleUser {
		t.Fatalf("role = %q, want %q (live record, not claim)", gotRole, model.RoleUser)
	}
}
