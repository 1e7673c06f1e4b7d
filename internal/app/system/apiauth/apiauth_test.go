// internal/app/system/apiauth/apiauth_test.go
package apiauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tandemhq/tandem/internal/domain/models"
)

func protected(t *testing.T, m *Middleware) (http.Handler, *models.UserID) {
	t.Helper()
	var seen models.UserID
	h := m.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestRequireValidToken(t *testing.T) {
	m := New("test-secret")
	h, seen := protected(t, m)

	tok, err := m.IssueToken("user-1", time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != "user-1" {
		t.Fatalf("UserID = %q, want user-1", *seen)
	}
}

func TestRequireRejections(t *testing.T) {
	m := New("test-secret")
	h, _ := protected(t, m)

	expired, err := m.IssueToken("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	other, err := New("other-secret").IssueToken("user-1", time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage", "Bearer not-a-token"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + other},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, rec.Code)
		}
	}
}

func TestUserIDOutsideMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := UserID(req.Context()); id != "" {
		t.Fatalf("UserID = %q, want empty", id)
	}
}
