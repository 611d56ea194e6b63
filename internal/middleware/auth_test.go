package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallever/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

type stubValidator struct {
	claims *service.Claims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*service.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			mw := AuthMiddleware(&stubValidator{claims: &service.Claims{UserID: "u", Role: "admin"}}, zap.NewNop())
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			path := "/api/routes/" + pathSuffix
			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	mw := AuthMiddleware(&stubValidator{claims: &service.Claims{UserID: "u", Role: "admin"}}, zap.NewNop())
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer a b"} {
		req := httptest.NewRequest("GET", "/api/routes/orders", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	expired := &stubValidator{err: fmt.Errorf("failed to parse token: %w", jwt.ErrTokenExpired)}
	handler := AuthMiddleware(expired, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/routes/orders", nil)
	req.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthPutsClaimsOnContext(t *testing.T) {
	valid := &stubValidator{claims: &service.Claims{UserID: "user-42", Role: "admin"}}

	var gotID, gotRole string
	handler := AuthMiddleware(valid, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		gotRole, _ = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/routes/orders", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotID != "user-42" || gotRole != "admin" {
		t.Errorf("expected claims on context, got id=%q role=%q", gotID, gotRole)
	}
}

func TestRequireAdminBlocksOtherRoles(t *testing.T) {
	handler := AuthMiddleware(&stubValidator{claims: &service.Claims{UserID: "u", Role: "viewer"}}, zap.NewNop())(
		RequireAdmin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	req := httptest.NewRequest("DELETE", "/api/routes/products/p1", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin role, got %d", w.Code)
	}
}
