package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"attendance-monitor/internal/auth"
	"attendance-monitor/internal/httpapi/util"
	"attendance-monitor/internal/shared"
)

// issueTestToken signs a token with the same secret newAuthService uses.
func issueTestToken(t *testing.T, role string) string {
	t.Helper()

	claims := auth.Claims{
		UserID: "65f000000000000000000001",
		Role:   role,
		Name:   "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(&shared.Collections{}, nil, shared.SecurityConfig{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		BCryptCost:         4,
	}, "http://localhost:8080", zap.NewNop())
}

func okHandler(t *testing.T, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := util.ClaimsFromContext(r.Context())
		if !ok {
			t.Error("claims missing from request context")
		} else if wantRole != "" && claims.Role != wantRole {
			t.Errorf("Role = %q, want %q", claims.Role, wantRole)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	authSvc := newAuthService(t)
	handler := AuthMiddleware(authSvc)(okHandler(t, shared.RoleProfessor))

	t.Run("missing header rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sections", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sections", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid token passes with claims", func(t *testing.T) {
		token := issueTestToken(t, shared.RoleProfessor)
		req := httptest.NewRequest(http.MethodGet, "/api/sections", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestRequireRole(t *testing.T) {
	authSvc := newAuthService(t)
	protected := AuthMiddleware(authSvc)(RequireRole(shared.RoleProfessor)(okHandler(t, "")))

	t.Run("matching role passes", func(t *testing.T) {
		token := issueTestToken(t, shared.RoleProfessor)
		req := httptest.NewRequest(http.MethodGet, "/api/sections", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("wrong role forbidden", func(t *testing.T) {
		token := issueTestToken(t, shared.RoleStudent)
		req := httptest.NewRequest(http.MethodGet, "/api/sections", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})
}
