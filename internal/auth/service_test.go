package auth

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"attendance-monitor/internal/shared"
)

func newTestService(expirationHours int) *Service {
	return &Service{
		security: shared.SecurityConfig{
			JWTSecret:          "test-secret-do-not-use-in-production",
			JWTExpirationHours: expirationHours,
			BCryptCost:         4,
			ResetTokenTTL:      time.Hour,
		},
		baseURL: "http://localhost:8080",
		logger:  zap.NewNop(),
		now:     time.Now,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestService(24)

	token, err := svc.issueToken("65f000000000000000000001", shared.RoleProfessor, "jdoe", "John Doe", "")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != "65f000000000000000000001" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "65f000000000000000000001")
	}
	if claims.Role != shared.RoleProfessor {
		t.Errorf("Role = %q, want %q", claims.Role, shared.RoleProfessor)
	}
	if claims.Username != "jdoe" {
		t.Errorf("Username = %q, want %q", claims.Username, "jdoe")
	}
	if claims.Name != "John Doe" {
		t.Errorf("Name = %q, want %q", claims.Name, "John Doe")
	}
	if claims.Section != "" {
		t.Errorf("Section = %q, want empty for professors", claims.Section)
	}
	if claims.ID == "" {
		t.Error("expected a non-empty token id")
	}
}

func TestStudentTokenCarriesSection(t *testing.T) {
	svc := newTestService(24)

	token, err := svc.issueToken("65f000000000000000000002", shared.RoleStudent, "", "Maria Santos", "BSIT-2A")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Role != shared.RoleStudent {
		t.Errorf("Role = %q, want %q", claims.Role, shared.RoleStudent)
	}
	if claims.Section != "BSIT-2A" {
		t.Errorf("Section = %q, want %q", claims.Section, "BSIT-2A")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestService(1)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.issueToken("65f000000000000000000003", shared.RoleProfessor, "jdoe", "John Doe", "")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService(24)

	token, err := svc.issueToken("65f000000000000000000004", shared.RoleProfessor, "jdoe", "John Doe", "")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	other := newTestService(24)
	other.security.JWTSecret = "a-different-secret"
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestNewResetToken(t *testing.T) {
	svc := newTestService(24)

	first := svc.newResetToken()
	second := svc.newResetToken()

	if first == second {
		t.Error("reset tokens must be unique")
	}
	if len(first) < 32 {
		t.Errorf("reset token too short: %d chars", len(first))
	}
	if strings.Contains(first, "-") {
		t.Errorf("reset token should not contain dashes: %q", first)
	}
}
