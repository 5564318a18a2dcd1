package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/pkg/util"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", 24)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestManager()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, expiresAt, err := tm.IssueAt("user-123", domain.RoleStudent, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if want := now.Add(24 * time.Hour); !expiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, want)
	}

	claims, err := tm.ValidateAt(token, now)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Role != domain.RoleStudent {
		t.Errorf("role = %q, want %q", claims.Role, domain.RoleStudent)
	}
}

func TestTokenTimeWindow(t *testing.T) {
	tm := newTestManager()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := tm.IssueAt("user-123", domain.RoleStudent, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{name: "one hour in", at: now.Add(time.Hour), wantErr: false},
		{name: "just before expiry", at: now.Add(24*time.Hour - time.Second), wantErr: false},
		{name: "after expiry", at: now.Add(25 * time.Hour), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.ValidateAt(token, tt.at)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAt error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !util.IsCode(err, util.CodeInvalidToken) {
				t.Errorf("expected invalid-token code, got %v", err)
			}
		})
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	tm := newTestManager()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := tm.IssueAt("user-123", domain.RoleStudent, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// flip one byte of the signature segment
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := tm.ValidateAt(tampered, now.Add(time.Minute)); !util.IsCode(err, util.CodeInvalidToken) {
		t.Errorf("tampered token accepted, err = %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := NewTokenManager("secret-a", 24).IssueAt("user-123", domain.RoleAdmin, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokenManager("secret-b", 24)
	if _, err := other.ValidateAt(token, now); !util.IsCode(err, util.CodeInvalidToken) {
		t.Errorf("token signed with a different secret accepted, err = %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	tm := newTestManager()
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Validate(raw); !util.IsCode(err, util.CodeInvalidToken) {
			t.Errorf("Validate(%q) err = %v, want invalid-token", raw, err)
		}
	}
}
