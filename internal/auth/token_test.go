package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/HerbHall/schooldesk/pkg/roles"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-32bytes-long!!"

func newTestTokenService() *TokenService {
	return NewTokenService([]byte(testSecret), 15*time.Minute)
}

func TestIssueAndValidateAccessToken(t *testing.T) {
	ts := newTestTokenService()

	token, err := ts.IssueAccessToken("user-123", "alice", roles.Teacher)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ts.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Role != roles.Teacher {
		t.Errorf("Role = %q, want %q", claims.Role, roles.Teacher)
	}
	if claims.Issuer != Issuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, Issuer)
	}
}

func TestIssueAccessToken_UnknownRole(t *testing.T) {
	ts := newTestTokenService()
	_, err := ts.IssueAccessToken("user-1", "bob", roles.Role("janitor"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	ts1 := NewTokenService([]byte("secret-one-is-32-bytes-long!!!!"), 15*time.Minute)
	ts2 := NewTokenService([]byte("secret-two-is-32-bytes-long!!!!"), 15*time.Minute)

	token, err := ts1.IssueAccessToken("user-1", "alice", roles.Admin)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	if _, err := ts2.ValidateAccessToken(token); err == nil {
		t.Error("expected error validating token with wrong secret")
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	ts := NewTokenService([]byte(testSecret), -1*time.Second)
	token, err := ts.IssueAccessToken("user-1", "alice", roles.Admin)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	if _, err := ts.ValidateAccessToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	ts := newTestTokenService()
	if _, err := ts.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestValidateAccessToken_ForeignClaims(t *testing.T) {
	sign := func(c Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	tests := []struct {
		name   string
		claims Claims
	}{
		{
			name: "unknown role",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: exp},
				Role:             "superuser",
			},
		},
		{
			name: "other issuer",
			claims: Claims{
				RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere", ExpiresAt: exp},
				Role:             roles.Admin,
			},
		},
	}

	ts := newTestTokenService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ts.ValidateAccessToken(sign(tt.claims)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTokenServiceTTL(t *testing.T) {
	ts := newTestTokenService()
	if ts.AccessTokenTTL() != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want 15m", ts.AccessTokenTTL())
	}
}
