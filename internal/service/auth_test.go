package service

import (
	"testing"

	"github.com/tutorlens/tutorlens/internal/config"
	"github.com/tutorlens/tutorlens/internal/repository"
	"github.com/tutorlens/tutorlens/internal/server"
)

func testAuthService() *AuthService {
	return &AuthService{
		server: &server.Server{
			Config: &config.Config{
				Auth: config.AuthConfig{
					SecretKey: "test-secret",
					TokenTTL:  1,
				},
			},
		},
	}
}

func TestIssueAndParseToken(t *testing.T) {
	auth := testAuthService()

	user := &repository.User{ID: 42, Role: repository.RoleTutor, Name: "Priya"}

	result, err := auth.issue(user)
	if err != nil {
		t.Fatal(err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.User != user {
		t.Error("result should carry the user")
	}

	claims, err := auth.ParseToken(result.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("uid = %d, want 42", claims.UserID)
	}
	if claims.Role != repository.RoleTutor {
		t.Errorf("role = %q, want tutor", claims.Role)
	}
}

func TestParseToken_rejectsTampered(t *testing.T) {
	auth := testAuthService()

	result, err := auth.issue(&repository.User{ID: 7, Role: repository.RoleParent})
	if err != nil {
		t.Fatal(err)
	}

	other := testAuthService()
	other.server.Config.Auth.SecretKey = "different-secret"

	if _, err := other.ParseToken(result.Token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}

	if _, err := auth.ParseToken(result.Token + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}

	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+1 (555) 123-4567", "+15551234567"},
		{"555.123.4567", "5551234567"},
		{"+15551234567", "+15551234567"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitContact(t *testing.T) {
	tests := []struct {
		in        string
		wantEmail string
		wantPhone string
	}{
		{"Mehta.Family@Example.com", "mehta.family@example.com", ""},
		{"  parent@example.com ", "parent@example.com", ""},
		{"+1 (555) 123-0042", "", "+15551230042"},
		{"555 123 0042", "", "5551230042"},
	}

	for _, tt := range tests {
		email, phone := splitContact(tt.in)
		if email != tt.wantEmail || phone != tt.wantPhone {
			t.Errorf("splitContact(%q) = (%q, %q), want (%q, %q)",
				tt.in, email, phone, tt.wantEmail, tt.wantPhone)
		}
	}
}
