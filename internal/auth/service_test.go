package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	pkgauth "github.com/madhavavarma/storeadminnom/pkg/auth"
	"github.com/madhavavarma/storeadminnom/pkg/config"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/security"
)

type stubSessions struct {
	generated []string
	revoked   []string
	genErr    error
}

func (s *stubSessions) Generate(_ context.Context, accessID string) error {
	if s.genErr != nil {
		return s.genErr
	}
	s.generated = append(s.generated, accessID)
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

const testPassword = "correct horse battery staple"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storeadmin-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 120,
	}
}

func newLoginFixture(t *testing.T) (Service, *stubSessions) {
	t.Helper()
	hash, err := security.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	sessions := &stubSessions{}
	svc, err := NewService(
		config.AdminConfig{Email: "owner@example.com", PasswordHash: hash},
		testJWTConfig(),
		sessions,
		logger.New(logger.Options{Output: io.Discard, Level: zerolog.ErrorLevel}),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, sessions
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions := newLoginFixture(t)

	result, err := svc.Login(context.Background(), "owner@example.com", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.Email != "owner@example.com" {
		t.Fatalf("email = %q", result.Email)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry = %v", result.ExpiresAt)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("sessions generated = %d, want 1", len(sessions.generated))
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	if err != nil {
		t.Fatalf("parsing minted token: %v", err)
	}
	if claims.ID != sessions.generated[0] {
		t.Fatalf("jti %q does not match recorded session %q", claims.ID, sessions.generated[0])
	}
	if claims.Email != "owner@example.com" {
		t.Fatalf("claims email = %q", claims.Email)
	}
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newLoginFixture(t)
	if _, err := svc.Login(context.Background(), "OWNER@Example.COM", testPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, sessions := newLoginFixture(t)
	_, err := svc.Login(context.Background(), "owner@example.com", "nope")
	assertUnauthorized(t, err)
	if len(sessions.generated) != 0 {
		t.Fatal("session must not be created on failed login")
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := newLoginFixture(t)
	_, err := svc.Login(context.Background(), "intruder@example.com", testPassword)
	assertUnauthorized(t, err)
}

func TestLoginRejectsBlankInput(t *testing.T) {
	svc, _ := newLoginFixture(t)
	_, err := svc.Login(context.Background(), "", "")
	assertUnauthorized(t, err)
}

func TestLogout(t *testing.T) {
	svc, sessions := newLoginFixture(t)

	if err := svc.Logout(context.Background(), "some-access-id"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "some-access-id" {
		t.Fatalf("revoked = %v", sessions.revoked)
	}
}

func TestLogoutRequiresAccessID(t *testing.T) {
	svc, _ := newLoginFixture(t)
	err := svc.Logout(context.Background(), "  ")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStableAdminUserID(t *testing.T) {
	if adminUserID("Owner@Example.com") != adminUserID("owner@example.com") {
		t.Fatal("admin id must be stable across email casing")
	}
}
