// Package auth implements the single-operator login for the back office.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/madhavavarma/storeadminnom/pkg/auth"
	"github.com/madhavavarma/storeadminnom/pkg/auth/session"
	"github.com/madhavavarma/storeadminnom/pkg/config"
	pkgerrors "github.com/madhavavarma/storeadminnom/pkg/errors"
	"github.com/madhavavarma/storeadminnom/pkg/logger"
	"github.com/madhavavarma/storeadminnom/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// LoginResult is the successful login payload.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

type sessionWriter interface {
	Generate(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	admin    config.AdminConfig
	jwtCfg   config.JWTConfig
	sessions sessionWriter
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs a login service over the configured admin identity.
func NewService(admin config.AdminConfig, jwtCfg config.JWTConfig, sessions sessionWriter, logg *logger.Logger) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session writer is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if strings.TrimSpace(admin.Email) == "" || admin.PasswordHash == "" {
		return nil, fmt.Errorf("admin credentials are required")
	}
	if err := security.ValidateHash(admin.PasswordHash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &service{
		admin:    admin,
		jwtCfg:   jwtCfg,
		sessions: sessions,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies the operator's credentials, mints an access token, and
// records the server-side session keyed by the token's jti.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !strings.EqualFold(email, s.admin.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if ok, err := security.VerifyPassword(password, s.admin.PasswordHash); err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: adminUserID(s.admin.Email),
		Email:  s.admin.Email,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Generate(ctx, accessID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording session")
	}

	s.logg.Info(s.logg.WithUserID(ctx, s.admin.Email), "operator logged in")
	return &LoginResult{
		Token:     token,
		ExpiresAt: s.now().Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		Email:     s.admin.Email,
	}, nil
}

// Logout revokes the session behind the presented token. Revoking an
// already-revoked session is a no-op.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

// adminUserID derives a stable identifier from the configured email so the
// operator keeps the same subject across restarts.
func adminUserID(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("storeadmin:"+strings.ToLower(email)))
}
