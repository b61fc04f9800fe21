package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	pkgauth "github.com/arjunmehta/rechargehub-backend/pkg/auth"
	"github.com/arjunmehta/rechargehub-backend/pkg/config"
	"github.com/arjunmehta/rechargehub-backend/pkg/db"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	"github.com/arjunmehta/rechargehub-backend/pkg/security"
)

// Service exposes account registration and credential verification.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	AdminLogin(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

// RegisterInput holds the payload to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginResult carries the authenticated user and their access token.
type LoginResult struct {
	User        models.User
	AccessToken string
}

type sessionOpener interface {
	Open(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users    user.Repository
	sessions sessionOpener
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

// NewService constructs an auth service instance.
func NewService(users user.Repository, sessions sessionOpener, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		now:      time.Now,
	}, nil
}

// Register creates a customer account with an Argon2id password hash.
// A duplicate email is a conflict regardless of case.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	account := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        user.NormalizeEmail(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         enums.UserRoleUser,
	}

	if err := s.users.Create(ctx, account); err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}
	return account, nil
}

// Login verifies credentials and opens a session. Unknown emails and
// wrong passwords produce the same unauthorized error.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return s.login(ctx, email, password, "")
}

// AdminLogin verifies credentials and additionally requires the admin
// role.
func (s *service) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	return s.login(ctx, email, password, enums.UserRoleAdmin)
}

// Logout revokes the session for the provided access token id.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) login(ctx context.Context, email, password string, requiredRole enums.UserRole) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	match, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	if requiredRole != "" && account.Role != requiredRole {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	jti := uuid.NewString()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: account.ID,
		Role:   account.Role,
		JTI:    jti,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Open(ctx, jti); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening session")
	}

	return &LoginResult{User: *account, AccessToken: token}, nil
}

func validateRegister(input RegisterInput) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required registration fields").
			WithDetails(map[string]any{"fields": missing})
	}
	if len(input.Password) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	return nil
}
