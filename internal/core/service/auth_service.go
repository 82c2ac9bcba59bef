package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthq/succession-portal/internal/core/domain"
	"github.com/talenthq/succession-portal/internal/core/ports"
)

// AuthService implements signup and login for one role. The employee and
// admin services are two instances of this type with different role
// descriptors; there is no per-role code.
type AuthService struct {
	role     domain.Role
	repo     ports.CredentialRepository
	hasher   ports.PasswordHasher
	limiter  ports.LoginLimiter
	tokenTTL time.Duration
}

// NewAuthService wires an AuthService for role. limiter may be nil to
// disable login throttling.
func NewAuthService(role domain.Role, repo ports.CredentialRepository, hasher ports.PasswordHasher, limiter ports.LoginLimiter, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{role: role, repo: repo, hasher: hasher, limiter: limiter, tokenTTL: tokenTTL}
}

// Signup validates the credential shape, hashes the password and persists a
// new record. No token is issued; the client logs in separately. The
// existence pre-check is a fast path — the collection's unique index is the
// authoritative guard against concurrent signups of the same username.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if verr := s.validateCredentials(username, password); verr != nil {
		return nil, verr
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues a role-signed session token
// bound to the record id. Unknown usernames and wrong passwords are
// indistinguishable in the returned error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, s.role.Name, username)
		if err == nil && !ok {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, s.role.Name, username)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// issueToken mints an HS256 token carrying the record id and role, expiring
// tokenTTL from now, signed with the role secret. An employee token can
// never verify against the admin secret and vice versa.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": s.role.Name,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.role.Secret))
}
