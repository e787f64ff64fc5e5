package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Yonajim/NPUPlatform/internal/ids"
)

const minPasswordLength = 8

// Service implements the identity and token lifecycle: registration,
// login and logout. It is the only component that issues tokens.
type Service struct {
	store   Store
	tokens  *TokenIssuer
	verify  *TokenVerifier
	revoked *RevocationList
	now     func() time.Time
}

// NewService wires the auth authority. The verifier must carry the
// same revocation list so a logged-out token is refused here even
// before it expires.
func NewService(store Store, tokens *TokenIssuer, verify *TokenVerifier, revoked *RevocationList) *Service {
	return &Service{
		store:   store,
		tokens:  tokens,
		verify:  verify,
		revoked: revoked,
		now:     time.Now,
	}
}

// Register creates an identity for an unused email and returns a fresh
// token. Validation failures and duplicates reject before any write.
func (s *Service) Register(ctx context.Context, email, password, confirm string) (TokenResult, error) {
	email = normalizeEmail(email)
	if err := validateRegistration(email, password, confirm); err != nil {
		return TokenResult{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return TokenResult{}, err
	}
	identity := &Identity{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{"user"},
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(ctx, identity); err != nil {
		return TokenResult{}, err
	}
	return s.tokens.Issue(identity)
}

// Login verifies credentials and issues a fresh token with a new token
// id. Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (TokenResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return TokenResult{}, ErrInvalidCredentials
	}
	identity, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TokenResult{}, ErrInvalidCredentials
		}
		return TokenResult{}, err
	}
	if err := VerifyPassword(identity.PasswordHash, password); err != nil {
		return TokenResult{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(identity)
}

// Logout revokes the presented token for the remainder of its
// lifetime. Only verification performed by this process consults the
// revocation list.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.verify.Verify(token)
	if err != nil {
		return ErrInvalidToken
	}
	s.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}

// AuthenticateToken validates a bearer token, including revocation.
func (s *Service) AuthenticateToken(ctx context.Context, token string) (*Claims, error) {
	return s.verify.Verify(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(email, password, confirm string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("%w: password confirmation does not match", ErrInvalidInput)
	}
	return nil
}
