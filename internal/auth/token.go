package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Yonajim/NPUPlatform/internal/ids"
)

// Claims is the platform token payload. One role claim per role, plus
// the registered set: sub = identity id, jti = unique token id,
// iss/aud/exp from fixed startup configuration.
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 bearer tokens. Only the auth authority holds
// an issuer; verifiers exist wherever the gate runs.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret, issuer, audience string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue signs a fresh token for the identity. Every call produces a new
// jti; expiry is strictly issuance time plus the configured lifetime.
func (ti *TokenIssuer) Issue(identity *Identity) (TokenResult, error) {
	now := ti.now().UTC()
	exp := now.Add(ti.lifetime)
	claims := Claims{
		Email: identity.Email,
		Roles: identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        ids.New(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return TokenResult{}, err
	}
	return TokenResult{Token: signed, ExpiresAt: exp}, nil
}

// TokenVerifier validates bearer tokens: signature, issuer, audience
// and expiry. When a revocation list is attached (auth authority only)
// revoked token ids are rejected as well.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
	revoked  *RevocationList
}

// VerifierOption configures a TokenVerifier.
type VerifierOption func(*TokenVerifier)

// WithRevocations attaches a revocation list consulted on every Verify.
func WithRevocations(rl *RevocationList) VerifierOption {
	return func(tv *TokenVerifier) { tv.revoked = rl }
}

func NewTokenVerifier(secret, issuer, audience string, opts ...VerifierOption) *TokenVerifier {
	tv := &TokenVerifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
	for _, opt := range opts {
		opt(tv)
	}
	return tv
}

// Verify checks the token and returns its claims.
func (tv *TokenVerifier) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tv.secret, nil
	},
		jwt.WithIssuer(tv.issuer),
		jwt.WithAudience(tv.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if tv.revoked != nil && tv.revoked.IsRevoked(claims.ID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
