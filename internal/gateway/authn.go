package gateway

import (
	"context"

	"github.com/Yonajim/NPUPlatform/internal/auth"
	"github.com/Yonajim/NPUPlatform/internal/httpapi"
)

// tokenAuthenticator adapts a TokenVerifier to the gate interface. The
// gateway verifies signatures only; revocation lives with the auth
// authority, so a logged-out token is refused there even if it still
// passes here.
type tokenAuthenticator struct {
	verifier *auth.TokenVerifier
}

func NewTokenAuthenticator(verifier *auth.TokenVerifier) httpapi.Authenticator {
	return &tokenAuthenticator{verifier: verifier}
}

func (a *tokenAuthenticator) AuthenticateToken(_ context.Context, token string) (*auth.Claims, error) {
	return a.verifier.Verify(token)
}
