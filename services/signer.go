package services

import (
	"github.com/golang-jwt/jwt/v5"

	serrors "github.com/rescuekit/tokend/errors"
	"github.com/rescuekit/tokend/internal/keys"
	"github.com/rescuekit/tokend/internal/metrics"
)

// TokenSigner signs claim sets with the RS256 private key produced by the
// key resolver. The key is resolved on every Sign call and discarded after
// use; nothing is cached between requests.
type TokenSigner struct {
	resolver *keys.Resolver
}

// NewTokenSigner creates a new TokenSigner over the given resolver.
func NewTokenSigner(resolver *keys.Resolver) *TokenSigner {
	return &TokenSigner{resolver: resolver}
}

// Sign resolves the signing key, parses it, and produces a compact RS256
// JWT. Key resolution errors propagate unchanged; a key the signing
// primitive rejects surfaces as SigningError.
func (s *TokenSigner) Sign(claims jwt.Claims) (string, error) {
	pemBytes, err := s.resolver.Resolve()
	if err != nil {
		metrics.KeyResolutionFailureTotal.Inc()
		return "", err
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		metrics.SigningFailureTotal.Inc()
		return "", serrors.NewSigningError(err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	// The downstream platform checks the declared header type, so set it
	// explicitly rather than relying on library defaults.
	token.Header["typ"] = "JWT"

	signed, err := token.SignedString(privateKey)
	if err != nil {
		metrics.SigningFailureTotal.Inc()
		return "", serrors.NewSigningError(err)
	}

	return signed, nil
}
