package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescuekit/tokend/domain"
	serrors "github.com/rescuekit/tokend/errors"
	"github.com/rescuekit/tokend/internal/keys"
)

// newTestKey generates an RSA key, writes the PKCS#8 PEM to a temp file, and
// returns the key plus a resolver pointed at that file.
func newTestKey(t *testing.T) (*rsa.PrivateKey, *keys.Resolver) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	path := filepath.Join(t.TempDir(), "signing.pem")
	require.NoError(t, os.WriteFile(path, pemBytes, 0o600))

	return privateKey, keys.NewResolver(path, "", nil)
}

func parseIssued(t *testing.T, token string, key *rsa.PrivateKey) (*jwt.Token, jwt.MapClaims) {
	t.Helper()

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	return parsed, claims
}

func TestIssueOrgTokenClaims(t *testing.T) {
	key, resolver := newTestKey(t)
	svc := NewTokenService(NewTokenSigner(resolver), "proj-123", "rescue-admin")

	issued, err := svc.IssueOrgToken(context.Background(), "3")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	parsed, claims := parseIssued(t, issued.Token, key)

	assert.Equal(t, "RS256", parsed.Header["alg"])
	assert.Equal(t, "JWT", parsed.Header["typ"])

	assert.Equal(t, "org-3", claims["sub"])
	assert.Equal(t, "3", claims["org_id"])
	assert.Equal(t, "useparagon.com/proj-123", claims["aud"])
	assert.Equal(t, domain.PurposeAdminSession, claims["type"])
	assert.NotEmpty(t, claims["jti"])

	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.EqualValues(t, 3600, exp-iat, "lifetime is exactly one hour")
	assert.EqualValues(t, issued.IssuedAt, iat)
	assert.EqualValues(t, issued.ExpiresAt, exp)
	assert.EqualValues(t, 3600, issued.ExpiresIn())
}

func TestIssueUserTokenClaims(t *testing.T) {
	key, resolver := newTestKey(t)
	svc := NewTokenService(NewTokenSigner(resolver), "proj-123", "rescue-admin")

	issued, err := svc.IssueUserToken(context.Background())
	require.NoError(t, err)

	_, claims := parseIssued(t, issued.Token, key)
	assert.Equal(t, "rescue-admin", claims["sub"])
	assert.Equal(t, domain.PurposeUserSession, claims["type"])
	_, hasOrg := claims["org_id"]
	assert.False(t, hasOrg, "user tokens carry no org scope")
}

func TestIssueTokensAreIndependentlyFresh(t *testing.T) {
	_, resolver := newTestKey(t)
	svc := NewTokenService(NewTokenSigner(resolver), "proj-123", "rescue-admin")

	first, err := svc.IssueOrgToken(context.Background(), "3")
	require.NoError(t, err)
	second, err := svc.IssueOrgToken(context.Background(), "3")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token, "each request produces its own token")
}

func TestIssueMalformedKeyIsSigningError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a pem key\n"), 0o600))

	svc := NewTokenService(NewTokenSigner(keys.NewResolver(path, "", nil)), "proj-123", "rescue-admin")

	_, err := svc.IssueOrgToken(context.Background(), "3")
	require.Error(t, err)
	var issueErr *serrors.IssueError
	require.ErrorAs(t, err, &issueErr)
	assert.Equal(t, serrors.SigningError, issueErr.Code)
}

func TestIssueKeyNotConfiguredPropagates(t *testing.T) {
	svc := NewTokenService(NewTokenSigner(keys.NewResolver("", "", nil)), "proj-123", "rescue-admin")

	_, err := svc.IssueOrgToken(context.Background(), "3")
	require.Error(t, err)
	var issueErr *serrors.IssueError
	require.ErrorAs(t, err, &issueErr)
	assert.Equal(t, serrors.KeyNotConfigured, issueErr.Code)
}
