package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rescuekit/tokend/domain"
	serrors "github.com/rescuekit/tokend/errors"
)

// countingRepository wraps a repository and records lookups, so tests can
// assert that invalid input short-circuits before any table access.
type countingRepository struct {
	inner domain.OrgCredentialRepository
	calls int
}

func (r *countingRepository) GetByOrgID(ctx context.Context, orgID string) (*domain.OrgCredential, error) {
	r.calls++
	return r.inner.GetByOrgID(ctx, orgID)
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var issueErr *serrors.IssueError
	require.ErrorAs(t, err, &issueErr)
	return issueErr.Code
}

func TestVerifyAccessCode(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("pawprints"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := NewStaticCredentialRepository(map[string]string{
		"3":  "shelter123",
		"12": string(hashed),
	})
	svc := NewCredentialService(repo)

	testCases := []struct {
		name     string
		orgID    string
		code     string
		wantCode string
	}{
		{name: "exact match", orgID: "3", code: "shelter123"},
		{name: "bcrypt entry match", orgID: "12", code: "pawprints"},
		{name: "wrong code", orgID: "3", code: "wrong", wantCode: serrors.AuthenticationFailed},
		{name: "case sensitive", orgID: "3", code: "SHELTER123", wantCode: serrors.AuthenticationFailed},
		{name: "unknown org fails closed", orgID: "404", code: "shelter123", wantCode: serrors.AuthenticationFailed},
		{name: "missing org id", orgID: "", code: "shelter123", wantCode: serrors.MissingParameters},
		{name: "missing access code", orgID: "3", code: "", wantCode: serrors.MissingParameters},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.VerifyAccessCode(context.Background(), tc.orgID, tc.code)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, errorCode(t, err))
		})
	}
}

func TestVerifyAccessCodeMissingParamsSkipsLookup(t *testing.T) {
	counting := &countingRepository{inner: NewStaticCredentialRepository(nil)}
	svc := NewCredentialService(counting)

	err := svc.VerifyAccessCode(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, serrors.MissingParameters, errorCode(t, err))
	assert.Zero(t, counting.calls, "repository must not be consulted for incomplete input")
}
