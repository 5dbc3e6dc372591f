package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rescuekit/tokend/domain"
)

type countingRepo struct {
	creds map[string]string
	calls int
}

func (r *countingRepo) GetByOrgID(_ context.Context, orgID string) (*domain.OrgCredential, error) {
	r.calls++
	code, ok := r.creds[orgID]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &domain.OrgCredential{OrgID: orgID, AccessCode: code}, nil
}

func TestCachedRepositoryReadThrough(t *testing.T) {
	inner := &countingRepo{creds: map[string]string{"3": "shelter123"}}
	store := NewMemoryCredentialStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewCachedRepository(inner, store)
	ctx := context.Background()

	first, err := repo.GetByOrgID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "shelter123", first.AccessCode)
	assert.Equal(t, 1, inner.calls)

	second, err := repo.GetByOrgID(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, first.AccessCode, second.AccessCode)
	assert.Equal(t, 1, inner.calls, "second lookup must be served from cache")
}

func TestCachedRepositoryDoesNotCacheMisses(t *testing.T) {
	inner := &countingRepo{creds: map[string]string{}}
	store := NewMemoryCredentialStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewCachedRepository(inner, store)
	ctx := context.Background()

	_, err := repo.GetByOrgID(ctx, "404")
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	// Provision the credential afterwards; it must be visible immediately.
	inner.creds["404"] = "latecomer"
	cred, err := repo.GetByOrgID(ctx, "404")
	require.NoError(t, err)
	assert.Equal(t, "latecomer", cred.AccessCode)
	assert.Equal(t, 2, inner.calls)
}

func TestMemoryCredentialStoreEviction(t *testing.T) {
	store := NewMemoryCredentialStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &domain.OrgCredential{OrgID: "3", AccessCode: "shelter123"}))

	cred, ok := store.Get(ctx, "3")
	require.True(t, ok)
	assert.Equal(t, "shelter123", cred.AccessCode)

	require.NoError(t, store.Delete(ctx, "3"))
	_, ok = store.Get(ctx, "3")
	assert.False(t, ok)
}
