package cache

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/rescuekit/tokend/domain"
)

// CachedRepository decorates an OrgCredentialRepository with a read-through
// credential cache. Misses and lookup failures are never cached, so a
// rotated or newly provisioned credential becomes visible within one TTL.
type CachedRepository struct {
	inner domain.OrgCredentialRepository
	store CredentialStore
}

// NewCachedRepository wraps inner with the given store.
func NewCachedRepository(inner domain.OrgCredentialRepository, store CredentialStore) *CachedRepository {
	return &CachedRepository{inner: inner, store: store}
}

// GetByOrgID implements domain.OrgCredentialRepository.
func (r *CachedRepository) GetByOrgID(ctx context.Context, orgID string) (*domain.OrgCredential, error) {
	if cred, ok := r.store.Get(ctx, orgID); ok {
		return cred, nil
	}

	cred, err := r.inner.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if err := r.store.Set(ctx, cred); err != nil {
		// A cache write failure only costs the next lookup.
		log.Ctx(ctx).Warn().Err(err).Str("org_id", orgID).Msg("failed to cache credential")
	}

	return cred, nil
}

var _ domain.OrgCredentialRepository = (*CachedRepository)(nil)
