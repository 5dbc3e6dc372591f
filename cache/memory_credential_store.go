package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/rescuekit/tokend/domain"
)

// MemoryCredentialStore implements CredentialStore using ttlcache.
type MemoryCredentialStore struct {
	cache *ttlcache.Cache[string, *domain.OrgCredential]
}

// NewMemoryCredentialStore creates an in-process credential cache whose
// entries expire after ttl.
func NewMemoryCredentialStore(ttl time.Duration) *MemoryCredentialStore {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *domain.OrgCredential](ttl),
		ttlcache.WithDisableTouchOnHit[string, *domain.OrgCredential](),
	)

	// Start the expiration loop.
	go cache.Start()

	return &MemoryCredentialStore{cache: cache}
}

// Get implements CredentialStore.Get.
func (s *MemoryCredentialStore) Get(_ context.Context, orgID string) (*domain.OrgCredential, bool) {
	item := s.cache.Get(orgID)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set implements CredentialStore.Set.
func (s *MemoryCredentialStore) Set(_ context.Context, cred *domain.OrgCredential) error {
	s.cache.Set(cred.OrgID, cred, ttlcache.DefaultTTL)
	return nil
}

// Delete implements CredentialStore.Delete.
func (s *MemoryCredentialStore) Delete(_ context.Context, orgID string) error {
	s.cache.Delete(orgID)
	return nil
}

// Close stops the expiration loop.
func (s *MemoryCredentialStore) Close() error {
	s.cache.Stop()
	return nil
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)
