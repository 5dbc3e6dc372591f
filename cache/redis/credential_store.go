// Package redis provides a Redis-backed credential cache for multi-replica
// deployments that want to share lookups against the credential store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rescuekit/tokend/cache"
	"github.com/rescuekit/tokend/domain"
)

// CredentialStore implements cache.CredentialStore using Redis hashes.
type CredentialStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCredentialStore creates a new CredentialStore. prefix namespaces the
// keys so several sites can share one Redis instance.
func NewCredentialStore(client *redis.Client, prefix string, ttl time.Duration) *CredentialStore {
	return &CredentialStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *CredentialStore) redisKey(orgID string) string {
	return fmt.Sprintf("%s:org-credential:%s", s.prefix, orgID)
}

// Get implements cache.CredentialStore.Get.
func (s *CredentialStore) Get(ctx context.Context, orgID string) (*domain.OrgCredential, bool) {
	res, err := s.client.HGetAll(ctx, s.redisKey(orgID)).Result()
	if err != nil || len(res) == 0 {
		return nil, false
	}

	code, ok := res["access_code"]
	if !ok || code == "" {
		return nil, false
	}

	return &domain.OrgCredential{
		OrgID:      orgID,
		AccessCode: code,
	}, true
}

// Set implements cache.CredentialStore.Set.
func (s *CredentialStore) Set(ctx context.Context, cred *domain.OrgCredential) error {
	key := s.redisKey(cred.OrgID)

	entry := map[string]interface{}{
		"org_id":      cred.OrgID,
		"access_code": cred.AccessCode,
		"cached_at":   time.Now().Unix(),
	}
	if _, err := s.client.HSet(ctx, key, entry).Result(); err != nil {
		return fmt.Errorf("failed to set credential in Redis: %w", err)
	}

	if _, err := s.client.Expire(ctx, key, s.ttl).Result(); err != nil {
		return fmt.Errorf("failed to set expiry for credential in Redis: %w", err)
	}

	return nil
}

// Delete implements cache.CredentialStore.Delete.
func (s *CredentialStore) Delete(ctx context.Context, orgID string) error {
	if _, err := s.client.Del(ctx, s.redisKey(orgID)).Result(); err != nil {
		return fmt.Errorf("failed to delete credential from Redis: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *CredentialStore) Close() error {
	return s.client.Close()
}

var _ cache.CredentialStore = (*CredentialStore)(nil)
