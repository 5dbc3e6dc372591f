// Package cache provides a read-through cache in front of the organization
// credential repository, for deployments where the table lives in an
// external store.
package cache

import (
	"context"

	"github.com/rescuekit/tokend/domain"
)

// CredentialStore is a TTL-bounded cache of organization credentials.
type CredentialStore interface {
	// Get returns the cached credential and whether it was present.
	Get(ctx context.Context, orgID string) (*domain.OrgCredential, bool)
	// Set caches the credential until the store's TTL elapses.
	Set(ctx context.Context, cred *domain.OrgCredential) error
	// Delete evicts the credential, e.g. after rotation.
	Delete(ctx context.Context, orgID string) error
	// Close releases any background resources held by the store.
	Close() error
}
