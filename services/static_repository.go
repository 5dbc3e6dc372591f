package services

import (
	"context"

	"github.com/rescuekit/tokend/domain"
)

// StaticCredentialRepository serves the credential table from a map injected
// at startup. It backs deployments without a credential store; the map is
// never mutated after construction, so reads need no locking.
type StaticCredentialRepository struct {
	table map[string]string
}

// NewStaticCredentialRepository copies the given org id to access code
// mapping into a new repository.
func NewStaticCredentialRepository(table map[string]string) *StaticCredentialRepository {
	owned := make(map[string]string, len(table))
	for orgID, code := range table {
		owned[orgID] = code
	}
	return &StaticCredentialRepository{table: owned}
}

// GetByOrgID implements domain.OrgCredentialRepository.
func (r *StaticCredentialRepository) GetByOrgID(_ context.Context, orgID string) (*domain.OrgCredential, error) {
	code, ok := r.table[orgID]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &domain.OrgCredential{OrgID: orgID, AccessCode: code}, nil
}

var _ domain.OrgCredentialRepository = (*StaticCredentialRepository)(nil)
