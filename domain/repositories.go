package domain

import (
	"context"
	"errors"
)

// ErrCredentialNotFound is returned when no credential exists for the
// requested organization.
var ErrCredentialNotFound = errors.New("organization credential not found")

// OrgCredentialRepository provides read access to the per-organization
// credential table. The table is initialized once at startup and is
// read-only thereafter from the issuance path's perspective.
type OrgCredentialRepository interface {
	// GetByOrgID returns the credential for the organization, or
	// ErrCredentialNotFound when no entry exists.
	GetByOrgID(ctx context.Context, orgID string) (*OrgCredential, error)
}
