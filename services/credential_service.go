package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rescuekit/tokend/domain"
	serrors "github.com/rescuekit/tokend/errors"
	"github.com/rescuekit/tokend/internal/metrics"
)

// CredentialService authenticates an organization's access code against the
// credential table. The check is stateless and single-shot: no session, no
// attempt counter, no lockout.
type CredentialService struct {
	repo domain.OrgCredentialRepository
}

// NewCredentialService creates a new CredentialService over the given
// repository.
func NewCredentialService(repo domain.OrgCredentialRepository) *CredentialService {
	return &CredentialService{repo: repo}
}

// VerifyAccessCode checks the supplied code for the organization. Both
// inputs are required; emptiness fails with MissingParameters before any
// repository lookup. An absent entry or a mismatching code fails closed with
// AuthenticationFailed.
func (s *CredentialService) VerifyAccessCode(ctx context.Context, orgID, code string) error {
	orgID = strings.TrimSpace(orgID)
	if orgID == "" || code == "" {
		return serrors.NewMissingParameters("orgId and accessCode are required")
	}

	cred, err := s.repo.GetByOrgID(ctx, orgID)
	if err != nil {
		if !errors.Is(err, domain.ErrCredentialNotFound) {
			log.Ctx(ctx).Error().Err(err).Str("org_id", orgID).Msg("credential lookup failed")
		}
		metrics.AuthFailureTotal.Inc()
		return serrors.NewAuthenticationFailed()
	}

	if !cred.Matches(code) {
		log.Ctx(ctx).Warn().Str("org_id", orgID).Msg("access code mismatch")
		metrics.AuthFailureTotal.Inc()
		return serrors.NewAuthenticationFailed()
	}

	metrics.AuthSuccessTotal.Inc()
	return nil
}
