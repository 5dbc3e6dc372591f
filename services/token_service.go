package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rescuekit/tokend/domain"
	"github.com/rescuekit/tokend/internal/metrics"
)

// tokenLifetimeSeconds is the fixed, non-configurable token lifetime. There
// is no refresh mechanism; callers re-request a token after expiry.
const tokenLifetimeSeconds = 3600

// audienceHost is the integration platform that consumes the issued tokens.
const audienceHost = "useparagon.com"

// TokenService builds claim sets and produces signed, time-bounded tokens
// scoped to a tenant or to the fixed admin identity.
type TokenService struct {
	signer       *TokenSigner
	projectID    string
	adminSubject string
}

// NewTokenService creates a new TokenService. projectID identifies the
// integration-platform project the tokens are addressed to; adminSubject is
// the fixed identity used by the single-user variant.
func NewTokenService(signer *TokenSigner, projectID, adminSubject string) *TokenService {
	return &TokenService{
		signer:       signer,
		projectID:    projectID,
		adminSubject: adminSubject,
	}
}

// Audience returns the aud claim value for this service's project.
func (s *TokenService) Audience() string {
	return fmt.Sprintf("%s/%s", audienceHost, s.projectID)
}

// ProjectID returns the configured integration-platform project id.
func (s *TokenService) ProjectID() string {
	return s.projectID
}

// IssueUserToken produces a token for the fixed admin identity, tagged as a
// user session. No org scope is attached.
func (s *TokenService) IssueUserToken(ctx context.Context) (*domain.IssuedToken, error) {
	return s.issue(ctx, s.adminSubject, "", domain.PurposeUserSession)
}

// IssueOrgToken produces a token scoped to the given organization, tagged as
// an admin session. The subject is derived from the org id and the org_id
// claim carries the raw identifier.
func (s *TokenService) IssueOrgToken(ctx context.Context, orgID string) (*domain.IssuedToken, error) {
	return s.issue(ctx, fmt.Sprintf("org-%s", orgID), orgID, domain.PurposeAdminSession)
}

func (s *TokenService) issue(ctx context.Context, subject, orgID, purpose string) (*domain.IssuedToken, error) {
	issuedAt := time.Now().Unix()
	expiresAt := issuedAt + tokenLifetimeSeconds
	audience := s.Audience()

	claims := jwt.MapClaims{
		"sub":  subject,
		"aud":  audience,
		"iat":  issuedAt,
		"exp":  expiresAt,
		"type": purpose,
		"jti":  uuid.NewString(),
	}
	if orgID != "" {
		claims["org_id"] = orgID
	}

	signed, err := s.signer.Sign(claims)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("subject", subject).
			Str("purpose", purpose).
			Msg("token signing failed")
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(purpose).Inc()
	log.Ctx(ctx).Info().
		Str("subject", subject).
		Str("purpose", purpose).
		Int64("expires_at", expiresAt).
		Msg("token issued")

	return &domain.IssuedToken{
		Token:     signed,
		Subject:   subject,
		Audience:  audience,
		OrgID:     orgID,
		Purpose:   purpose,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
