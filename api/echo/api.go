package echo

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	serrors "github.com/rescuekit/tokend/errors"
	"github.com/rescuekit/tokend/internal/audit"
	"github.com/rescuekit/tokend/services"
)

// TokenAPI exposes the two token-issuance endpoints over HTTP. The whole
// flow is a single linear pipeline: validate, resolve key, build claims,
// sign, respond. Any stage's failure short-circuits to an error envelope;
// nothing is retried.
type TokenAPI struct {
	tokens      *services.TokenService
	credentials *services.CredentialService
	// pinger reports dependency health for /healthz; nil when the static
	// credential table is in use.
	pinger func(ctx context.Context) error

	debugErrors bool
}

// NewTokenAPI initializes the token API.
func NewTokenAPI(
	tokens *services.TokenService,
	credentials *services.CredentialService,
	pinger func(ctx context.Context) error,
	debugErrors bool,
) *TokenAPI {
	return &TokenAPI{
		tokens:      tokens,
		credentials: credentials,
		pinger:      pinger,
		debugErrors: debugErrors,
	}
}

// RegisterRoutes registers the issuance routes.
func (a *TokenAPI) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/paragon/token", a.UserTokenHandler)
	e.POST("/api/v1/paragon/org-token", a.OrgTokenHandler)
	e.GET("/healthz", a.HealthHandler)
}

// UserTokenHandler issues a token for the fixed admin identity. It takes no
// input; the only failure mode is server-side key or signing trouble.
func (a *TokenAPI) UserTokenHandler(c echo.Context) error {
	issued, err := a.tokens.IssueUserToken(c.Request().Context())
	if err != nil {
		return writeError(c, err, a.debugErrors)
	}

	return c.JSON(http.StatusOK, userTokenResponse{
		Token:     issued.Token,
		ProjectID: a.tokens.ProjectID(),
	})
}

type orgTokenRequest struct {
	OrgID      string `json:"orgId"`
	AccessCode string `json:"accessCode"`
}

// OrgTokenHandler authenticates the access code for an organization and
// issues an org-scoped token. Parameter validation happens before any key
// resolution is attempted.
func (a *TokenAPI) OrgTokenHandler(c echo.Context) error {
	var req orgTokenRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, serrors.NewMissingParameters("request body must be JSON with orgId and accessCode"), a.debugErrors)
	}

	ctx := c.Request().Context()
	orgID := strings.TrimSpace(req.OrgID)

	if err := a.credentials.VerifyAccessCode(ctx, orgID, req.AccessCode); err != nil {
		audit.Log(audit.Event{Action: audit.ActionAuthFailed, OrgID: orgID, Error: err.Error()})
		return writeError(c, err, a.debugErrors)
	}

	issued, err := a.tokens.IssueOrgToken(ctx, orgID)
	if err != nil {
		return writeError(c, err, a.debugErrors)
	}

	audit.Log(audit.Event{
		Action:  audit.ActionTokenIssued,
		OrgID:   issued.OrgID,
		Subject: issued.Subject,
		Purpose: issued.Purpose,
		Success: true,
	})

	return c.JSON(http.StatusOK, newOrgTokenResponse(issued))
}

// HealthHandler reports liveness, including credential store connectivity
// when a backing store is configured.
func (a *TokenAPI) HealthHandler(c echo.Context) error {
	if a.pinger != nil {
		if err := a.pinger(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
