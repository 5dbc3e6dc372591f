package echo

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/rescuekit/tokend/domain"
	serrors "github.com/rescuekit/tokend/errors"
)

// TokenMetadata is the non-secret metadata echoed alongside an org-scoped
// token. It never carries key material, raw claims, or credential entries.
type TokenMetadata struct {
	OrganizationID string `json:"organization_id"`
	Type           string `json:"type"`
	Scope          string `json:"scope"`
	TokenType      string `json:"token_type"`
	Algorithm      string `json:"algorithm"`
	ExpiresIn      int64  `json:"expires_in"`
}

type orgTokenResponse struct {
	Success   bool          `json:"success"`
	UserToken string        `json:"userToken"`
	OrgID     string        `json:"orgId"`
	Message   string        `json:"message"`
	Metadata  TokenMetadata `json:"metadata"`
}

type userTokenResponse struct {
	Token     string `json:"token"`
	ProjectID string `json:"projectId"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func newOrgTokenResponse(issued *domain.IssuedToken) orgTokenResponse {
	return orgTokenResponse{
		Success:   true,
		UserToken: issued.Token,
		OrgID:     issued.OrgID,
		Message:   "Token generated successfully",
		Metadata: TokenMetadata{
			OrganizationID: issued.OrgID,
			Type:           issued.Purpose,
			Scope:          fmt.Sprintf("org:%s", issued.OrgID),
			TokenType:      "jwt_signed",
			Algorithm:      "RS256",
			ExpiresIn:      issued.ExpiresIn(),
		},
	}
}

// genericMessages are the operator-safe failure messages used when debug
// errors are disabled. They name the failure class without echoing file
// paths or raw signing errors.
var genericMessages = map[string]string{
	serrors.MissingParameters:    "orgId and accessCode are required",
	serrors.AuthenticationFailed: "organization id or access code is incorrect",
	serrors.KeyNotConfigured:     "signing key is not configured on the server",
	serrors.KeyFileMissing:       "signing key configuration is incomplete on the server",
	serrors.SigningError:         "token signing failed on the server",
}

// writeError shapes any issuance failure into the uniform error envelope.
// Full detail always goes to the log; it reaches the caller only when the
// server runs with debug errors enabled.
func writeError(c echo.Context, err error, debug bool) error {
	var issueErr *serrors.IssueError
	if !stderrors.As(err, &issueErr) {
		log.Ctx(c.Request().Context()).Error().Err(err).Msg("unexpected token issuance error")
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Success: false,
			Error:   "Internal server error",
			Message: "token issuance failed",
		})
	}

	status := issueErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().
			Str("code", issueErr.Code).
			Str("detail", issueErr.Detail).
			Msg("token issuance failed")
	}

	message := genericMessages[issueErr.Code]
	if debug {
		message = issueErr.Detail
	}

	return c.JSON(status, errorResponse{
		Success: false,
		Error:   issueErr.Summary,
		Message: message,
	})
}
