package domain

// Purpose tags carried in the token's "type" claim.
const (
	PurposeAdminSession = "admin_session"
	PurposeUserSession  = "user_session"
)

// IssuedToken is the signed artifact plus the non-secret metadata the
// response builder is allowed to echo. Tokens are never persisted; authority
// is delegated entirely to the signature and expiry, verified downstream by
// the integration platform.
type IssuedToken struct {
	Token     string
	Subject   string
	Audience  string
	OrgID     string
	Purpose   string
	IssuedAt  int64
	ExpiresAt int64
}

// ExpiresIn returns the token lifetime in seconds.
func (t *IssuedToken) ExpiresIn() int64 {
	return t.ExpiresAt - t.IssuedAt
}
