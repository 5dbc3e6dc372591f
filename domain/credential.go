package domain

import (
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// OrgCredential maps an organization to its shared access code. At most one
// credential exists per organization; a missing entry means authentication
// fails closed.
//
// AccessCode is either the plaintext shared secret or a bcrypt hash of it.
// Hashed entries are recognized by their "$2" prefix.
type OrgCredential struct {
	OrgID      string    `json:"org_id" bson:"_id"`
	AccessCode string    `json:"access_code" bson:"access_code"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Matches reports whether the supplied code satisfies the stored credential.
// Plaintext entries are compared in constant time; bcrypt entries go through
// CompareHashAndPassword. Comparison is case-sensitive.
func (c *OrgCredential) Matches(code string) bool {
	if c == nil || c.AccessCode == "" || code == "" {
		return false
	}
	if strings.HasPrefix(c.AccessCode, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(c.AccessCode), []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.AccessCode), []byte(code)) == 1
}
