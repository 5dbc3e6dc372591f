// Package audit records security-relevant issuance events as structured
// JSON, separate from the request log so they can be shipped to a dedicated
// sink.
package audit

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Event is one audit log record.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	OrgID     string    `json:"org_id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Purpose   string    `json:"purpose,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

var auditLogger = zerolog.New(os.Stdout).With().Str("log", "audit").Logger()

// Audit actions emitted by the token service.
const (
	ActionTokenIssued = "token.issued"
	ActionAuthFailed  = "auth.failed"
)

// Log records an audit event. Failures to write are silently dropped; audit
// logging never blocks or fails issuance.
func Log(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	entry := auditLogger.Log().
		Time("timestamp", event.Timestamp).
		Str("action", event.Action).
		Bool("success", event.Success)
	if event.OrgID != "" {
		entry = entry.Str("org_id", event.OrgID)
	}
	if event.Subject != "" {
		entry = entry.Str("subject", event.Subject)
	}
	if event.Purpose != "" {
		entry = entry.Str("purpose", event.Purpose)
	}
	if event.Error != "" {
		entry = entry.Str("error", event.Error)
	}
	entry.Msg("")
}
