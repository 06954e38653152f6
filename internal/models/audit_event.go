package models

import "time"

// Audit event types.
const (
	AuditSignUp        = "SIGNUP"
	AuditSignIn        = "SIGNIN"
	AuditSignInFailed  = "SIGNIN_FAILED"
	AuditProfileUpdate = "PROFILE_UPDATE"
)

// AuditEvent is a single entry in the append-only audit trail.
type AuditEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // SIGNUP | SIGNIN | SIGNIN_FAILED | PROFILE_UPDATE
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
