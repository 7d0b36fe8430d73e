package model

import "context"

// Event names recognized by downstream consumers. The names and payload
// keys are part of the external contract and must not change.
const (
	EventLoginTokenEmail  = "login_token_email"
	EventResetCodeCreated = "reset_code_created"
	EventPasswordChanged  = "user-password-changed"
)

// Notifier receives lifecycle events for downstream delivery. Calls are
// fire-and-forget: services invoke Send only after their state change is
// durably committed, and a delivery failure never propagates to the caller
// of the originating operation.
type Notifier interface {
	Send(ctx context.Context, event string, payload map[string]any) error
}
