package notifier

import (
	"context"

	"github.com/prasetya/trackping/internal/domain/entity"
)

// Notifier delivers one text message. Implementations are best-effort:
// a missing configuration is a logged no-op, and callers never retry.
type Notifier interface {
	Send(ctx context.Context, phone string, carrier entity.Carrier, text string) error
}

// NotifyJob is the JSON payload describing one text to deliver. It is
// what the queue dispatcher publishes and the notify worker consumes.
type NotifyJob struct {
	Phone   string         `json:"phone"`
	Carrier entity.Carrier `json:"carrier,omitempty"`
	Message string         `json:"message"`
}
