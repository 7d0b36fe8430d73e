package service

import (
	"context"

	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/model"
)

// emit dispatches a lifecycle event after the originating state change has
// been committed. Delivery failures are logged and swallowed; they must
// never fail the credential operation.
func emit(ctx context.Context, n model.Notifier, log *logger.Logger, event string, payload map[string]any) {
	if err := n.Send(ctx, event, payload); err != nil {
		log.Warn("failed to dispatch event",
			"event", event,
			"error", err.Error())
	}
}
