package notify

import (
	"context"

	"github.com/ndanilin/accountd/internal/logger"
)

// LogSink writes events to the log instead of sending mail. It serves
// local development, where no SMTP host is configured.
type LogSink struct {
	logger *logger.Logger
}

var _ Sink = (*LogSink)(nil)

func NewLogSink(logger *logger.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(ctx context.Context, event string, payload map[string]any) error {
	s.logger.Info("event",
		"event", event,
		"payload", payload)
	return nil
}
