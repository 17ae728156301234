package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/gitlabauth/pkg/logger"
)

// LoggerExtractor adds the request id of the record's context under "request_id".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		return logger.RequestID(id), id != ""
	}
}
