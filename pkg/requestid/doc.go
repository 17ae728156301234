// Package requestid correlates the log records of one HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header or generates a UUID,
// echoes it on the response and stores it in the request context.
// LoggerExtractor plugs into logger.WithContextExtractors so every record
// logged with that context carries a "request_id" attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
