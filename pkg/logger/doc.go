// Package logger builds *slog.Logger instances for the gitlabauth packages and
// provides attribute helpers that keep key names consistent.
//
// New returns a JSON or text logger configured through Option functions.
// ContextExtractor callbacks registered with WithContextExtractors run on
// every record, which is how request ids reach the OAuth callback logs.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "gitlab-login"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.WarnContext(ctx, "secondary fetch failed",
//	    logger.Provider("gitlab"),
//	    logger.Resource("emails"),
//	    logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
