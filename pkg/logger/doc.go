// Package logger builds *slog.Logger instances for browniegate components and
// defines the attribute helpers they share.
//
// New creates a logger from functional options: output format (json or text),
// minimum level, static attributes and ContextExtractor callbacks that pull
// request-scoped values such as the request id out of context.Context on every
// record. Discard returns a logger that drops everything and is the default for
// components that were not given one.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "checkout"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.WarnContext(ctx, "session token failed authentication",
//	    logger.Event("session.authentication_failed"),
//	    logger.Error(err),
//	)
//
// # Attributes
//
// Helpers such as Error, UserID, TokenID and StatusCode keep key names
// consistent across packages. Helpers taking an optional value return an empty
// slog.Attr for nil or empty input, which slog ignores, so call sites need no
// nil checks. Token values themselves must never be logged; use TokenID.
package logger
