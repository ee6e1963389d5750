// Package logger builds *slog.Logger instances with consistent attributes.
//
// New returns a JSON or text logger configured through Option functions;
// NewFromConfig derives the same from APP_ENV / LOG_LEVEL. Request-scoped
// values such as the request id are attached to each record through
// ContextExtractor callbacks.
//
// Attribute helpers (Error, MemberID, PaymentRef, DaysLeft, ...) keep key
// names uniform across the service. Error returns an empty attribute for a
// nil error, so it can be passed unconditionally:
//
//	log.InfoContext(ctx, "payment applied",
//	    logger.MemberID(rec.MemberID),
//	    logger.Expiry(rec.Expiry.String()),
//	)
package logger
