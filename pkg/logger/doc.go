// Package logger builds the *slog.Logger used across uval: functional options
// for format, level and static attributes, helper attribute constructors with
// consistent keys, and context extractors that add request-scoped values such
// as the request id to every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "uval"),
//	    logger.WithContextExtractors(logger.RequestIDExtractor()),
//	)
//
//	log.WarnContext(ctx, "validated element has no name, skipping",
//	    logger.Component("parser"),
//	    logger.Element("input"),
//	)
//
// Library packages accept a logger through their options and fall back to
// Discard, so nothing is printed unless the caller asks for it.
//
// Error and Errors return an empty attribute for nil errors, which slog drops:
//
//	log.Info("setup finished", logger.Error(err))
package logger
