// Package logger builds *slog.Logger values for the blueprint service and
// holds the attribute helpers used across it.
//
// New picks a JSON or text handler, applies a level, static attributes and
// context extractors:
//
//	log := logger.New(
//		logger.WithEnvironment("prod", "blueprint"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "payload validated",
//		logger.Blueprint("user/register"),
//		logger.Outcome("valid"),
//	)
//
// WithEnvironment sets the level and format of a deployment environment
// (debug/text for development, info/json otherwise). Later options override
// it, which is how the CLI applies BLUEPRINT_LOG_LEVEL and --verbose.
//
// ContextHandler runs the extractors on every record so request scoped
// values (request id, client ip) are logged without threading them through
// call sites.
//
// Error and Errors return an empty attribute for nil errors, which slog
// drops, so they can be passed unconditionally.
package logger
