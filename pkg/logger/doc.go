// Package logger builds the structured slog loggers used across the SDK.
//
// A single factory, New, returns a *slog.Logger configured through functional
// options: output format (text or json), minimum level, static attributes and
// context extractors that copy request-scoped values into every record.
//
// Attribute helpers in attr.go keep key names consistent between components,
// so that a provider log line and a gateway log line for the same user can be
// correlated by user_id and request_id.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(logger.Component("example-app")),
//	)
//
//	log.Info("trigger point fired",
//	    logger.UserID("u-1"),
//	    logger.TriggerPoint("checkout"),
//	)
//
// Components that accept an optional logger fall back to Discard so that the
// SDK stays silent unless the host application opts in.
package logger
