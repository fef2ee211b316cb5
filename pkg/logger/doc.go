// Package logger provides a small factory around log/slog plus typed
// attribute helpers shared by the rest of the codebase.
//
// The attribute helpers keep log keys consistent across packages so that
// records can be correlated in aggregation systems:
//
//	log := logger.New(logger.WithLevel(slog.LevelDebug))
//	log.LogAttrs(ctx, slog.LevelInfo, "notification dispatched",
//		logger.UserID(userID),
//		logger.Kind(string(intent.Kind)),
//	)
package logger
