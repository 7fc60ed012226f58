// Package logging configures the structured logger for the pipeline.
//
// It wraps log/slog with level and format parsing so the logger can be
// built straight from configuration values. Components receive the
// resulting *slog.Logger and attach their own "component" attribute.
//
// Example:
//
//	logger, err := logging.New(logging.Config{
//		Level:  "debug",
//		Format: "json",
//	})
//	if err != nil {
//		return err
//	}
//	logger.Info("starting", "version", version)
package logging
