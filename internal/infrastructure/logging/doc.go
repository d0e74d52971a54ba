// Package logging builds the zap logger courier clients write to.
//
// Production loggers emit JSON; development loggers emit colored console
// output. A client that is not handed a logger uses NewDefault, which only
// reports warnings and errors.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Debug("request sent", zap.String("method", "GET"))
//	logger.Warn("codec failed", zap.Error(err))
package logging
