// Package logger holds the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
)

// Log defaults to a no-op logger so library packages can log unconditionally;
// Init swaps in the configured one.
var Log = zap.NewNop()

// Init configures the global logger. Called once at startup.
func Init() {
	config := zap.NewDevelopmentConfig()
	config.DisableStacktrace = true

	log, err := config.Build()
	if err != nil {
		return
	}
	Log = log
}
