package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // no flags: results and errors only
	VerbosityInfo  = 1 // -v: + merge summaries, per-class progress
	VerbosityDebug = 2 // -vv: + path searches, rule matching
	VerbosityTrace = 3 // -vvv: + per-step frontier dumps
)

// VerbosityToLevel maps verbosity flags (-v, -vv, ...) to zap log levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv). Use for per-step
// search dumps that are too noisy for ordinary debug output.
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}
