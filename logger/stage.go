package logger

import "go.uber.org/zap"

// Pipeline stage names, logged as the "stage" field rather than in the message.
//
// Usage:
//
//	// Instead of:
//	log.Debugw("conflict: slot falls back", "slot", key)
//
//	// Use:
//	logger.StageDebugw(log, logger.StageConflict, "slot falls back", "slot", key)
const (
	StageExtract    = "extract"
	StageSatisfy    = "satisfy"
	StageConflict   = "conflict"
	StageDelegation = "delegation"
	StageStrategy   = "strategy"
	StageLiteral    = "literal"
)

// StageDebugw logs a debug message tagged with a pipeline stage
func StageDebugw(log *zap.SugaredLogger, stage, msg string, keysAndValues ...interface{}) {
	if log == nil {
		return
	}
	fields := append([]interface{}{FieldStage, stage}, keysAndValues...)
	log.Debugw(msg, fields...)
}

// StageInfow logs an info message tagged with a pipeline stage
func StageInfow(log *zap.SugaredLogger, stage, msg string, keysAndValues ...interface{}) {
	if log == nil {
		return
	}
	fields := append([]interface{}{FieldStage, stage}, keysAndValues...)
	log.Infow(msg, fields...)
}

// StageWarnw logs a warning tagged with a pipeline stage
func StageWarnw(log *zap.SugaredLogger, stage, msg string, keysAndValues ...interface{}) {
	if log == nil {
		return
	}
	fields := append([]interface{}{FieldStage, stage}, keysAndValues...)
	log.Warnw(msg, fields...)
}
