package config

import (
	"os"
	"strings"
)

// PipelineDebugTrace turns on the logrus-backed stage trace collector so
// every pipeline stage emits its intermediate output. Heavy; dev only.
//
// Set via env:
// - PIPELINE_DEBUG_TRACE=true
func PipelineDebugTrace() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PIPELINE_DEBUG_TRACE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
