package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Values bound to the root command's persistent flags.
var (
	NetworkString string
	Node          string
	Block         int64
	Strict        bool
	Output        string
	Verbose       bool
	NoColor       bool
	Gateway       bool
	Timeout       time.Duration
)

func ValidateOutput(output string) error {
	switch output {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output '%s', valid values: %s, %s, %s", output, OutputText, OutputJSON, OutputYAML)
}

// NewLogger logs to stderr: debug and up with verbose, warnings only
// otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
