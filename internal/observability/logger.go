package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes for the terminal.
const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorReset  = "\x1b[0m"
)

// LoggerOptions controls the CLI logger.
type LoggerOptions struct {
	Verbose bool
	Debug   bool
	Color   bool
	// Out defaults to stderr so that stdout carries only results.
	Out io.Writer
}

// Level returns the minimum level implied by the verbosity flags.
func (o LoggerOptions) Level() zapcore.Level {
	switch {
	case o.Debug:
		return zapcore.DebugLevel
	case o.Verbose:
		return zapcore.InfoLevel
	default:
		return zapcore.WarnLevel
	}
}

// NewLogger builds a console logger for the CLI.
func NewLogger(opts LoggerOptions) *zap.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Color {
		encCfg.EncodeLevel = colorLevelEncoder
	}
	if !opts.Debug {
		encCfg.CallerKey = ""
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), opts.Level())

	options := []zap.Option{zap.AddStacktrace(zapcore.DPanicLevel)}
	if opts.Debug {
		options = append(options, zap.AddCaller())
	}
	return zap.New(core, options...)
}

// IsTerminal reports whether f looks like an interactive terminal.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch level {
	case zapcore.DebugLevel:
		color = colorCyan
	case zapcore.InfoLevel:
		color = colorBlue
	case zapcore.WarnLevel:
		color = colorYellow
	default:
		color = colorRed
	}
	enc.AppendString(fmt.Sprintf("%s%s%s", color, strings.ToUpper(level.String()), colorReset))
}
