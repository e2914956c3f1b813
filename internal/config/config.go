// Package config turns command line arguments and environment variables
// into the settings the CLI runs with.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Firsttown/BitArchive-dev/internal/archive"
	"github.com/Firsttown/BitArchive-dev/internal/logging"
)

const (
	EnvLogLevel  = "BITARCHIVE_LOG_LEVEL"
	EnvLogFormat = "BITARCHIVE_LOG_FORMAT"
)

type Mode string

const (
	ModeCompress   Mode = "c"
	ModeDecompress Mode = "d"
)

var ErrUsage = errors.New("usage: huffman [-level L] [-format text|json] c|d <input> [output]")

type Config struct {
	Mode      Mode
	Input     string
	Output    string
	LogLevel  string
	LogFormat string
}

// Parse reads flags and positionals from args (without the program name).
// Flags win over the environment; unset values fall back to info level
// text logs. A missing output path is derived from the input.
func Parse(args []string, getenv func(string) string) (Config, error) {
	cfg := Config{
		LogLevel:  "info",
		LogFormat: logging.FormatText,
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}

	fs := flag.NewFlagSet("huffman", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "format", cfg.LogFormat, "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := logging.CheckFormat(cfg.LogFormat); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 3 {
		return cfg, ErrUsage
	}

	cfg.Mode = Mode(rest[0])
	cfg.Input = rest[1]
	if len(rest) == 3 {
		cfg.Output = rest[2]
	}

	switch cfg.Mode {
	case ModeCompress:
		if cfg.Output == "" {
			cfg.Output = archive.CompressedName(cfg.Input)
		}
	case ModeDecompress:
		if cfg.Output == "" {
			out, err := archive.DecompressedName(cfg.Input)
			if err != nil {
				return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
			}
			cfg.Output = out
		}
	default:
		return cfg, fmt.Errorf("%w: unknown mode %q", ErrUsage, cfg.Mode)
	}
	return cfg, nil
}
