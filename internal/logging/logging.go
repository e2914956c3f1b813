// Package logging builds the logrus logger shared by the CLI and the codec.
package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrFormat = errors.New("logging: unknown format")

// CheckFormat accepts FormatText and FormatJSON only.
func CheckFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w %q", ErrFormat, format)
}

// New returns a logger writing to out at the given level and format.
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	if format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
