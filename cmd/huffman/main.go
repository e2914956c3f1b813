package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Firsttown/BitArchive-dev/internal/archive"
	"github.com/Firsttown/BitArchive-dev/internal/config"
	"github.com/Firsttown/BitArchive-dev/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	cfg, err := config.Parse(args, os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	return execute(cfg, logger)
}

// execute runs one compress or decompress and logs its failure, if any.
func execute(cfg config.Config, logger *logrus.Logger) int {
	log := logger.WithFields(logrus.Fields{
		"mode":   string(cfg.Mode),
		"input":  cfg.Input,
		"output": cfg.Output,
	})

	arch := archive.NewArchiver(log)
	var err error
	switch cfg.Mode {
	case config.ModeCompress:
		err = arch.Compress(cfg.Input, cfg.Output)
	case config.ModeDecompress:
		err = arch.Decompress(cfg.Input, cfg.Output)
	}
	if err != nil {
		log.WithError(err).Error("operation aborted")
		return 1
	}
	return 0
}
