package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/Firsttown/BitArchive-dev/internal/archive"
	"github.com/Firsttown/BitArchive-dev/internal/config"
)

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.bin")
	src := []byte("abracadabra, abracadabra")
	require.NoError(t, os.WriteFile(input, src, 0o644))

	var stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-level", "error", "c", input}, &stderr))
	require.NoError(t, os.Remove(input))
	require.Equal(t, 0, run([]string{"-level", "error", "d", input + ".arc"}, &stderr))
	require.Zero(t, stderr.Len())

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()

	var stderr bytes.Buffer
	require.Equal(t, 2, run([]string{"z", "x"}, &stderr))
	require.Contains(t, stderr.String(), "unknown mode")

	stderr.Reset()
	require.Equal(t, 2, run([]string{"-level", "loud", "c", "x"}, &stderr))
	require.Contains(t, stderr.String(), "loud")

	stderr.Reset()
	missing := filepath.Join(dir, "missing")
	require.Equal(t, 1, run([]string{"c", missing}, &stderr))
	require.Contains(t, stderr.String(), "level=error")
	require.Contains(t, stderr.String(), "cannot open input")
	require.NoFileExists(t, missing+".arc")
}

func TestExecuteLogsOpenFailure(t *testing.T) {
	dir := t.TempDir()
	logger, hook := logtest.NewNullLogger()

	cfg := config.Config{
		Mode:   config.ModeCompress,
		Input:  filepath.Join(dir, "missing"),
		Output: filepath.Join(dir, "missing.arc"),
	}
	require.Equal(t, 1, execute(cfg, logger))

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, cfg.Input, entry.Data["input"])
	err, ok := entry.Data[logrus.ErrorKey].(error)
	require.True(t, ok)
	require.True(t, errors.Is(err, archive.ErrOpenInput))
}

func TestExecuteLogsSamePath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.arc")
	require.NoError(t, os.WriteFile(input, []byte("x"), 0o644))
	logger, hook := logtest.NewNullLogger()

	cfg := config.Config{Mode: config.ModeDecompress, Input: input, Output: input}
	require.Equal(t, 1, execute(cfg, logger))
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}
