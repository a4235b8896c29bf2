package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freeflix/config"
)

func TestSetupLogging_WritesToFileAndStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freeflix.log")
	var stderr bytes.Buffer

	restore := setupLogging(config.LogSettings{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, &stderr)
	log.Printf("[test] hello")
	restore()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[test] hello")
	assert.Contains(t, stderr.String(), "[test] hello")
}

func TestSetupLogging_NoFile(t *testing.T) {
	var stderr bytes.Buffer
	restore := setupLogging(config.LogSettings{}, &stderr)
	log.Printf("[test] plain")
	restore()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	assert.Contains(t, stderr.String(), "[test] plain")
}
