//go:build !gocv
// +build !gocv

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRun_BackendFailureReturnsError(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.AssetsDir, cfg.ModelFile), []byte("not a network"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.AssetsDir, cfg.LabelsFile), []byte("cat\ndog\n"), 0o644))

	err := run(context.Background(), cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "load opencv model")

	// копия модели уже сделана и остаётся на месте
	_, statErr := os.Stat(filepath.Join(cfg.DataDir, cfg.ModelFile))
	require.NoError(t, statErr)
}
