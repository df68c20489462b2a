package main

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frame-classifier/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:        "test",
		AssetsDir:  t.TempDir(),
		DataDir:    t.TempDir(),
		ModelFile:  "model.onnx",
		LabelsFile: "labels.txt",
		Backend:    config.BackendOpenCV,
		InputSize:  4,
		Display:    config.DisplayHeadless,
	}
}

func TestRun_MissingModelReturnsError(t *testing.T) {
	cfg := testConfig(t)

	err := run(context.Background(), cfg, zaptest.NewLogger(t))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
