package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"gomwu/internal/config"
	"gomwu/internal/errors"
	"gomwu/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Succeeds(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "ERROR"
	cfg.Analysis.ExcelPath = testkit.WriteGroupsWorkbook(t,
		testkit.Rows("Control", 1, 2, 3, 4, 5),
		testkit.Rows("Treatment", 10, 11, 12, 13, 14),
	)
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Plot = false

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))
	assert.Contains(t, out.String(), "Results saved to:")
}

func TestRun_ReturnsAnalysisError(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "ERROR"
	cfg.Analysis.ExcelPath = filepath.Join(t.TempDir(), "missing.xlsx")
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Plot = false

	var out bytes.Buffer
	err := run(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestRun_NilConfig(t *testing.T) {
	assert.Error(t, run(context.Background(), nil, &bytes.Buffer{}))
}
