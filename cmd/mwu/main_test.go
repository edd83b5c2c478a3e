package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gomwu/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunThenInspect(t *testing.T) {
	input := testkit.WriteGroupsWorkbook(t,
		testkit.Rows("Placebo", 1, 2, 3, 4, 5),
		testkit.Rows("Drug", 10, 11, 12, 13, 14),
	)
	outDir := t.TempDir()

	out, err := execute(t, "run",
		"--excel", input,
		"--group1", "Placebo",
		"--group2", "Drug",
		"--prefix", "trial",
		"--output-dir", outDir,
		"--plot=false",
		"--log-level", "ERROR",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Significant difference: Yes")

	matches, err := filepath.Glob(filepath.Join(outDir, "trial_results_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	out, err = execute(t, "inspect", matches[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Mann-Whitney U Test: Placebo vs Drug")
	assert.Contains(t, out, "Significant difference: Yes")
	assert.Contains(t, out, "25th Percentile")
}

func TestRun_InvalidFlag(t *testing.T) {
	_, err := execute(t, "run", "--method", "bootstrap", "--excel", "x.xlsx")
	assert.Error(t, err)
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "none.xlsx"))
	assert.Error(t, err)
}

func TestMain(m *testing.M) {
	// keep a developer's .env out of the tests
	dir, err := os.MkdirTemp("", "mwu-cli")
	if err == nil {
		_ = os.Chdir(dir)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
