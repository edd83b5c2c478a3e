package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gomwu/internal/errors"
	"gomwu/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataReader_ReadsFirstSheet(t *testing.T) {
	path := testkit.WriteGroupsWorkbook(t,
		testkit.Rows("Control", 1.5, 0.1),
		testkit.Rows("Treatment", 3),
	)

	ds, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, "Sheet1", ds.Sheet)
	assert.Equal(t, []string{"Group", "Value"}, ds.Headers)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "Control", ds.Rows[0]["Group"])
	assert.Equal(t, "1.5", ds.Rows[0]["Value"])
	assert.Equal(t, "0.1", ds.Rows[1]["Value"])
	assert.Equal(t, "Treatment", ds.Rows[2]["Group"])
	assert.Equal(t, "3", ds.Rows[2]["Value"])
}

func TestDataReader_NamedSheetAndBlankHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path, "Measurements",
		[]string{" Group ", "", "Value"},
		[][]interface{}{{"Control", "x", 2.25}},
	))

	ds, err := NewDataReader(ReaderConfig{FilePath: path, Sheet: "Measurements"}, nil).ReadData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Group", "Column_2", "Value"}, ds.Headers)
	assert.Equal(t, "2.25", ds.Rows[0]["Value"])
	assert.Equal(t, "x", ds.Rows[0]["Column_2"])
}

func TestDataReader_UnknownSheet(t *testing.T) {
	path := testkit.WriteGroupsWorkbook(t, testkit.Rows("Control", 1))

	_, err := NewDataReader(ReaderConfig{FilePath: path, Sheet: "Nope"}, nil).ReadData(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestDataReader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestDataReader_CorruptWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	_, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestDataReader_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, testkit.WriteWorkbook(path, "", testkit.DefaultHeaders, nil))

	_, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
}

func TestDataReader_CSV(t *testing.T) {
	path := testkit.WriteCSV(t, [][]string{
		{"Group", "Value"},
		{"Control", " 4.5 "},
		{"Treatment"},
	})

	ds, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "4.5", ds.Rows[0]["Value"])
	assert.Equal(t, "", ds.Rows[1]["Value"])
}

func TestDataReader_CancelledContext(t *testing.T) {
	path := testkit.WriteGroupsWorkbook(t, testkit.Rows("Control", 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(ReaderConfig{FilePath: path}, nil).ReadData(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
