package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileWriter struct {
	*os.File
	uri fyne.URI
}

func (f *fileWriter) URI() fyne.URI { return f.uri }

func createWriter(t *testing.T, path string) *fileWriter {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	return &fileWriter{File: file, uri: storage.NewFileURI(path)}
}

func TestExportCSVWritesHeaderAndIndex(t *testing.T) {
	table := loadString(t, sampleInput, "sample.csv")

	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).Export(&buf, FormatCSV, table.FilterByWafer("W2")))

	want := ",Operator,DateTime,WaferID,R,Resistance,Other\n" +
		"2,erin,2024-03-01 08:20,W2,r5,9.75,ok\n"
	assert.Equal(t, want, buf.String())
}

func TestExportEmptySelectionWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExportService(nil).Export(&buf, FormatCSV, nil))
	assert.Equal(t, ",Operator,DateTime,WaferID,R,Resistance,Other\n", buf.String())
}

func TestExportRoundTrip(t *testing.T) {
	formats := map[string]string{"csv": "w1.csv", "xlsx": "w1.xlsx"}
	original := loadString(t, sampleInput+"frank,2024-03-01 08:25,W1,r6,12.5,\n", "sample.csv")
	expected := original.FilterByWafer("W1")
	require.Len(t, expected, 3)

	for name, file := range formats {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), file)
			writer := createWriter(t, path)

			require.NoError(t, NewExportService(nil).SaveToWriter(context.Background(), writer, expected))

			reloaded, err := NewRecordService(nil).LoadFile(context.Background(), path)
			require.NoError(t, err)
			require.Equal(t, len(expected), reloaded.Len())
			assert.Zero(t, reloaded.Skipped)

			for i, rec := range reloaded.Records {
				assert.Equal(t, "W1", rec.WaferID)
				assert.Equal(t, expected[i], rec, "row %d must match the original record", i)
				assert.Contains(t, original.Records, rec)
			}
		})
	}
}

func TestSaveToWriterHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := createWriter(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExportService(nil).SaveToWriter(ctx, writer, nil)
	assert.ErrorIs(t, err, context.Canceled)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.Zero(t, info.Size())
}
