package report

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/batch"
	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/translate"
)

func TestWriteSummary(t *testing.T) {
	summary := &batch.Summary{
		RunID: "3f6b2c1a-run",
		Results: []batch.Result{
			{
				Input:    "/in/house_a.h2k",
				Output:   "/out/house_a.xml",
				Warnings: []translate.Warning{{Message: "source declares 0 bathrooms; defaulting to 1"}},
				Duration: 40 * time.Millisecond,
			},
			{
				Input:    "/in/house_b.h2k",
				Err:      errors.New("weather: source document has no weather region"),
				Duration: 5 * time.Millisecond,
			},
		},
		Succeeded: 1,
		Failed:    1,
		Duration:  45 * time.Millisecond,
	}

	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, Write(path, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 9)

	assert.Equal(t, []string{"Run ID", "3f6b2c1a-run"}, rows[0][:2])
	assert.Equal(t, "Input", rows[6][0])
	assert.Equal(t, "house_a.h2k", rows[7][0])
	assert.Equal(t, "ok", rows[7][2])
	assert.Equal(t, "failed", rows[8][2])
	assert.Contains(t, rows[8][4], "weather")

	// A failed result produced no output file, so its Output cell is blank.
	assert.Equal(t, "", rows[8][1])
}
