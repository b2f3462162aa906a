package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/gema-reportcard/internal/dto"
	"github.com/noah-isme/gema-reportcard/internal/scoring"
)

func TestWriteWorkbookRoundTrip(t *testing.T) {
	recorded := time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)
	records := []dto.StudentRecordResponse{
		{
			ID:         2,
			RecordedAt: recorded,
			ReportCard: dto.ReportCard{
				Name: "Ben", RollNumber: "R2", Midterm: 25, Endterm: 50, Internal: 50,
				Contributions: scoring.Compute(25, 50, 50),
			},
		},
		{
			ID:         1,
			RecordedAt: recorded.Add(-time.Hour),
			ReportCard: dto.ReportCard{
				Name: "Asha", RollNumber: "R1", Midterm: 37.5, Endterm: 72, Internal: 88,
				Contributions: scoring.Compute(37.5, 72, 88),
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, records))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, Header, rows[0])
	require.Equal(t, []string{"2", "Ben", "R2"}, rows[1][:3])
	require.Equal(t, "50", rows[1][9])
	require.Equal(t, "2026-10-19 09:15:00", rows[1][10])
	require.Equal(t, "Asha", rows[2][1])
	require.Equal(t, "79.3", rows[2][9])
}

func TestWriteWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
