package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/gema-reportcard/internal/config"
	"github.com/noah-isme/gema-reportcard/internal/export"
)

func runApp(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cfg := config.Config{AppName: "Report Card Generator", DatabaseDriver: "sqlite", DatabasePath: dbPath}

	app := newApp(cfg, zerolog.Nop())
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.RunContext(context.Background(), append([]string{"reportcard"}, args...))
	return out.String(), err
}

func TestAddListShowExport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "records.db")

	out, err := runApp(t, dbPath, "add", "--name", "Asha Rao", "--roll", "R1", "--midterm", "25", "--endterm", "50", "--internal", "50")
	require.NoError(t, err)
	require.Contains(t, out, "FINAL SCORE (out of 100):   50.00")
	require.Contains(t, out, "Record 1 saved for roll number R1.")

	_, err = runApp(t, dbPath, "add", "--name", "Ben", "--roll", "R2", "--midterm", "50", "--endterm", "100", "--internal", "100")
	require.NoError(t, err)

	out, err = runApp(t, dbPath, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Asha Rao")
	require.Less(t, bytes.Index([]byte(out), []byte("Ben")), bytes.Index([]byte(out), []byte("Asha Rao")))

	out, err = runApp(t, dbPath, "show", "R2")
	require.NoError(t, err)
	require.Contains(t, out, "FINAL SCORE (out of 100):   100.00")

	xlsxPath := filepath.Join(dir, "records.xlsx")
	out, err = runApp(t, dbPath, "export", "--out", xlsxPath)
	require.NoError(t, err)
	require.Contains(t, out, "Exported 2 records")

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Ben", rows[1][1])
}

func TestAddDuplicateAndDryRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")

	_, err := runApp(t, dbPath, "add", "--name", "Asha", "--roll", "R1", "--midterm", "10", "--endterm", "10", "--internal", "10")
	require.NoError(t, err)

	_, err = runApp(t, dbPath, "add", "--name", "Other", "--roll", "R1", "--midterm", "20", "--endterm", "20", "--internal", "20")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.ExitCode())

	out, err := runApp(t, dbPath, "add", "--name", "Dry", "--roll", "R9", "--midterm", "20", "--endterm", "20", "--internal", "20", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "REPORT CARD")
	require.NotContains(t, out, "saved")

	_, err = runApp(t, dbPath, "show", "R9")
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 4, exitErr.ExitCode())
}

func TestAddRejectsOutOfRangeMarks(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")

	_, err := runApp(t, dbPath, "add", "--name", "Asha", "--roll", "R1", "--midterm", "60", "--endterm", "10", "--internal", "10")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.ExitCode())
	require.Contains(t, err.Error(), "Midterm marks should be between 0 and 50!")

	_, statErr := os.Stat(dbPath)
	require.NoError(t, statErr, "store is bootstrapped even when nothing is saved")
}

func TestAddRequiresEveryMark(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")

	_, err := runApp(t, dbPath, "add", "--name", "Asha", "--roll", "R1", "--midterm", "10", "--internal", "10")
	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.ExitCode())
	require.Contains(t, err.Error(), "End term marks are required!")

	out, err := runApp(t, dbPath, "list")
	require.NoError(t, err)
	require.Contains(t, out, "No records found in database!")

	_, err = runApp(t, dbPath, "add", "--name", "Asha", "--roll", "R1", "--midterm", "0", "--endterm", "0", "--internal", "0")
	require.NoError(t, err)
}

func TestMetricsFileWrittenOnExit(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "records.db")
	metricsPath := filepath.Join(dir, "reportcard.prom")

	_, err := runApp(t, dbPath, "--metrics-file", metricsPath, "add", "--name", "Asha", "--roll", "R1", "--midterm", "25", "--endterm", "50", "--internal", "50")
	require.NoError(t, err)

	body, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(body), "reportcard_computed_total")
	require.Contains(t, string(body), `reportcard_records_saved_total{outcome="saved"}`)
	require.Contains(t, string(body), "reportcard_final_score_bucket")
}
