// Package export writes saved student records to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/gema-reportcard/internal/dto"
)

// SheetName is the worksheet that holds exported records.
const SheetName = "Records"

// Header is the first row of every exported sheet.
var Header = []string{
	"ID",
	"Name",
	"Roll Number",
	"Midterm",
	"End Term",
	"Internal",
	"Midterm Contribution",
	"End Term Contribution",
	"Internal Contribution",
	"Final Score",
	"Recorded At (UTC)",
}

// WriteWorkbook writes records, in the order given, as a single-sheet XLSX workbook.
func WriteWorkbook(w io.Writer, records []dto.StudentRecordResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, title := range Header {
		header[i] = title
	}
	if err := setRow(f, 1, header); err != nil {
		return err
	}

	for i, record := range records {
		row := []interface{}{
			record.ID,
			record.Name,
			record.RollNumber,
			record.Midterm,
			record.Endterm,
			record.Internal,
			record.Contributions.Midterm,
			record.Contributions.Endterm,
			record.Contributions.Internal,
			record.Contributions.Final,
			record.RecordedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
