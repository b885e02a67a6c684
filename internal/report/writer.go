package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// TimestampLayout names output files, e.g. 20240922_18:05.xlsx.
const TimestampLayout = "20060102_15:04"

const summarySheet = "Сводка"

// OutputPath returns <dir>/<report>/<timestamp>.xlsx.
func OutputPath(dir, report string, at time.Time) string {
	return filepath.Join(dir, report, at.Format(TimestampLayout)+".xlsx")
}

// Save writes table to path, creating parent directories. The workbook is
// written next to path and renamed into place so a failed save leaves no
// file behind.
func Save(table Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	f, err := Workbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := f.Write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move workbook: %w", err)
	}
	return nil
}

// Workbook lays table out on a single sheet, headers in row 1.
func Workbook(table Table) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := table.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := table.Headers
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if len(table.Headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(table.Headers))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", "A", 25); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
		if last != "A" {
			if err := f.SetColWidth(sheet, "B", last, 18); err != nil {
				return nil, fmt.Errorf("column width: %w", err)
			}
		}
	}

	if table.Summary != "" {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, fmt.Errorf("summary sheet: %w", err)
		}
		if err := f.SetCellValue(summarySheet, "A1", table.Summary); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetColWidth(summarySheet, "A", "A", 120); err != nil {
			return nil, fmt.Errorf("summary width: %w", err)
		}
	}

	return f, nil
}
