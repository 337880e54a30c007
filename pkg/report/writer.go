// Package report renders a removal report as a spreadsheet and reads it
// back. The workbook carries two sheets: per-item outcomes with a Result
// column, and the pre-deletion status tally.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/merchix/catalog-sweeper/pkg/removal"
)

// Sheet names.
const (
	SheetOutcomes = "Report"
	SheetSummary  = "Summary"
)

// Result column values.
const (
	ResultRemoved = "removed"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

var outcomeHeaders = []string{"identifier", "status", "response_code", "detail", "Result"}
var summaryHeaders = []string{"status", "count"}

// Write renders rep as an xlsx workbook. Outcome rows appear removed first,
// then failed, then skipped, preserving batch order within each group. The
// summary sheet lists the audit tally sorted by count descending.
func Write(w io.Writer, rep *removal.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOutcomes); err != nil {
		return fmt.Errorf("rename outcome sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, header := range outcomeHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetOutcomes, cell, header); err != nil {
			return fmt.Errorf("write outcome header: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetOutcomes, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("style outcome header: %w", err)
	}

	row := 2
	for _, group := range []struct {
		outcomes []removal.Outcome
		result   string
	}{
		{rep.Removed, ResultRemoved},
		{rep.Failed, ResultFailed},
		{rep.Skipped, ResultSkipped},
	} {
		for _, outcome := range group.outcomes {
			if err := writeOutcomeRow(f, row, outcome, group.result); err != nil {
				return err
			}
			row++
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	for col, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(SheetSummary, cell, header); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}

	for i, sc := range rep.Tally.Sorted() {
		rowName := fmt.Sprintf("%d", i+2)
		if err := f.SetCellValue(SheetSummary, "A"+rowName, sc.Status); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
		if err := f.SetCellValue(SheetSummary, "B"+rowName, sc.Count); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	return f.Write(w)
}

func writeOutcomeRow(f *excelize.File, row int, outcome removal.Outcome, result string) error {
	values := []interface{}{
		outcome.Identifier,
		outcome.Status,
		outcome.ResponseCode,
		outcome.Detail,
		result,
	}
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := f.SetCellValue(SheetOutcomes, cell, value); err != nil {
			return fmt.Errorf("write outcome row %d: %w", row, err)
		}
	}
	return nil
}
