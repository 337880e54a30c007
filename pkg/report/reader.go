package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/merchix/catalog-sweeper/pkg/catalog"
	"github.com/merchix/catalog-sweeper/pkg/removal"
)

// Read parses a workbook previously produced by Write back into a report.
// Outcome grouping follows the Result column; row order within each group
// is preserved.
func Read(r io.Reader) (*removal.Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetOutcomes)
	if err != nil {
		return nil, fmt.Errorf("read outcome sheet: %w", err)
	}

	rep := &removal.Report{Tally: make(catalog.Tally)}

	// Row 1 is the header.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		cell := func(col int) string {
			if col < len(row) {
				return row[col]
			}
			return ""
		}

		code, _ := strconv.Atoi(cell(2))
		result := cell(4)
		outcome := removal.Outcome{
			Identifier:   cell(0),
			Status:       cell(1),
			Succeeded:    result == ResultRemoved,
			ResponseCode: code,
			Detail:       cell(3),
		}

		switch result {
		case ResultRemoved:
			rep.Removed = append(rep.Removed, outcome)
		case ResultFailed:
			rep.Failed = append(rep.Failed, outcome)
		case ResultSkipped:
			rep.Skipped = append(rep.Skipped, outcome)
		default:
			return nil, fmt.Errorf("row %d: unknown result %q", i+1, result)
		}
	}

	summaryRows, err := f.GetRows(SheetSummary)
	if err != nil {
		return nil, fmt.Errorf("read summary sheet: %w", err)
	}
	for i := 1; i < len(summaryRows); i++ {
		row := summaryRows[i]
		if len(row) < 2 || row[0] == "" {
			continue
		}
		count, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("summary row %d: parse count %q: %w", i+1, row[1], err)
		}
		rep.Tally[row[0]] = count
	}

	return rep, nil
}
