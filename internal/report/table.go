// Package report turns fetched analytics records into flat spreadsheet tables.
package report

import (
	"context"

	"rahmet_export/internal/choco"
)

// Table is one sheet worth of data. Row values are strings, int64 or
// float64; a missing value is the empty string.
type Table struct {
	// Report names the output subdirectory, e.g. "customers".
	Report  string
	Sheet   string
	Headers []string
	Rows    [][]any
	// Private lists column indexes holding personal data. They are written
	// to the sheet but never passed to a Summarizer.
	Private []int
	// Summary, when set, is written to a separate sheet.
	Summary string
}

// Public returns headers and rows without the Private columns.
func (t Table) Public() ([]string, [][]any) {
	if len(t.Private) == 0 {
		return t.Headers, t.Rows
	}
	private := make(map[int]bool, len(t.Private))
	for _, i := range t.Private {
		private[i] = true
	}

	headers := make([]string, 0, len(t.Headers))
	for i, h := range t.Headers {
		if !private[i] {
			headers = append(headers, h)
		}
	}
	rows := make([][]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		public := make([]any, 0, len(row))
		for i, v := range row {
			if !private[i] {
				public = append(public, v)
			}
		}
		rows = append(rows, public)
	}
	return headers, rows
}

type Builder interface {
	Name() string
	Build(ctx context.Context) (Table, error)
}

type CustomerSource interface {
	FetchTerminals(ctx context.Context) ([]choco.Terminal, error)
	FetchCustomers(ctx context.Context, terminalIDs []int64) ([]choco.Customer, error)
}

type BranchSource interface {
	FetchTerminals(ctx context.Context) ([]choco.Terminal, error)
	FetchAllBranches(ctx context.Context, branchIDs []int64) ([]choco.BranchStats, error)
}
