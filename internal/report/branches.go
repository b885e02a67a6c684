package report

import (
	"context"

	"rahmet_export/internal/choco"
)

const ReportBranches = "main"

// BranchHeaders is the column contract of the branch sheet.
var BranchHeaders = []string{
	"Филиал",
	"Оборота получено",
	"изменение оборота",
	"Оплат прошло",
	"изменение оплат",
	"Средний чек",
	"изменение среднего чека",
	"гости(всего)",
	"гости(новые)",
	"гости(постоянные)",
	"гости(остальные)",
	"Rating",
	"количество отзывов",
}

type BranchesBuilder struct {
	source BranchSource
}

func NewBranchesBuilder(source BranchSource) *BranchesBuilder {
	return &BranchesBuilder{source: source}
}

func (b *BranchesBuilder) Name() string {
	return ReportBranches
}

func (b *BranchesBuilder) Build(ctx context.Context) (Table, error) {
	terminals, err := b.source.FetchTerminals(ctx)
	if err != nil {
		return Table{}, err
	}

	branches, err := b.source.FetchAllBranches(ctx, choco.TerminalIDs(terminals))
	if err != nil {
		return Table{}, err
	}

	names := choco.TerminalNames(terminals)
	rows := make([][]any, 0, len(branches))
	for _, stats := range branches {
		rows = append(rows, BranchRow(stats, names))
	}

	return Table{
		Report:  ReportBranches,
		Sheet:   "Филиалы",
		Headers: BranchHeaders,
		Rows:    rows,
	}, nil
}

// BranchRow projects branch stats onto BranchHeaders; the branch name comes
// from the terminal lookup.
func BranchRow(stats choco.BranchStats, names map[int64]string) []any {
	row := []any{names[stats.ID]}
	for _, idx := range []*choco.Index{
		stats.Indexes.Turnover,
		stats.Indexes.Transactions,
		stats.Indexes.AverageCheck,
	} {
		if idx == nil {
			row = append(row, "", "")
			continue
		}
		row = append(row, decimalCell(idx.Sum), progressCell(idx.Progress))
	}

	row = append(row,
		countCell(stats.Guests.All),
		countCell(stats.Guests.New),
		countCell(stats.Guests.Regular),
		countCell(stats.Guests.Other),
	)

	if info := stats.Reviews.Info; info != nil {
		row = append(row, decimalCell(info.Rating), countCell(info.Count))
	} else {
		row = append(row, "", "")
	}
	return row
}
