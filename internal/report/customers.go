package report

import (
	"context"

	"rahmet_export/internal/choco"
)

const ReportCustomers = "customers"

// CustomerHeaders is the column contract of the customers sheet.
var CustomerHeaders = []string{
	"Customer ID",
	"Имя",
	"телефон",
	"Общая сумма оплат",
	"Всего оплат",
	"Средний чек",
	"Средняя выручка с клиента за последние 3 месяца",
	"Роздано бонусов",
	"Оплачено бонусами",
	"Первая оплата",
	"Последняя оплата",
	"Сумма последней оплаты",
	"Предпоследняя оплата",
	"Сумма предпоследней оплаты",
}

type CustomersBuilder struct {
	source CustomerSource
}

func NewCustomersBuilder(source CustomerSource) *CustomersBuilder {
	return &CustomersBuilder{source: source}
}

func (b *CustomersBuilder) Name() string {
	return ReportCustomers
}

func (b *CustomersBuilder) Build(ctx context.Context) (Table, error) {
	terminals, err := b.source.FetchTerminals(ctx)
	if err != nil {
		return Table{}, err
	}

	customers, err := b.source.FetchCustomers(ctx, choco.TerminalIDs(terminals))
	if err != nil {
		return Table{}, err
	}

	rows := make([][]any, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, CustomerRow(customer))
	}

	return Table{
		Report:  ReportCustomers,
		Sheet:   "Клиенты",
		Headers: CustomerHeaders,
		Rows:    rows,
		// Names and phones stay out of third-party summaries.
		Private: []int{1, 2},
	}, nil
}

// CustomerRow projects a customer onto CustomerHeaders.
func CustomerRow(c choco.Customer) []any {
	var attrs choco.CustomerAttributes
	if c.Details != nil {
		attrs = c.Details.Attributes
	}
	var stats choco.CustomerStatistics
	if attrs.Statistics != nil {
		stats = *attrs.Statistics
	}

	row := []any{
		idCell(attrs.UserID),
		scalarCell(attrs.FullName),
		scalarCell(attrs.Phone),
		decimalCell(stats.Turnover),
		decimalCell(stats.OrdersCount),
		decimalCell(stats.AverageBill),
		decimalCell(stats.AverageRevenue),
		decimalCell(stats.TotalGivenCashback),
		decimalCell(stats.TotalPaymentFromBalance),
		scalarCell(attrs.FirstPaymentDate),
	}
	for i := 0; i < 2; i++ {
		row = append(row, paymentCells(c.PaymentAt(i))...)
	}
	return row
}

func paymentCells(tx *choco.Transaction) []any {
	if tx == nil {
		return []any{"", ""}
	}
	return []any{scalarCell(tx.CreatedAt), decimalCell(tx.Amount)}
}
