package report_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"rahmet_export/internal/choco"
	"rahmet_export/internal/choco/chocotest"
	"rahmet_export/internal/report"

	"github.com/xuri/excelize/v2"
)

func TestCustomersReportRoundTrip(t *testing.T) {
	client, _ := newFixtureClient(t)

	table, err := report.NewCustomersBuilder(client).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := report.OutputPath(t.TempDir(), table.Report, time.Date(2024, 9, 22, 18, 5, 0, 0, time.Local))
	if filepath.Base(path) != "20240922_18:05.xlsx" || filepath.Base(filepath.Dir(path)) != "customers" {
		t.Fatalf("path=%q", path)
	}
	if err := report.Save(table, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer wb.Close()

	if got := wb.GetSheetList(); len(got) != 1 || got[0] != "Клиенты" {
		t.Fatalf("sheets=%v", got)
	}
	rows, err := wb.GetRows("Клиенты")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("rows=%d, want 6", len(rows))
	}

	want := []string{
		"Customer ID", "Имя", "телефон", "Общая сумма оплат", "Всего оплат", "Средний чек",
		"Средняя выручка с клиента за последние 3 месяца", "Роздано бонусов", "Оплачено бонусами",
		"Первая оплата", "Последняя оплата", "Сумма последней оплаты", "Предпоследняя оплата",
		"Сумма предпоследней оплаты",
	}
	if len(rows[0]) != len(want) {
		t.Fatalf("headers=%v", rows[0])
	}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("header[%d]=%q, want %q", i, rows[0][i], want[i])
		}
	}

	first := rows[1]
	checks := map[int]string{
		0:  "1001",
		1:  "Customer 1001",
		3:  "125000.5",
		4:  "42",
		5:  "2976.2",
		9:  "2020-01-15",
		10: "2024-09-21 18:30:00",
		11: "2500",
		12: "2024-09-01 09:15:00",
		13: "1200.5",
	}
	for col, value := range checks {
		if first[col] != value {
			t.Fatalf("row 2 col %d=%q, want %q", col, first[col], value)
		}
	}

	for _, cell := range []string{"M5", "N5", "K6", "L6", "M6", "N6"} {
		got, err := wb.GetCellValue("Клиенты", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != "" {
			t.Fatalf("%s=%q, want empty", cell, got)
		}
	}
	if got, _ := wb.GetCellValue("Клиенты", "K5"); got != "2024-09-20 12:00:00" {
		t.Fatalf("K5=%q", got)
	}
}

func TestCustomerRowWithoutEnrichment(t *testing.T) {
	row := report.CustomerRow(choco.Customer{ID: 7})
	if len(row) != len(report.CustomerHeaders) {
		t.Fatalf("cells=%d, want %d", len(row), len(report.CustomerHeaders))
	}
	for i, cell := range row {
		if cell != "" {
			t.Fatalf("cell %d=%v, want empty", i, cell)
		}
	}
}

func TestCustomerRowPartialPaymentHistory(t *testing.T) {
	var customer choco.Customer
	payload := `{
		"id": 5,
		"details": {"attributes": {"user_id": "5", "full_name": null, "phone": 77071234567}},
		"payment_history": [
			{"attributes": []},
			{"attributes": [{"transaction": {"created_at": "2024-01-02 10:00:00"}}]}
		]
	}`
	if err := json.Unmarshal([]byte(payload), &customer); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	row := report.CustomerRow(customer)
	if row[0] != int64(5) {
		t.Fatalf("id cell=%#v", row[0])
	}
	if row[1] != "" || row[2] != "77071234567" {
		t.Fatalf("name/phone=%#v %#v", row[1], row[2])
	}
	if row[3] != "" {
		t.Fatalf("turnover=%#v, want empty", row[3])
	}
	if row[10] != "" || row[11] != "" {
		t.Fatalf("latest payment=%#v %#v, want empty", row[10], row[11])
	}
	if row[12] != "2024-01-02 10:00:00" || row[13] != "" {
		t.Fatalf("second payment=%#v %#v", row[12], row[13])
	}
}

func TestCustomerRowBlanksOnlyUnreadableCell(t *testing.T) {
	client, srv := newFixtureClient(t)
	details := chocotest.CustomerDetails(1001)
	stats := details["attributes"].(map[string]any)["statistics"].(map[string]any)
	stats["average_revenue"] = ""
	stats["orders_count"] = map[string]any{}
	srv.Details[1001] = details

	table, err := report.NewCustomersBuilder(client).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	row := table.Rows[0]
	want := map[int]any{
		0: int64(1001),
		1: "Customer 1001",
		2: "+77070001001",
		3: 125000.5,
		4: "",
		5: 2976.2,
		6: "",
		7: float64(3100),
	}
	for col, value := range want {
		if row[col] != value {
			t.Fatalf("col %d=%#v, want %#v", col, row[col], value)
		}
	}
}
