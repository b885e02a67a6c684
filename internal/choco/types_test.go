package choco_test

import (
	"encoding/json"
	"testing"

	"rahmet_export/internal/choco"
)

func TestNumberDecodesLeniently(t *testing.T) {
	cases := map[string]string{
		`12.5`:      "12.5",
		`"2976.20"`: "2976.2",
		`-3`:        "-3",
		`""`:        "",
		`"n/a"`:     "",
		`null`:      "",
		`[]`:        "",
		`{}`:        "",
		`true`:      "",
	}
	for input, want := range cases {
		var n choco.Number
		if err := json.Unmarshal([]byte(input), &n); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if got := n.String(); got != want {
			t.Fatalf("%s: got %q, want %q", input, got, want)
		}
		if n.Valid != (want != "") {
			t.Fatalf("%s: valid=%v", input, n.Valid)
		}
	}
}

func TestCustomerDetailsToleratesOddShapes(t *testing.T) {
	body := `{"attributes": {"user_id": 5, "full_name": [], "phone": "+7707", "statistics": []}}`

	var details choco.CustomerDetails
	if err := json.Unmarshal([]byte(body), &details); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	attrs := details.Attributes
	if attrs.UserID == nil || attrs.UserID.String() != "5" {
		t.Fatalf("user_id=%v", attrs.UserID)
	}
	if attrs.FullName != nil && attrs.FullName.String() != "" {
		t.Fatalf("full_name=%q, want empty", attrs.FullName.String())
	}
	if attrs.Phone == nil || attrs.Phone.String() != "+7707" {
		t.Fatalf("phone=%v", attrs.Phone)
	}
	if s := attrs.Statistics; s != nil && s.Turnover.Valid {
		t.Fatalf("statistics=%+v, want empty", s)
	}
}

func TestPaymentToleratesObjectAttributes(t *testing.T) {
	var payments []choco.Payment
	if err := json.Unmarshal([]byte(`[{"attributes": {}}, {"attributes": [{"transaction": {"amount": "7"}}]}]`), &payments); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	customer := choco.Customer{PaymentHistory: payments}
	if tx := customer.PaymentAt(0); tx != nil {
		t.Fatalf("first payment=%+v, want nil", tx)
	}
	if tx := customer.PaymentAt(1); tx == nil || tx.Amount.String() != "7" {
		t.Fatalf("second payment=%+v", tx)
	}
}
