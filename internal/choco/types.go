package choco

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type TerminalType string

const (
	TerminalMain       TerminalType = "main"
	TerminalTakeaway   TerminalType = "takeaway"
	TerminalPromotions TerminalType = "promotions"
	TerminalWaiterless TerminalType = "waiterless"
	TerminalSpecial    TerminalType = "special"
	TerminalDrDelivery TerminalType = "dr_delivery"
)

// TerminalTypes is the filter sent with every terminal list request.
var TerminalTypes = []TerminalType{
	TerminalMain,
	TerminalTakeaway,
	TerminalPromotions,
	TerminalWaiterless,
	TerminalSpecial,
	TerminalDrDelivery,
}

type Terminal struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type TerminalType `json:"type"`
}

// TerminalNames maps terminal ids to names.
func TerminalNames(terminals []Terminal) map[int64]string {
	names := make(map[int64]string, len(terminals))
	for _, t := range terminals {
		names[t.ID] = t.Name
	}
	return names
}

// TerminalIDs returns the ids in server order.
func TerminalIDs(terminals []Terminal) []int64 {
	ids := make([]int64, 0, len(terminals))
	for _, t := range terminals {
		ids = append(ids, t.ID)
	}
	return ids
}

type UserProfile struct {
	ID         Scalar         `json:"id"`
	Type       string         `json:"type,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Customer is a list entry merged with its two enrichment responses. Details
// stays nil and PaymentHistory empty when the follow-up calls failed.
type Customer struct {
	ID             int64            `json:"id"`
	Type           string           `json:"type,omitempty"`
	Attributes     map[string]any   `json:"attributes,omitempty"`
	Details        *CustomerDetails `json:"details,omitempty"`
	PaymentHistory []Payment        `json:"payment_history,omitempty"`
}

type CustomerDetails struct {
	Attributes CustomerAttributes `json:"attributes"`
}

func (d *CustomerDetails) UnmarshalJSON(data []byte) error {
	type plain CustomerDetails
	return decodeObject(data, (*plain)(d))
}

type CustomerAttributes struct {
	UserID           *Scalar             `json:"user_id"`
	FullName         *Scalar             `json:"full_name"`
	Phone            *Scalar             `json:"phone"`
	FirstPaymentDate *Scalar             `json:"first_payment_date"`
	Statistics       *CustomerStatistics `json:"statistics"`
}

func (a *CustomerAttributes) UnmarshalJSON(data []byte) error {
	type plain CustomerAttributes
	return decodeObject(data, (*plain)(a))
}

type CustomerStatistics struct {
	Turnover                Number `json:"turnover"`
	OrdersCount             Number `json:"orders_count"`
	AverageBill             Number `json:"average_bill"`
	AverageRevenue          Number `json:"average_revenue"`
	TotalGivenCashback      Number `json:"total_given_cashback"`
	TotalPaymentFromBalance Number `json:"total_payment_from_balance"`
}

func (s *CustomerStatistics) UnmarshalJSON(data []byte) error {
	type plain CustomerStatistics
	return decodeObject(data, (*plain)(s))
}

type Payment struct {
	Attributes []PaymentAttribute `json:"attributes"`
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Attributes json.RawMessage `json:"attributes"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	return decodeArray(raw.Attributes, &p.Attributes)
}

type PaymentAttribute struct {
	Transaction *Transaction `json:"transaction"`
}

func (a *PaymentAttribute) UnmarshalJSON(data []byte) error {
	type plain PaymentAttribute
	return decodeObject(data, (*plain)(a))
}

type Transaction struct {
	CreatedAt *Scalar `json:"created_at"`
	Amount    Number  `json:"amount"`
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	return decodeObject(data, (*plain)(t))
}

// PaymentAt returns the transaction of the index-th payment, newest first,
// or nil when the history is shorter or the entry has no transaction.
func (c Customer) PaymentAt(index int) *Transaction {
	if index < 0 || index >= len(c.PaymentHistory) {
		return nil
	}
	attrs := c.PaymentHistory[index].Attributes
	if len(attrs) == 0 {
		return nil
	}
	return attrs[0].Transaction
}

// BranchStats is keyed by the requested branch id, set by FetchBranch.
type BranchStats struct {
	ID      int64         `json:"-"`
	Indexes BranchIndexes `json:"indexes"`
	Guests  Guests        `json:"guests"`
	Reviews Reviews       `json:"reviews"`
}

func (b *BranchStats) UnmarshalJSON(data []byte) error {
	type plain BranchStats
	return decodeObject(data, (*plain)(b))
}

type BranchIndexes struct {
	Turnover     *Index `json:"turnover"`
	Transactions *Index `json:"transactions"`
	AverageCheck *Index `json:"average_check"`
}

func (i *BranchIndexes) UnmarshalJSON(data []byte) error {
	type plain BranchIndexes
	return decodeObject(data, (*plain)(i))
}

type Index struct {
	Sum      Number `json:"sum"`
	Progress Number `json:"progress"`
}

func (i *Index) UnmarshalJSON(data []byte) error {
	type plain Index
	return decodeObject(data, (*plain)(i))
}

type Guests struct {
	All     Number `json:"all"`
	New     Number `json:"new"`
	Regular Number `json:"regular"`
	Other   Number `json:"other"`
}

func (g *Guests) UnmarshalJSON(data []byte) error {
	type plain Guests
	return decodeObject(data, (*plain)(g))
}

type Reviews struct {
	Info *ReviewInfo `json:"info"`
}

func (r *Reviews) UnmarshalJSON(data []byte) error {
	type plain Reviews
	return decodeObject(data, (*plain)(r))
}

type ReviewInfo struct {
	Rating Number `json:"rating"`
	Count  Number `json:"count"`
}

func (r *ReviewInfo) UnmarshalJSON(data []byte) error {
	type plain ReviewInfo
	return decodeObject(data, (*plain)(r))
}

type pageMeta struct {
	Page struct {
		Total int `json:"total"`
	} `json:"page"`
}

type envelope[T any] struct {
	Data T        `json:"data"`
	Meta pageMeta `json:"meta"`
}

// Scalar holds a JSON string or number in its textual form; any other value
// decodes as empty. The upstream API is not consistent about quoting ids,
// phones and dates.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		// Objects, arrays and booleans carry no cell value.
		return nil
	}
	*s = Scalar(num.String())
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// Int64 reports whether the value is an integer and returns it.
func (s Scalar) Int64() (int64, bool) {
	n, err := strconv.ParseInt(string(s), 10, 64)
	return n, err == nil
}

// Number is a decimal that tolerates upstream noise: a JSON number or a
// numeric string sets it, anything else leaves it unset.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

func NewNumber(v decimal.Decimal) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return nil
		}
	}
	v, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	*n = NewNumber(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Value.MarshalJSON()
}

// String returns the decimal text, or "" when unset.
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return n.Value.String()
}

// decodeObject decodes data into v only when data is a JSON object. Arrays,
// scalars and null leave v untouched, so an empty PHP array in place of an
// object reads as missing data.
func decodeObject(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	return json.Unmarshal(data, v)
}

// decodeArray is decodeObject for JSON arrays.
func decodeArray(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	return json.Unmarshal(data, v)
}
