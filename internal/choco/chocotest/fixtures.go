package chocotest

import "fmt"

// Terminal ids used by the fixtures.
var TerminalIDs = []int64{9297, 9341, 9037}

// NewFixtureServer returns a server with 3 terminals, 5 customers (total 5)
// and stats for every terminal. Customer 1005 has no payment history and
// customer 1004 only one payment.
func NewFixtureServer() *Server {
	s := NewServer()
	s.User = map[string]any{"id": 13078881, "type": "user", "attributes": map[string]any{"name": "Owner"}}

	names := []string{"Abay 10", "Dostyk Plaza", "Mega Park"}
	types := []string{"main", "takeaway", "main"}
	for i, id := range TerminalIDs {
		s.Terminals = append(s.Terminals, map[string]any{"id": id, "name": names[i], "type": types[i]})
		s.Branches[id] = BranchStats(i + 1)
	}

	for i := 1; i <= 5; i++ {
		id := int64(1000 + i)
		s.Customers = append(s.Customers, map[string]any{
			"id":         id,
			"type":       "customer",
			"attributes": map[string]any{"turnover": 10000 - i*1000},
		})
		s.Details[id] = CustomerDetails(id)
		switch id {
		case 1005:
		case 1004:
			s.Histories[id] = []map[string]any{Payment("2024-09-20 12:00:00", 1500)}
		default:
			s.Histories[id] = []map[string]any{
				Payment("2024-09-21 18:30:00", 2500),
				Payment("2024-09-01 09:15:00", 1200.5),
			}
		}
	}
	return s
}

func CustomerDetails(id int64) map[string]any {
	return map[string]any{
		"id":   id,
		"type": "customer",
		"attributes": map[string]any{
			"user_id":            id,
			"full_name":          fmt.Sprintf("Customer %d", id),
			"phone":              fmt.Sprintf("+7707%07d", id),
			"first_payment_date": "2020-01-15",
			"statistics": map[string]any{
				"turnover":                   125000.5,
				"orders_count":               42,
				"average_bill":               "2976.20",
				"average_revenue":            8000,
				"total_given_cashback":       3100,
				"total_payment_from_balance": 900,
			},
		},
	}
}

func Payment(createdAt string, amount float64) map[string]any {
	return map[string]any{
		"attributes": []map[string]any{
			{"transaction": map[string]any{"created_at": createdAt, "amount": amount}},
		},
	}
}

func BranchStats(n int) map[string]any {
	return map[string]any{
		"indexes": map[string]any{
			"turnover":      map[string]any{"sum": 1000000 * n, "progress": 12.5},
			"transactions":  map[string]any{"sum": 400 * n, "progress": -3},
			"average_check": map[string]any{"sum": 2500, "progress": 0},
		},
		"guests": map[string]any{"all": 300 * n, "new": 50, "regular": 200, "other": 50 * n},
		"reviews": map[string]any{
			"info": map[string]any{"rating": 4.8, "count": 17 * n},
		},
	}
}
