package choco

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

type customerQuery struct {
	terminals string
	start     string
	end       string
}

func (q customerQuery) values() url.Values {
	return url.Values{
		"terminals":          {q.terminals},
		"filter[start_date]": {q.start},
		"filter[end_date]":   {q.end},
	}
}

// FetchCustomers pages through customers sorted by turnover and enriches each
// one with its details and payment history. It stops once the accumulated
// count reaches the server total or the configured customer limit.
//
// Enrichment failures are not fatal: the customer is kept without details or
// history and ends up as blank cells.
func (c *Client) FetchCustomers(ctx context.Context, terminalIDs []int64) ([]Customer, error) {
	q := customerQuery{
		terminals: joinIDs(terminalIDs),
		start:     customersStart,
		end:       c.now().Format(dayLayout) + endOfDaySuffix,
	}

	var result []Customer
	for page := 1; ; page++ {
		query := q.values()
		query.Set("page", strconv.Itoa(page))
		query.Set("sort", customersSortKey)

		var resp envelope[[]Customer]
		if err := c.doGet(ctx, "fetching customers data", EndpointCustomers, "/analytics/v1/customers", query, &resp); err != nil {
			return nil, err
		}

		customers := uniqueCustomers(resp.Data)
		count := len(result) + len(customers)
		total := resp.Meta.Page.Total
		c.logger.Info("fetched customers",
			zap.Int("page", page),
			zap.Int("count", count),
			zap.Int("total", total),
		)

		if err := c.throttle.wait(ctx, c.throttle.ListPause); err != nil {
			return nil, err
		}

		for i := range customers {
			if err := c.enrichCustomer(ctx, &customers[i], q); err != nil {
				return nil, err
			}
			if err := c.throttle.wait(ctx, c.throttle.CustomerPause); err != nil {
				return nil, err
			}
		}
		result = append(result, customers...)

		if count >= total || (c.limit > 0 && count >= c.limit) || len(customers) == 0 {
			break
		}
		if err := c.throttle.wait(ctx, c.throttle.PagePause); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// enrichCustomer merges details and payment history into customer. Only a
// cancelled context is returned as an error.
func (c *Client) enrichCustomer(ctx context.Context, customer *Customer, q customerQuery) error {
	id := strconv.FormatInt(customer.ID, 10)

	var details envelope[*CustomerDetails]
	detailsQuery := url.Values{"terminals": {q.terminals}}
	if err := c.doGet(ctx, "fetching customer details", EndpointCustomerDetails, "/analytics/v1/customer/"+id, detailsQuery, &details); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("customer details missing", zap.Int64("customer_id", customer.ID), zap.Error(err))
	} else {
		customer.Details = details.Data
	}

	var history envelope[[]Payment]
	historyQuery := q.values()
	historyQuery.Set("page", paymentHistoryPg)
	if err := c.doGet(ctx, "fetching payment history", EndpointPaymentHistory, "/analytics/v1/customer/"+id+"/payment-history", historyQuery, &history); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("payment history missing", zap.Int64("customer_id", customer.ID), zap.Error(err))
	} else {
		customer.PaymentHistory = history.Data
	}

	return nil
}

// uniqueCustomers drops repeated ids within one page, keeping the first
// position and the last payload, the way a keyed merge would.
func uniqueCustomers(customers []Customer) []Customer {
	index := make(map[int64]int, len(customers))
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		if i, ok := index[customer.ID]; ok {
			out[i] = customer
			continue
		}
		index[customer.ID] = len(out)
		out = append(out, customer)
	}
	return out
}
