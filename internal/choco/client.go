package choco

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rahmet_export/internal/config"
	"rahmet_export/internal/observability"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api-proxy.choco.kz"

// Endpoint labels used for metrics and spans.
const (
	EndpointUser            = "user"
	EndpointTerminals       = "terminals"
	EndpointCustomers       = "customers"
	EndpointCustomerDetails = "customer_details"
	EndpointPaymentHistory  = "payment_history"
	EndpointBranch          = "branch"
)

const (
	dayLayout         = "2006-01-02"
	customersStart    = "2017-01-01 00:00:00"
	endOfDaySuffix    = " 23:59:59"
	customersSortKey  = "turnover"
	paymentHistoryPg  = "1"
	terminalTypeParam = "filter[terminal_types][]"
)

var tracer = otel.Tracer("rahmet_export/internal/choco")

type Client struct {
	http     *resty.Client
	logger   *zap.Logger
	metrics  *observability.Metrics
	throttle Throttle
	limit    int
	now      func() time.Time
}

func NewClient(cfg config.Config, token string, logger *zap.Logger, metrics *observability.Metrics) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	logger = logger.Named("choco")

	info, err := InspectToken(token, time.Now())
	switch {
	case errors.Is(err, ErrTokenExpired):
		return nil, err
	case err != nil:
		logger.Warn("bearer token is not a readable JWT", zap.Error(err))
	default:
		logger.Info("bearer token accepted",
			zap.String("subject", info.Subject),
			zap.Time("expires_at", info.ExpiresAt),
			zap.Strings("scopes", info.Scopes),
		)
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeaders(browserHeaders).
		SetTimeout(cfg.Timeout).
		SetAuthScheme("Bearer").
		SetAuthToken(token)

	return &Client{
		http:     httpClient,
		logger:   logger,
		metrics:  metrics,
		throttle: NewThrottle(cfg),
		limit:    cfg.CustomerLimit,
		now:      time.Now,
	}, nil
}

func (c *Client) FetchUser(ctx context.Context) (UserProfile, error) {
	var resp envelope[UserProfile]
	if err := c.doGet(ctx, "fetching user data", EndpointUser, "/api/v3/user/", nil, &resp); err != nil {
		return UserProfile{}, err
	}
	return resp.Data, nil
}

// FetchTerminals returns every terminal of the listed types in server order.
func (c *Client) FetchTerminals(ctx context.Context) ([]Terminal, error) {
	query := url.Values{}
	for _, t := range TerminalTypes {
		query.Add(terminalTypeParam, string(t))
	}

	var resp envelope[[]Terminal]
	if err := c.doGet(ctx, "fetching terminals", EndpointTerminals, "/acl/v3/staff/terminals", query, &resp); err != nil {
		return nil, err
	}
	c.logger.Info("fetched terminals", zap.Int("count", len(resp.Data)))
	return resp.Data, nil
}

// FetchBranch returns statistics for one branch over the last month.
func (c *Client) FetchBranch(ctx context.Context, branchID int64) (BranchStats, error) {
	today := c.now()
	query := url.Values{
		"filial_ids[]": {strconv.FormatInt(branchID, 10)},
		"start_date":   {today.AddDate(0, -1, 0).Format(dayLayout)},
		"end_date":     {today.Format(dayLayout)},
	}

	var resp envelope[BranchStats]
	if err := c.doGet(ctx, "fetching filial data", EndpointBranch, "/segments/rahmetbiz/main", query, &resp); err != nil {
		return BranchStats{}, err
	}
	stats := resp.Data
	stats.ID = branchID
	return stats, nil
}

// FetchAllBranches fetches branches one by one in input order and stops at
// the first failure.
func (c *Client) FetchAllBranches(ctx context.Context, branchIDs []int64) ([]BranchStats, error) {
	result := make([]BranchStats, 0, len(branchIDs))
	for i, id := range branchIDs {
		stats, err := c.FetchBranch(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
		c.logger.Debug("fetched branch", zap.Int64("branch_id", id), zap.Int("done", len(result)))

		if i == len(branchIDs)-1 {
			break
		}
		if err := c.throttle.wait(ctx, c.throttle.BranchDelay(len(result))); err != nil {
			return nil, err
		}
	}
	c.logger.Info("fetched branches", zap.Int("count", len(result)))
	return result, nil
}

func (c *Client) doGet(ctx context.Context, op, endpoint, path string, query url.Values, result any) (err error) {
	ctx, span := tracer.Start(ctx, "choco."+endpoint)
	defer span.End()
	span.SetAttributes(attribute.String("http.route", path))

	start := time.Now()
	defer func() {
		c.metrics.ObserveRequest(endpoint, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req := c.http.R().SetContext(ctx).SetHeaders(requestHeaders()).SetResult(result)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	// Resty decodes 2xx JSON bodies into result; a decode failure comes back
	// as err together with the response.
	resp, err := req.Get(path)
	if err != nil {
		fetchErr := &FetchError{Op: op, Err: err}
		if resp != nil {
			fetchErr.StatusCode = resp.StatusCode()
		}
		return fetchErr
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if resp.StatusCode() != http.StatusOK {
		return statusError(op, resp)
	}
	return nil
}

func statusError(op string, resp *resty.Response) error {
	fetchErr := &FetchError{Op: op, StatusCode: resp.StatusCode()}
	if body := strings.TrimSpace(resp.String()); body != "" {
		const maxBody = 200
		if len(body) > maxBody {
			body = body[:maxBody] + "..."
		}
		fetchErr.Err = errors.New(body)
	}
	return fetchErr
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
