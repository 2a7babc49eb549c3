package lottery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// Endpoint settings for the Donghaeng Lottery service.
const (
	// DefaultBaseURL is the Donghaeng Lottery web root.
	DefaultBaseURL = "https://www.dhlottery.co.kr"

	// drawPath is the endpoint serving per-draw results. The srchLtEpsd
	// query parameter selects the draw number.
	drawPath = "/lt645/selectPstLt645Info.do"

	// refererPath is the results page. The endpoint expects requests to
	// originate from it and answers others with HTML error pages.
	refererPath = "/lt645/result"

	// userAgent mimics a desktop browser for the same reason.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// defaultTimeout is the default HTTP timeout for a single fetch.
	defaultTimeout = 10 * time.Second

	// maxResponseSize limits the size of response bodies to read.
	// Draw results are tiny; anything near this limit is an error page.
	maxResponseSize = 1 << 20 // 1MB
)

// Client fetches draw results from the Donghaeng Lottery service.
//
// Design decision: The client fetches exactly one draw per call and leaves
// pacing, retries, and concurrency to the sync pipeline. This keeps the
// HTTP layer stateless and trivially testable against httptest servers.
type Client struct {
	// baseURL is the service root. Overridable for tests.
	baseURL string

	// httpClient performs the requests.
	httpClient *http.Client

	// timeout overrides the HTTP client timeout when non-zero. Kept
	// separately so WithTimeout wins regardless of option order.
	timeout time.Duration

	// logger records request activity.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the service root. Used in tests to point the
// client at a local server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout for a single fetch. It applies
// even when combined with WithHTTPClient, in either order.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClientLogger sets a custom logger for the client.
// If not set, the process default logger is used.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the official service.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	return c
}

// apiResponse mirrors the endpoint's JSON envelope.
type apiResponse struct {
	Data struct {
		List []apiDraw `json:"list"`
	} `json:"data"`
}

// apiDraw is one draw entry as served by the endpoint.
//
// Design decision: Numeric fields use json.Number because the endpoint
// has served the same values both bare and quoted over time. json.Number
// accepts either encoding; fixed int fields would break on one of them.
type apiDraw struct {
	DrawNo            json.Number `json:"ltEpsd"`
	Date              json.Number `json:"ltRflYmd"`
	Num1              json.Number `json:"tm1WnNo"`
	Num2              json.Number `json:"tm2WnNo"`
	Num3              json.Number `json:"tm3WnNo"`
	Num4              json.Number `json:"tm4WnNo"`
	Num5              json.Number `json:"tm5WnNo"`
	Num6              json.Number `json:"tm6WnNo"`
	Bonus             json.Number `json:"bnsWnNo"`
	FirstPrizeAmount  json.Number `json:"rnk1WnAmt"`
	FirstPrizeWinners json.Number `json:"rnk1WnNope"`
	TotalSales        json.Number `json:"rlvtEpsdSumNtslAmt"`
}

// FetchDraw fetches the result of a single draw.
//
// It returns ErrDrawNotFound when the service has no result for the draw
// number and ErrInvalidResponse when the body is not the expected JSON.
// The returned draw is validated and its numbers are sorted ascending.
func (c *Client) FetchDraw(ctx context.Context, drawNo int) (*model.Draw, error) {
	if drawNo < 1 {
		return nil, fmt.Errorf("%w: draw number %d", ErrDrawNotFound, drawNo)
	}

	reqURL := fmt.Sprintf("%s%s?srchLtEpsd=%d", c.baseURL, drawPath, drawNo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL+refererPath)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	c.logger.Debug("fetching draw", "draw_no", drawNo)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch draw %d: %w", drawNo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP status %d", ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response for draw %d: %w", drawNo, err)
	}

	// The endpoint serves HTML error pages under load. Reject anything
	// that does not look like a JSON object before parsing.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		c.logger.Debug("non-JSON response", "draw_no", drawNo, "body_prefix", previewBody(trimmed))
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidResponse)
	}

	var parsed apiResponse
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(parsed.Data.List) == 0 {
		return nil, fmt.Errorf("%w: draw %d", ErrDrawNotFound, drawNo)
	}

	draw, err := parsed.Data.List[0].toDraw()
	if err != nil {
		return nil, fmt.Errorf("draw %d: %w", drawNo, err)
	}

	c.logger.Debug("fetched draw", "draw_no", draw.DrawNo, "date", draw.Date)
	return draw, nil
}

// toDraw converts an endpoint entry into a validated model draw.
func (d apiDraw) toDraw() (*model.Draw, error) {
	drawNo, err := numberToInt(d.DrawNo)
	if err != nil {
		return nil, fmt.Errorf("%w: draw number: %v", ErrInvalidResponse, err)
	}

	numbers := make([]int, 0, model.NumbersPerSet)
	for _, raw := range []json.Number{d.Num1, d.Num2, d.Num3, d.Num4, d.Num5, d.Num6} {
		n, err := numberToInt(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: winning number: %v", ErrInvalidResponse, err)
		}
		numbers = append(numbers, n)
	}

	bonus, err := numberToInt(d.Bonus)
	if err != nil {
		return nil, fmt.Errorf("%w: bonus number: %v", ErrInvalidResponse, err)
	}

	// Prize metadata is optional on old draws; missing values become zero.
	prize, err := numberToInt64(d.FirstPrizeAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: first prize amount: %v", ErrInvalidResponse, err)
	}
	winners, err := numberToInt(d.FirstPrizeWinners)
	if err != nil {
		return nil, fmt.Errorf("%w: first prize winners: %v", ErrInvalidResponse, err)
	}
	sales, err := numberToInt64(d.TotalSales)
	if err != nil {
		return nil, fmt.Errorf("%w: total sales: %v", ErrInvalidResponse, err)
	}

	draw := &model.Draw{
		DrawNo:            drawNo,
		Date:              formatDrawDate(d.Date.String()),
		Numbers:           numbers,
		Bonus:             bonus,
		FirstPrizeAmount:  prize,
		FirstPrizeWinners: winners,
		TotalSales:        sales,
	}

	if err := draw.Normalize(); err != nil {
		return nil, err
	}
	return draw, nil
}

// numberToInt converts a json.Number to int, treating the empty value
// (a missing field) as zero.
func numberToInt(n json.Number) (int, error) {
	v, err := numberToInt64(n)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// numberToInt64 converts a json.Number to int64, treating the empty value
// (a missing field) as zero.
func numberToInt64(n json.Number) (int64, error) {
	if n.String() == "" {
		return 0, nil
	}
	return n.Int64()
}

// formatDrawDate rewrites the endpoint's YYYYMMDD date into YYYY-MM-DD.
// Values that are not eight characters pass through unchanged.
func formatDrawDate(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8]
}

// previewBody returns the first bytes of a response body for debug logs.
func previewBody(body []byte) string {
	const limit = 80
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
