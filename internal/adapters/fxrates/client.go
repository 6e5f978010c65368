// Package fxrates is the HTTP client for the external FX source. It speaks the
// Frankfurter API (https://www.frankfurter.app), which ECB-backed mirrors and
// self-hosted instances also serve.
package fxrates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/chatledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chatledger/internal/core/ports/repositories"
	"github.com/SscSPs/chatledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public Frankfurter endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

// ErrMissingRate is returned when the response does not quote the target currency.
var ErrMissingRate = errors.New("target currency missing from response")

// ratesResponse is the body of GET /{date}?from=X&to=Y.
type ratesResponse struct {
	Amount decimal.Decimal            `json:"amount"`
	Base   string                     `json:"base"`
	Date   string                     `json:"date"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// Client fetches single-pair rates.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// FetchRate returns how many units of target one unit of source buys on day.
// Today and future days ask for the latest quote.
func (c *Client) FetchRate(ctx context.Context, source, target string, day time.Time) (decimal.Decimal, error) {
	path := "latest"
	if domain.StartOfDay(day).Before(domain.StartOfDay(c.now())) {
		path = domain.StartOfDay(day).Format(time.DateOnly)
	}
	q := url.Values{}
	q.Set("from", source)
	q.Set("to", target)
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build fx request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fx request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		middleware.GetLoggerFromCtx(ctx).Warn("FX source returned non-200",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return decimal.Zero, fmt.Errorf("fx source status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("decode fx response: %w", err)
	}
	rate, ok := payload.Rates[strings.ToUpper(target)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingRate, target)
	}
	// Rates are quoted for Amount units of the base.
	if payload.Amount.IsPositive() && !payload.Amount.Equal(decimal.NewFromInt(1)) {
		rate = rate.Div(payload.Amount)
	}
	return rate, nil
}

var _ portsrepo.RateSource = (*Client)(nil)
