package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"github.com/dukkan/backoffice/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 1 * 1024 * 1024 // 1MB max response

// MetaClient fetches advertising spend from the Meta Marketing API insights
// endpoint. Credentials live in the settings row so the operator can rotate
// the token without a restart.
type MetaClient struct {
	baseURL    string
	httpClient *http.Client
	settings   integration.SettingsRepository
}

// NewMetaClient creates a Meta ads client
func NewMetaClient(cfg *config.AdsConfig, settings integration.SettingsRepository) *MetaClient {
	return &MetaClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		settings: settings,
	}
}

type insightsResponse struct {
	Data []struct {
		Spend string `json:"spend"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Spend returns the total ad spend between start (inclusive) and end
// (exclusive), the same bounds the order queries use. A missing credential
// configuration is not an error; it reports zero spend.
func (c *MetaClient) Spend(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	settings, err := c.settings.Load(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ads: failed to load credentials: %w", err)
	}
	if !settings.HasAdCredentials() {
		return decimal.Zero, nil
	}

	// Meta treats until as an inclusive date, so the exclusive bound maps to
	// the previous day
	until := end.AddDate(0, 0, -1)
	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		start.Format("2006-01-02"), until.Format("2006-01-02"))

	params := url.Values{}
	params.Set("fields", "spend")
	params.Set("time_range", timeRange)
	params.Set("level", "account")
	params.Set("access_token", settings.AdAccessToken)

	endpoint := fmt.Sprintf("%s/act_%s/insights?%s", c.baseURL, settings.AdAccountID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ads: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ads: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return decimal.Zero, fmt.Errorf("ads: failed to read response: %w", err)
	}

	var insights insightsResponse
	if err := json.Unmarshal(body, &insights); err != nil {
		return decimal.Zero, fmt.Errorf("ads: invalid response: %w", err)
	}
	if insights.Error != nil {
		return decimal.Zero, fmt.Errorf("ads: api error %d: %s", insights.Error.Code, insights.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("ads: unexpected status %d", resp.StatusCode)
	}

	total := decimal.Zero
	for _, row := range insights.Data {
		spend, err := decimal.NewFromString(row.Spend)
		if err != nil {
			return decimal.Zero, fmt.Errorf("ads: invalid spend value %q: %w", row.Spend, err)
		}
		total = total.Add(spend)
	}
	return total, nil
}
