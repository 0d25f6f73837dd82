package canadapost

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	SandboxURL    = "https://ct.soa-gw.canadapost.ca"
	ProductionURL = "https://soa-gw.canadapost.ca"

	rateMediaType  = "application/vnd.cpc.ship.rate-v3+xml"
	trackMediaType = "application/vnd.cpc.track-v2+xml"
)

//go:generate mockgen -source=client.go -destination=mock_client_test.go -package=canadapost

// RateClient est le client de l'API Postes Canada
type RateClient interface {
	GetRates(ctx context.Context, scenario *MailingScenario, apiKey string, sandbox bool) (*PriceQuotes, error)
	GetTrackingDetail(ctx context.Context, pin, apiKey string, sandbox bool) (*TrackingDetail, error)
}

// APIError regroupe les messages renvoyés par l'API
type APIError struct {
	StatusCode int
	Messages   []Message
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("Canada Post: HTTP %d", e.StatusCode)
	}
	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		parts = append(parts, m.Description)
	}
	return strings.Join(parts, "; ")
}

type HTTPClient struct {
	httpClient    *http.Client
	sandboxURL    string
	productionURL string
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		httpClient:    &http.Client{Timeout: timeout},
		sandboxURL:    SandboxURL,
		productionURL: ProductionURL,
	}
}

// WithBaseURLs remplace les deux environnements (tests, proxy)
func (c *HTTPClient) WithBaseURLs(sandbox, production string) *HTTPClient {
	c.sandboxURL = strings.TrimSuffix(sandbox, "/")
	c.productionURL = strings.TrimSuffix(production, "/")
	return c
}

func (c *HTTPClient) baseURL(sandbox bool) string {
	if sandbox {
		return c.sandboxURL
	}
	return c.productionURL
}

func (c *HTTPClient) GetRates(ctx context.Context, scenario *MailingScenario, apiKey string, sandbox bool) (*PriceQuotes, error) {
	body, err := xml.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("encodage mailing-scenario: %w", err)
	}
	body = append([]byte(xml.Header), body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL(sandbox)+"/rs/ship/price", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", rateMediaType)
	req.Header.Set("Accept", rateMediaType)

	var quotes PriceQuotes
	if err := c.do(req, apiKey, &quotes); err != nil {
		return nil, err
	}
	return &quotes, nil
}

func (c *HTTPClient) GetTrackingDetail(ctx context.Context, pin, apiKey string, sandbox bool) (*TrackingDetail, error) {
	endpoint := c.baseURL(sandbox) + "/vis/track/pin/" + url.PathEscape(pin) + "/detail"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", trackMediaType)

	var detail TrackingDetail
	if err := c.do(req, apiKey, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *HTTPClient) do(req *http.Request, apiKey string, out any) error {
	user, password, _ := strings.Cut(apiKey, ":")
	req.SetBasicAuth(user, password)
	req.Header.Set("Accept-Language", "en-CA")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("appel Canada Post: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("lecture réponse Canada Post: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msgs Messages
		if xml.Unmarshal(data, &msgs) == nil {
			apiErr.Messages = msgs.Messages
		}
		return apiErr
	}

	if err := xml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("décodage réponse Canada Post: %w", err)
	}
	return nil
}
