package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// StripeProvider creates Stripe customers over the REST API. Only the
// customers endpoint is needed here, so no SDK is pulled in.
type StripeProvider struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewStripeProvider builds a provider; an empty secret key yields an
// unconfigured provider that callers must treat as absent.
func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		secretKey: secretKey,
		baseURL:   defaultStripeBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewStripeProviderWithBaseURL is used by tests to point at a stub server.
func NewStripeProviderWithBaseURL(secretKey, baseURL string) *StripeProvider {
	provider := NewStripeProvider(secretKey)
	provider.baseURL = strings.TrimRight(baseURL, "/")
	return provider
}

func (p *StripeProvider) IsConfigured() bool {
	return p.secretKey != ""
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email, name string, metadata map[string]string) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("stripe provider is not configured")
	}

	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/customers", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	var customer struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &customer); err != nil {
		return "", fmt.Errorf("failed to decode stripe response: %w", err)
	}
	if customer.ID == "" {
		return "", fmt.Errorf("stripe response contained no customer id")
	}

	return customer.ID, nil
}
