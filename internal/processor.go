package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

const chargeCurrency = "usd"

// ChargeProcessor creates a charge at an external payment provider. Any
// provider can substitute behind this interface.
type ChargeProcessor interface {
	ProcessTransaction(ctx context.Context, customer CustomerData, payment PaymentData) (Charge, error)
}

// ProcessorConfig carries the provider credentials explicitly instead of a
// process-wide global.
type ProcessorConfig struct {
	BaseURL string
	APIKey  string
}

// HTTPPaymentProcessor talks to the provider's charge-creation endpoint.
// It blocks until the provider responds or the caller's context ends, and
// it never retries.
type HTTPPaymentProcessor struct {
	client *http.Client
	cfg    ProcessorConfig
}

func NewHTTPPaymentProcessor(client *http.Client, cfg ProcessorConfig) *HTTPPaymentProcessor {
	return &HTTPPaymentProcessor{
		client: client,
		cfg:    cfg,
	}
}

func (p *HTTPPaymentProcessor) ProcessTransaction(ctx context.Context, customer CustomerData, payment PaymentData) (Charge, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(payment.Amount, 10))
	form.Set("currency", chargeCurrency)
	form.Set("source", payment.Source)
	form.Set("description", "Charge for "+customer.Name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return Charge{}, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)

	res, err := p.client.Do(req)
	if err != nil {
		return Charge{}, fmt.Errorf("charge request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		perr := decodeProviderError(res)
		slog.Error("payment failed", "status", res.StatusCode, "err", perr)
		return Charge{}, perr
	}

	var charge Charge
	if err := sonic.ConfigFastest.NewDecoder(res.Body).Decode(&charge); err != nil {
		return Charge{}, fmt.Errorf("failed to decode the charge: %w", err)
	}

	slog.Debug("payment successful", "chargeId", charge.ID, "status", charge.Status, "amount", charge.Amount)
	return charge, nil
}

func decodeProviderError(res *http.Response) *ProviderError {
	var body struct {
		Error struct {
			Type    string `json:"type"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := sonic.ConfigFastest.NewDecoder(res.Body).Decode(&body); err != nil {
		return &ProviderError{StatusCode: res.StatusCode}
	}

	return &ProviderError{
		StatusCode: res.StatusCode,
		Type:       body.Error.Type,
		Code:       body.Error.Code,
		Message:    body.Error.Message,
	}
}
