package payment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/crickarena/fantasy-cricket/internal/platform/resilience"
	"github.com/crickarena/fantasy-cricket/internal/usecase"
)

var errPaymentTransient = crerr.New("payment provider transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client charges and pays out through the payment provider. Amounts are
// cents; the provider reference comes back for the wallet ledger.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) CollectDeposit(ctx context.Context, userID string, amountCents int64) (string, error) {
	return c.post(ctx, "/v1/charges", userID, amountCents)
}

func (c *Client) PayOut(ctx context.Context, userID string, amountCents int64) (string, error) {
	return c.post(ctx, "/v1/payouts", userID, amountCents)
}

type paymentRequest struct {
	UserID      string `json:"user_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type paymentResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

func (c *Client) post(ctx context.Context, path, userID string, amountCents int64) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "payment circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: payment provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	reference, err := c.execute(ctx, path, userID, amountCents)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errPaymentTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return reference, err
}

func (c *Client) execute(ctx context.Context, path, userID string, amountCents int64) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(paymentRequest{
		UserID:      userID,
		AmountCents: amountCents,
		Currency:    "INR",
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal payment request")
	}
	if _, err := buf.Write(encoded); err != nil {
		return "", crerr.Wrap(err, "buffer payment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf.B))
	if err != nil {
		return "", crerr.Wrap(err, "create payment request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send payment request: %v", errPaymentTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read payment response: %v", errPaymentTransient, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return "", fmt.Errorf("%w: provider status=%d", errPaymentTransient, resp.StatusCode)
	default:
		return "", crerr.Newf("payment rejected: status=%d body=%s", resp.StatusCode, truncate(string(body), 256))
	}

	var decoded paymentResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return "", crerr.Wrap(err, "decode payment response")
	}
	if strings.TrimSpace(decoded.Reference) == "" {
		return "", crerr.New("payment response missing reference")
	}

	return decoded.Reference, nil
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if len(value) > limit {
		return value[:limit] + "..."
	}
	return value
}
