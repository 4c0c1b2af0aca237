package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rishisameer/portfolio-contact-api/pkg/circuitbreaker"
	"github.com/rishisameer/portfolio-contact-api/pkg/httpclient"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const sendEndpoint = "https://api.resend.com/emails"

// SendRequest is the payload for the Resend send-email API
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse is the success payload returned by Resend
type SendResponse struct {
	ID string `json:"id"`
}

// apiError is the error payload returned by Resend on non-2xx responses
type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Client sends transactional email through the Resend HTTPS API
// with circuit breaker protection.
type Client struct {
	apiKey         string
	httpClient     httpclient.Client
	circuitBreaker *gobreaker.CircuitBreaker
}

// NewClient creates a Resend API client
func NewClient(apiKey string, httpClient httpclient.Client) *Client {
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("resend"))
	return &Client{
		apiKey:         apiKey,
		httpClient:     httpClient,
		circuitBreaker: cb,
	}
}

// Send delivers one email. The provider call runs through the circuit
// breaker; the caller bounds it with ctx.
func (c *Client) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	start := time.Now()

	resp, err := circuitbreaker.Execute(c.circuitBreaker, func() (*SendResponse, error) {
		return c.send(ctx, req)
	})

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.EmailDispatchDuration.WithLabelValues(status).Observe(metrics.MeasureDuration(start))
	metrics.EmailDispatchTotal.WithLabelValues(status).Inc()

	if err != nil {
		return nil, circuitbreaker.FormatError("resend", err)
	}

	logger.Info("Email sent via Resend",
		zap.String("email_id", resp.ID),
		zap.Float64("duration", metrics.MeasureDuration(start)))

	return resp, nil
}

func (c *Client) send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("resend request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		var detail apiError
		if jsonErr := json.Unmarshal(raw, &detail); jsonErr == nil && detail.Message != "" {
			return nil, fmt.Errorf("resend returned %d: %s: %s", httpResp.StatusCode, detail.Name, detail.Message)
		}
		return nil, fmt.Errorf("resend returned %d: %s", httpResp.StatusCode, string(raw))
	}

	var result SendResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode resend response: %w", err)
	}

	return &result, nil
}
