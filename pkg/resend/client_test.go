package resend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/resend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// funcClient adapts a function to the httpclient.Client interface
type funcClient func(req *http.Request) (*http.Response, error)

func (f funcClient) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClient_Send_Success(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte

	client := resend.NewClient("re_test_key", funcClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		capturedBody, _ = io.ReadAll(req.Body)
		return jsonResponse(http.StatusOK, `{"id":"email-123"}`), nil
	}))

	resp, err := client.Send(context.Background(), &resend.SendRequest{
		From:    "Portfolio Contact <onboarding@resend.dev>",
		To:      []string{"owner@example.com"},
		ReplyTo: "a@b.com",
		Subject: "Portfolio Contact: Hi",
		HTML:    "<p>hello</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "email-123", resp.ID)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "https://api.resend.com/emails", captured.URL.String())
	assert.Equal(t, "Bearer re_test_key", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &payload))
	assert.Equal(t, "a@b.com", payload["reply_to"])
	assert.Equal(t, []any{"owner@example.com"}, payload["to"])
}

func TestClient_Send_ProviderError(t *testing.T) {
	client := resend.NewClient("re_test_key", funcClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnprocessableEntity,
			`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`), nil
	}))

	resp, err := client.Send(context.Background(), &resend.SendRequest{
		From:    "bad",
		To:      []string{"owner@example.com"},
		Subject: "x",
		HTML:    "y",
	})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "Invalid from field")
}

func TestClient_Send_NonJSONError(t *testing.T) {
	client := resend.NewClient("re_test_key", funcClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "upstream unavailable"), nil
	}))

	_, err := client.Send(context.Background(), &resend.SendRequest{
		From:    "a",
		To:      []string{"b"},
		Subject: "c",
		HTML:    "d",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}
