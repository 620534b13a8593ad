// Package graphql is a small GraphQL-over-HTTP client.
package graphql

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiosk404/pluginadm/pkg/utils/json"
)

const maxResponseBytes = 8 << 20

// Request is the POST body of a GraphQL operation.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client sends operations to a single endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	// Header is added to every request.
	Header http.Header
}

// NewClient creates a new client.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: httpClient,
		Header:     http.Header{},
	}
}

// Do executes req and decodes the "data" member into out (which may be nil).
// Every failure is a *CombinedError.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &CombinedError{NetworkError: fmt.Errorf("create request: %w", err)}
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/graphql-response+json, application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return &CombinedError{NetworkError: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &CombinedError{NetworkError: fmt.Errorf("read response: %w", err), StatusCode: resp.StatusCode}
	}

	var gqlResp response
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &CombinedError{
				NetworkError: fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
				StatusCode:   resp.StatusCode,
			}
		}
		return &CombinedError{NetworkError: fmt.Errorf("decode response: %w", err), StatusCode: resp.StatusCode}
	}

	if len(gqlResp.Errors) > 0 {
		return &CombinedError{GraphQLErrors: gqlResp.Errors, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &CombinedError{
			NetworkError: fmt.Errorf("server returned %d", resp.StatusCode),
			StatusCode:   resp.StatusCode,
		}
	}

	if out == nil || len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return &CombinedError{NetworkError: fmt.Errorf("decode data: %w", err), StatusCode: resp.StatusCode}
	}
	return nil
}

// Message extracts the user facing message of any error returned by Do.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ce *CombinedError
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return err.Error()
}
