// Package upstream is the gateway's client for the remote ordering API: a
// GraphQL-over-HTTP surface owning users, menu, orders, and payment records.
//
// Remote failures are classified into domain error kinds here, at the
// boundary, so nothing above this package ever matches on message text.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/metrics"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the ordering API's GraphQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

// NewClient builds a Client for the given GraphQL endpoint. If timeout <= 0,
// a ten-second default is applied.
func NewClient(endpoint string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

type graphqlRequest struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do posts one operation and decodes its data payload into out (which may be
// nil for fire-and-forget mutations). bearer, when non-empty, is attached as
// the authorization header; an empty bearer sends the call unauthenticated.
func (c *Client) do(ctx context.Context, bearer, operation, query string, variables map[string]any, out any) error {
	start := time.Now()
	err := c.post(ctx, bearer, operation, query, variables, out)

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.UpstreamRequestDuration.WithLabelValues(operation, result).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) post(ctx context.Context, bearer, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{OperationName: operation, Query: query, Variables: variables})
	if err != nil {
		return domain.WrapError(domain.KindInternal, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.WrapError(domain.KindInternal, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("operation", operation).Msg("ordering API unreachable")
		return domain.WrapError(domain.KindNetworkUnreachable, "ordering API unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.WrapError(domain.KindNetworkUnreachable, "read response", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.WrapError(domain.KindInternal,
			fmt.Sprintf("malformed response (status %d)", resp.StatusCode), err)
	}

	if len(envelope.Errors) > 0 {
		msg := envelope.Errors[0].Message
		kind := classify(msg)
		c.log.Debug().Str("operation", operation).Str("kind", string(kind)).Str("message", msg).
			Msg("ordering API returned error")
		return domain.NewError(kind, msg)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.NewError(domain.KindInternal,
			fmt.Sprintf("ordering API status %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return domain.WrapError(domain.KindInternal, "decode response data", err)
		}
	}
	return nil
}
