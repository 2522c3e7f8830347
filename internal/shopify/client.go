// Package shopify implements the Admin GraphQL API client.
// It is the production implementation of the admin.API interface.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"merchantkit/internal/admin"
	"merchantkit/internal/model"
)

// =============================================================================
// SHOPIFY ADMIN GRAPHQL CLIENT
// =============================================================================
//
// The Admin API is a single GraphQL endpoint, versioned in the URL:
//
//   https://{shop}.myshopify.com/admin/api/{version}/graphql.json
//
// Authentication is one header, X-Shopify-Access-Token. Failures arrive three
// ways and each needs its own mapping:
//   1. Transport-level HTTP errors (401/403/404/429/5xx)
//   2. Top-level GraphQL errors (malformed query, THROTTLED)
//   3. Per-mutation userErrors (validation; HTTP and GraphQL both report success)
// =============================================================================

const (
	// graphqlPath is the versioned Admin API endpoint path.
	graphqlPath = "/admin/api/%s/graphql.json"

	// defaultAPIVersion is the Admin API release targeted by the queries below.
	defaultAPIVersion = "2026-07"

	userAgent = "merchantkit/1.0"
)

// Options configures the client. ShopDomain and AccessToken are required;
// the rest default sensibly.
type Options struct {
	ShopDomain  string // e.g. "example.myshopify.com"
	AccessToken string
	APIVersion  string       // defaults to defaultAPIVersion
	HTTPClient  *http.Client // defaults to a 30s-timeout client
	Logger      zerolog.Logger
}

// Client is the Admin GraphQL API client for one shop.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     zerolog.Logger
}

// NewClient creates an Admin API client from the given options.
func NewClient(opts Options) *Client {
	version := opts.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("https://%s"+graphqlPath, opts.ShopDomain, version),
		token:      opts.AccessToken,
		logger:     opts.Logger,
	}
}

// === GraphQL Wire Types ===

// graphqlRequest is the POST body for every Admin API call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the envelope every Admin API call returns.
// Data stays raw so each operation decodes into its own shape.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

// graphqlError is a top-level GraphQL error entry.
type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// userError is the validation failure shape shared by all mutations.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// userErrorMessages flattens userErrors into their messages for reporting.
func userErrorMessages(errs []userError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// === HTTP Helpers ===

// do executes one GraphQL operation and decodes the data payload into result.
// op names the operation for logging only.
func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, result any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Shopify-Access-Token", c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("Shopify", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", op, err)
	}

	c.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("admin api call")

	if resp.StatusCode >= 400 {
		return c.parseError(resp.StatusCode, respBody)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("parsing %s response: %w", op, err)
	}

	if len(envelope.Errors) > 0 {
		return parseGraphQLErrors(envelope.Errors)
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("parsing %s data: %w", op, err)
		}
	}

	return nil
}

// parseError converts HTTP-level Admin API failures to model.APIError.
func (c *Client) parseError(statusCode int, body []byte) error {
	switch statusCode {
	case 401, 403:
		return model.NewUnauthorizedError("Shopify authentication failed")
	case 404:
		return model.NewNotFoundError("resource")
	case 429:
		return model.NewRateLimitError("Shopify")
	default:
		return model.NewUpstreamError("Shopify",
			fmt.Errorf("status %d: %s", statusCode, strings.TrimSpace(string(body))))
	}
}

// parseGraphQLErrors maps top-level GraphQL errors.
// Throttling arrives as a GraphQL error with extensions.code THROTTLED,
// not as HTTP 429.
func parseGraphQLErrors(errs []graphqlError) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Extensions.Code == "THROTTLED" {
			return model.NewRateLimitError("Shopify")
		}
		msgs = append(msgs, e.Message)
	}
	return model.NewUpstreamError("Shopify",
		fmt.Errorf("graphql: %s", strings.Join(msgs, "; ")))
}

// Verify Client implements the admin.API interface at compile time.
var _ admin.API = (*Client)(nil)
