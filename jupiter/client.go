// Package jupiter is a client for the Jupiter swap aggregator API.
//
// The client wraps the three REST operations of the swap API (quote,
// swap, swap-instructions) and decodes their responses into typed
// values. It applies no retry, caching or backoff policy of its own;
// callers inspect the returned error kind and decide.
package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultBasePath is the canonical public endpoint of the swap API.
const DefaultBasePath = "https://quote-api.jup.ag/v6"

// Client issues requests against a Jupiter swap API deployment.
// BasePath and HTTP are immutable after construction; a single Client
// is safe for concurrent use.
type Client struct {
	BasePath string
	HTTP     *http.Client
}

// NewClient creates a client for the given base path. A trailing slash
// on basePath is stripped; an empty basePath falls back to
// DefaultBasePath. A nil httpClient gets a fresh default client.
func NewClient(basePath string, httpClient *http.Client) *Client {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		basePath = DefaultBasePath
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		BasePath: basePath,
		HTTP:     httpClient,
	}
}

// NewDefaultClient creates a client against DefaultBasePath with a
// default transport (no proxy, no custom TLS, no client-side timeout).
func NewDefaultClient() *Client {
	return NewClient(DefaultBasePath, &http.Client{})
}

// Quote fetches a priced route for the requested token pair and amount.
func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	u := c.BasePath + "/quote?" + req.queryValues().Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	return decodeResponse[QuoteResponse](res)
}

// Swap submits a quote for execution and returns the serialized
// transaction built by the API. The transaction is unsigned; signing
// and submission are the caller's concern.
func (c *Client) Swap(ctx context.Context, req *SwapRequest) (*SwapResponse, error) {
	res, err := c.postJSON(ctx, "/swap", req)
	if err != nil {
		return nil, fmt.Errorf("swap request failed: %w", err)
	}
	return decodeResponse[SwapResponse](res)
}

// SwapInstructions submits a quote and returns the individual
// instructions that make up the swap transaction, for callers that
// assemble and sign transactions themselves. The wire payload is
// decoded first and then reshaped into the public form.
func (c *Client) SwapInstructions(ctx context.Context, req *SwapRequest) (*SwapInstructionsResponse, error) {
	res, err := c.postJSON(ctx, "/swap-instructions", req)
	if err != nil {
		return nil, fmt.Errorf("swap-instructions request failed: %w", err)
	}
	internal, err := decodeResponse[swapInstructionsResponseInternal](res)
	if err != nil {
		return nil, err
	}
	return internal.intoResponse(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BasePath+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return c.HTTP.Do(httpReq)
}
