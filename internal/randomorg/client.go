// Package randomorg draws integers from the random.org JSON-RPC API.
package randomorg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

const DefaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

var (
	ErrProtocol      = errors.New("random_org_protocol_error")
	ErrMissingAPIKey = errors.New("random_org_api_key_missing")
)

// RPCError is an error object returned by the JSON-RPC endpoint.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("random.org error %d: %s", e.Code, e.Message)
}

func (e *RPCError) Unwrap() error {
	return ErrProtocol
}

type Client struct {
	http     *HTTPClient
	endpoint string
	apiKey   string
	seq      atomic.Int64
}

func New(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: NewHTTPClient(timeout), endpoint: endpoint, apiKey: apiKey}, nil
}

type rpcRequest struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  generateParams `json:"params"`
	ID      int64          `json:"id"`
}

type generateParams struct {
	APIKey      string `json:"apiKey"`
	N           int    `json:"n"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Replacement bool   `json:"replacement"`
}

type rpcResponse struct {
	Result *struct {
		Random struct {
			Data []json.Number `json:"data"`
		} `json:"random"`
		RequestsLeft int `json:"requestsLeft"`
	} `json:"result"`
	Error *RPCError `json:"error"`
	ID    int64     `json:"id"`
}

// Draw returns one uniformly drawn integer in [min, max].
func (c *Client) Draw(ctx context.Context, min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("invalid range [%d, %d]", min, max)
	}
	id := c.seq.Add(1)
	raw, err := c.http.PostJSON(ctx, c.endpoint, rpcRequest{
		JSONRPC: "2.0",
		Method:  "generateIntegers",
		Params: generateParams{
			APIKey:      c.apiKey,
			N:           1,
			Min:         min,
			Max:         max,
			Replacement: true,
		},
		ID: id,
	})
	if err != nil {
		return 0, err
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", ErrProtocol, err)
	}
	if resp.Error != nil {
		return 0, resp.Error
	}
	if resp.Result == nil || len(resp.Result.Random.Data) == 0 {
		return 0, fmt.Errorf("%w: response carries no data", ErrProtocol)
	}
	n, err := resp.Result.Random.Data[0].Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: non-integer value %q", ErrProtocol, resp.Result.Random.Data[0])
	}
	if n < int64(min) || n > int64(max) {
		return 0, fmt.Errorf("%w: value %d outside [%d, %d]", ErrProtocol, n, min, max)
	}
	return int(n), nil
}
