// Package node is a client for the HTTP API of a ledger node.
package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ziesha-network/zwallet/internal/logging"
	"github.com/ziesha-network/zwallet/internal/metrics"
	"github.com/ziesha-network/zwallet/internal/tx"
)

const (
	NetworkHeader = "X-ZIESHA-NETWORK-NAME"

	accountPath  = "/mpn/account"
	tokenPath    = "/token"
	mempoolPath  = "/mempool"
	transactPath = "/transact/zero"
)

type Client struct {
	base    string
	network string
	http    *http.Client
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewClient returns a client for the node at base (e.g. "http://127.0.0.1:8765"), sending the given network name with
// every request. A scheme-less base is treated as plain HTTP. All of httpClient, logger and m may be nil.
func NewClient(base, network string, httpClient *http.Client, logger logging.Logger, m *metrics.Metrics) *Client {
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{strings.TrimRight(base, "/"), network, httpClient, logger, m}
}

// Account fetches the account stored at the given MPN account index.
func (c *Client) Account(ctx context.Context, index uint32) (Account, error) {
	var out accountResponse
	query := url.Values{"index": {strconv.FormatUint(uint64(index), 10)}}
	if err := c.do(ctx, http.MethodGet, accountPath, query, nil, &out); err != nil {
		return Account{}, err
	}
	return out.Account, nil
}

// Token fetches the metadata of a token.
func (c *Client) Token(ctx context.Context, id tx.TokenID) (Token, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodGet, tokenPath, url.Values{"token_id": {id.String()}}, nil, &out); err != nil {
		return Token{}, err
	}
	return out.Token, nil
}

func (c *Client) Mempool(ctx context.Context) (Mempool, error) {
	var out Mempool
	if err := c.do(ctx, http.MethodGet, mempoolPath, nil, nil, &out); err != nil {
		return Mempool{}, err
	}
	return out, nil
}

// Transact submits a signed payment and returns the node's raw response.
func (c *Client) Transact(ctx context.Context, p tx.Payload) (string, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, transactPath, nil, transactRequest{p}, &out); err != nil {
		return "", err
	}
	return string(out), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set(NetworkHeader, c.network)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.NodeRequest(path, 0)
		c.logger.Warn("node request failed", logging.Fields{"method": method, "path": path, "error": err})
		return fmt.Errorf("node %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.NodeRequest(path, resp.StatusCode)
	c.logger.Debug("node request", logging.Fields{"method": method, "path": path, "status": resp.StatusCode})
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("node %s %s: %s", method, path, resp.Status)
	}

	if raw, ok := out.(*json.RawMessage); ok {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		*raw = b
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("node %s %s: decoding response: %w", method, path, err)
	}
	return nil
}
