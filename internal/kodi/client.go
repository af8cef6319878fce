// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kodi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"kodibot/internal/config"
	"kodibot/internal/logger"
)

// Client talks JSON-RPC over HTTP to a single media center. It holds no
// session: credentials are sent as basic auth on every call.
type Client struct {
	httpClient *http.Client
	host       string
	login      string
	password   string
	debug      bool
	test       bool
	logger     zerolog.Logger

	mu    sync.Mutex
	calls []Call
}

// Call is one invocation recorded by a test-mode client
type Call struct {
	Method Method
	Params Params
}

// Connect creates a client for the JSON-RPC endpoint at host
func Connect(host, login, password string, options ...FnModeOption) (*Client, error) {
	u, err := url.ParseRequestURI(host)
	if err != nil {
		return nil, fmt.Errorf("invalid host %q: %w", host, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid host %q: scheme and host are required", host)
	}

	opts := NewModeOptions(options...)
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client := &Client{
		httpClient: httpClient,
		host:       host,
		login:      login,
		password:   password,
		debug:      opts.Debug,
		test:       opts.Test,
		logger:     logger.GetLogger("kodi.client"),
	}

	return client, nil
}

// Dialer builds a fresh Invoker from configuration
type Dialer func(cfg config.Config) (Invoker, error)

// NewDialer returns a Dialer that connects a new Client on every call
func NewDialer(options ...FnModeOption) Dialer {
	return func(cfg config.Config) (Invoker, error) {
		client, err := Connect(cfg.Host, cfg.Login, cfg.Password, options...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Host returns the endpoint this client calls
func (c *Client) Host() string {
	return c.host
}

// Calls returns the invocations recorded in test mode
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Invoke sends one JSON-RPC request and decodes the response envelope.
// Network failures come back as *TransportError; non-2xx statuses and
// undecodable bodies as *ProtocolError.
func (c *Client) Invoke(ctx context.Context, method Method, params Params) (map[string]any, error) {
	request := Request{
		JSONRPC: JSONRPCVersion,
		Method:  string(method),
		Params:  params,
		ID:      uuid.NewString(),
	}

	if c.test {
		return c.record(request), nil
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &TransportError{Method: method, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.login, c.password)

	if c.debug {
		c.logger.Debug().
			Str("host", c.host).
			Str("method", request.Method).
			Str("id", request.ID).
			RawJSON("params", paramsJSON(params)).
			Msg("Sending JSON-RPC request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProtocolError{Method: method, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.debug {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("body", string(body)).
				Msg("JSON-RPC request failed")
		}
		return nil, &ProtocolError{Method: method, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope map[string]any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&envelope); err != nil {
		return nil, &ProtocolError{Method: method, StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("malformed JSON response: %w", err)}
	}
	if envelope == nil {
		return nil, &ProtocolError{Method: method, StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("empty JSON response")}
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("method", request.Method).
			Str("id", request.ID).
			Msg("JSON-RPC request completed")
	}

	return envelope, nil
}

// record stores a call made in test mode and fabricates a success envelope
func (c *Client) record(request Request) map[string]any {
	c.mu.Lock()
	c.calls = append(c.calls, Call{Method: Method(request.Method), Params: request.Params})
	c.mu.Unlock()

	c.logger.Info().
		Str("method", request.Method).
		Msg("Test mode: JSON-RPC call not sent")

	return map[string]any{
		"jsonrpc": JSONRPCVersion,
		"id":      request.ID,
		"result":  "OK",
	}
}

func paramsJSON(params Params) []byte {
	if params == nil {
		return []byte("null")
	}
	data, err := json.Marshal(params)
	if err != nil {
		return []byte("null")
	}
	return data
}
