// Package client talks to the component API over HTTP/JSON.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dashboard/domain"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements the component API against a base URL such as
// "http://localhost:8080".
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

func (c *HTTPClient) ListComponents(ctx context.Context) ([]domain.Component, error) {
	var out []domain.Component
	if err := c.doJSON(ctx, http.MethodGet, "/api/components", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type upsertRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (c *HTTPClient) UpsertComponent(ctx context.Context, typ string, data json.RawMessage) (domain.Component, error) {
	var out domain.Component
	if err := c.doJSON(ctx, http.MethodPost, "/api/components", upsertRequest{Type: typ, Data: data}, &out); err != nil {
		return domain.Component{}, err
	}
	return out, nil
}

// PushConfiguration upserts the three sections of cfg. It stops at the
// first failure.
func (c *HTTPClient) PushConfiguration(ctx context.Context, cfg domain.Configuration) error {
	payloads, err := domain.ComponentsOf(cfg)
	if err != nil {
		return err
	}
	for _, typ := range domain.Sections {
		if _, err := c.UpsertComponent(ctx, typ, payloads[typ]); err != nil {
			return fmt.Errorf("pushing %s: %w", typ, err)
		}
	}
	return nil
}

// PullPatch fetches the stored sections as a Patch.
func (c *HTTPClient) PullPatch(ctx context.Context) (domain.Patch, error) {
	comps, err := c.ListComponents(ctx)
	if err != nil {
		return domain.Patch{}, err
	}
	return domain.PatchFromComponents(comps)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
