// Package client talks to the customer collection endpoint.
package client

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
	"time"

	appErrors "github.com/unclebandit/customer-admin/internal/errors"
	"github.com/unclebandit/customer-admin/internal/model"
)

const customersPath = "/api/customers"

// maxErrorBody caps how much of a failed response is kept in APIError.
const maxErrorBody = 4 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API at baseURL. A zero timeout leaves the
// transport default in place.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// List fetches the whole collection with social media embedded.
func (c *Client) List(ctx context.Context) ([]model.Customer, error) {
	query := url.Values{"includes": {model.IncludeSocialMedia}}
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, customersPath, query, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Create posts the draft as-is.
func (c *Client) Create(ctx context.Context, req model.CreateCustomerRequest) (*model.MessageResponse, error) {
	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodPost, customersPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes one customer. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, customersPath+"/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &appErrors.APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
