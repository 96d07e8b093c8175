package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renatomh/gorestaurant-web/internal/food"
)

const foodsPath = "/foods"

// Client talks to a json /foods resource.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for baseURL, e.g. http://localhost:3333.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	return &Client{base: u, http: &http.Client{Timeout: timeout}}, nil
}

// List fetches every food.
func (c *Client) List(ctx context.Context) ([]food.Food, error) {
	var out []food.Food
	if err := c.do(ctx, "list", http.MethodGet, foodsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []food.Food{}
	}
	return out, nil
}

// Create posts f (its ID is ignored) and returns the stored record.
func (c *Client) Create(ctx context.Context, f food.Food) (food.Food, error) {
	f.ID = 0
	var out food.Food
	err := c.do(ctx, "create", http.MethodPost, foodsPath, f, &out)
	return out, err
}

// Update replaces the record at id with f.
func (c *Client) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	var out food.Food
	err := c.do(ctx, "update", http.MethodPut, itemPath(id), f, &out)
	return out, err
}

// Delete removes the record at id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id int64) string {
	return foodsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("%w: encode: %v", ErrRemote, err)}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("%w: %v", ErrRemote, err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &RemoteError{
			Op:     op,
			Status: resp.StatusCode,
			Detail: strings.TrimSpace(string(detail)),
			Err:    kindForStatus(resp.StatusCode),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: empty body", ErrRemote)}
		}
		return &RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: decode: %v", ErrRemote, err)}
	}
	return nil
}
