// Package client is a typed HTTP client for the book reviews API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Review struct {
	ID         string    `json:"id"`
	BookTitle  string    `json:"bookTitle"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"reviewText"`
	DateAdded  time.Time `json:"dateAdded"`
}

type CreateReviewRequest struct {
	BookTitle  string `json:"bookTitle"`
	Author     string `json:"author"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

// UpdateReviewRequest only sends the fields that are set.
type UpdateReviewRequest struct {
	BookTitle  *string `json:"bookTitle,omitempty"`
	Author     *string `json:"author,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
	ReviewText *string `json:"reviewText,omitempty"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the reviews API at BaseURL. HTTPClient may be replaced
// before the first call.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) List(ctx context.Context) ([]Review, error) {
	var out []Review
	if err := c.do(ctx, http.MethodGet, "/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, req CreateReviewRequest) (*Review, error) {
	var out Review
	if err := c.do(ctx, http.MethodPost, "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id string, req UpdateReviewRequest) (*Review, error) {
	var out Review
	if err := c.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a review and returns the server's confirmation message.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
