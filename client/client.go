package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyParamoshkin/presupuesto/internal/model"
)

// Client talks to the article REST API served by `presupuesto serve`.
type Client struct {
	http.Client
	Addr string
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Status     string `json:"status"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Message)
	}

	return fmt.Sprintf("%d %s", e.StatusCode, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)

	return ok && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

func (c *Client) CreateArticle(ctx context.Context, description, quantity, category string) (*model.Article, error) {
	in := model.Article{Description: description, Quantity: quantity, Category: category}

	var out model.Article
	if err := c.do(ctx, http.MethodPost, "/articles", in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	var out model.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, p model.Patch) (*model.Article, error) {
	var out model.Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+id, p, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+id, nil, nil)
}

func (c *Client) ListArticles(ctx context.Context) ([]*model.Article, error) {
	var out []*model.Article
	if err := c.do(ctx, http.MethodGet, "/articles", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
