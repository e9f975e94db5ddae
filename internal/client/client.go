// Package client is a typed HTTP client for the catalog API, used by the
// catalogctl front-end.
package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// User mirrors the API's user payload.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Product mirrors the API's product payload.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageKey    string  `json:"image_key,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ProductInput carries the mutable product fields for create/update calls.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

type apiError struct {
	Message string `json:"message"`
	Detail  string `json:"error"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}

// Client talks to a catalog server.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL),
	}
}

// SetToken attaches the bearer token used for mutating calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

func apiErr(resp *resty.Response) error {
	if e, ok := resp.Error().(*apiError); ok && e.text() != "" {
		return fmt.Errorf("%s: %s", resp.Status(), e.text())
	}
	return fmt.Errorf("%s", resp.Status())
}

func (c *Client) Register(ctx context.Context, username, password string) (*User, error) {
	var out struct {
		Message string `json:"message"`
		User    User   `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/register")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("register: %w", apiErr(resp))
	}
	return &out.User, nil
}

// Login authenticates and remembers the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, *User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/login")
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if resp.IsError() {
		return "", nil, fmt.Errorf("login: %w", apiErr(resp))
	}
	c.SetToken(out.Token)
	return out.Token, &out.User, nil
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get("/products")
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list products: %w", apiErr(resp))
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var out Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get product: %w", apiErr(resp))
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var out Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/products")
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create product: %w", apiErr(resp))
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	var out Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&out).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("update product: %w", apiErr(resp))
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete(fmt.Sprintf("/products/%d", id))
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("delete product: %w", apiErr(resp))
	}
	return nil
}
