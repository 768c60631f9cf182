package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error categories the data service signals through status codes.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrValidation  = errors.New("invalid argument")
	ErrUnavailable = errors.New("data service unavailable")
)

type Product struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

type UserCredentials struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Active       bool   `json:"active"`
}

type Order struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	ProductID  uint    `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Canceled   bool    `json:"canceled"`
}

type DBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDBClient(dbServiceURL string) *DBClient {
	return &DBClient{
		baseURL: strings.TrimRight(dbServiceURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *DBClient) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return ErrValidation
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("db service %s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *DBClient) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *DBClient) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *DBClient) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	body := map[string]string{"username": username, "password_hash": passwordHash}
	var user User
	if err := c.do(ctx, http.MethodPost, "/users", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *DBClient) GetUser(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername is the credential lookup for login; the returned value
// carries the password hash and must never be serialized outward.
func (c *DBClient) GetUserByUsername(ctx context.Context, username string) (*UserCredentials, error) {
	var creds UserCredentials
	if err := c.do(ctx, http.MethodGet, "/users/by-username/"+username, nil, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *DBClient) UpdateUser(ctx context.Context, id uint, username string, active bool) (*User, error) {
	body := map[string]any{"username": username, "active": active}
	var user User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *DBClient) CreateOrder(ctx context.Context, userID, productID uint, quantity int) (*Order, error) {
	body := map[string]any{"user_id": userID, "product_id": productID, "quantity": quantity}
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *DBClient) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *DBClient) CancelOrder(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
