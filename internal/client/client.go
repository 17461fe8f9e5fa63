// Package client is a typed HTTP client for the storefront API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// ErrorKind は失敗の分類。storeがリトライ/ロールバック判断に使う。
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindTransient    ErrorKind = "transient"
)

// APIError はサーバ/ネットワーク起因の失敗。
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error (%s, status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
}

// ErrorKindOf はerrがAPIErrorならそのKindを返す。それ以外はTransient扱い。
func ErrorKindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

const requestTimeout = 10 * time.Second

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.Mutex
	token string
}

func New(baseURL string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must include scheme and host: %q", baseURL)
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

// SetToken はbearerトークンを差し替える。空文字で未認証に戻る。
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransient, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Error == "" {
			eb.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: eb.Error,
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindTransient
	}
}

// --- auth ---

func (c *Client) Register(ctx context.Context, name, email, password string) (*RegisterResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var payload RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var payload LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return nil, err
	}
	c.SetToken(payload.Token.AccessToken)
	return &payload, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var payload User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// --- products ---

func (c *Client) ListProducts(ctx context.Context, page, limit int, q string) (*PaginatedProducts, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if q != "" {
		values.Set("q", q)
	}
	rel := &url.URL{Path: "/products", RawQuery: values.Encode()}
	var payload PaginatedProducts
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var payload Product
	if err := c.do(ctx, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// --- addresses ---

func (c *Client) ListAddresses(ctx context.Context) ([]Address, error) {
	var payload []Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) CreateAddress(ctx context.Context, in AddressInput) (*Address, error) {
	var payload Address
	if err := c.do(ctx, http.MethodPost, "/addresses", in, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, in AddressInput) (*Address, error) {
	var payload Address
	if err := c.do(ctx, http.MethodPut, "/addresses/"+strconv.FormatInt(id, 10), in, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/addresses/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) SetDefaultAddress(ctx context.Context, id int64) (*Address, error) {
	var payload Address
	if err := c.do(ctx, http.MethodPost, "/addresses/"+strconv.FormatInt(id, 10)+"/default", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// --- favorites ---

func (c *Client) ListFavorites(ctx context.Context) ([]Favorite, error) {
	var payload []Favorite
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) AddFavorite(ctx context.Context, productID int64) (*Favorite, error) {
	body := map[string]int64{"product_id": productID}
	var payload Favorite
	if err := c.do(ctx, http.MethodPost, "/favorites", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RemoveFavorite はお気に入りレコードのid（product idではない）で削除する。
func (c *Client) RemoveFavorite(ctx context.Context, favoriteID int64) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+strconv.FormatInt(favoriteID, 10), nil, nil)
}

// --- orders ---

func (c *Client) ListOrders(ctx context.Context, q OrderQuery) (*PaginatedOrders, error) {
	values := url.Values{}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		values.Set("skip", strconv.Itoa(q.Skip))
	}
	rel := &url.URL{Path: "/orders", RawQuery: values.Encode()}
	var payload PaginatedOrders
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*Order, error) {
	var payload Order
	if err := c.do(ctx, http.MethodPost, "/orders", in, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// --- reviews ---

func (c *Client) CreateReview(ctx context.Context, in ReviewInput) (*Review, error) {
	var payload Review
	if err := c.do(ctx, http.MethodPost, "/reviews", in, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
