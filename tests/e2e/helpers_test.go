package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"
)

// BASE_URLが指すAPIに対して走る結合テスト。未設定ならスキップ。

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; skipping e2e")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New failed: %v", err)
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthLoginResponse struct {
	User  UserDTO        `json:"user"`
	Token JwtAccessToken `json:"token"`
}

type AddressDTO struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Region      string `json:"region"`
	City        string `json:"city"`
	IsDefault   bool   `json:"is_default"`
}

type FavoriteDTO struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
}

type ReviewDTO struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	OrderID   int64 `json:"order_id"`
	Rating    int   `json:"rating"`
}

type ProductDTO struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Price         int64       `json:"price"`
	StockQuantity int64       `json:"stock_quantity"`
	Reviews       []ReviewDTO `json:"reviews"`
}

type OrderItemDTO struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"product_id"`
	UnitPrice int64       `json:"unit_price"`
	Quantity  int64       `json:"quantity"`
	Product   *ProductDTO `json:"product"`
}

type OrderDTO struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	AddressID   int64          `json:"address_id"`
	Status      string         `json:"status"`
	TotalPrice  int64          `json:"total_price"`
	DeliveryFee int64          `json:"delivery_fee"`
	Items       []OrderItemDTO `json:"order_items"`
}

type PaginatedOrdersDTO struct {
	Items []OrderDTO `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Pages int        `json:"pages"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	payload any,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func mustDecode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, string(body))
	}
	return v
}

// ユニークなメールで登録してログインし、(token, userID) を返す
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) (string, int64) {
	t.Helper()

	email := fmt.Sprintf("e2e_%d@test.com", time.Now().UnixNano())
	password := "CorrectPW123!"

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "e2e user",
		"email":    email,
		"password": password,
	})
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	requireStatus(t, resp, http.StatusOK, body)

	login := mustDecode[AuthLoginResponse](t, body)
	if strings.TrimSpace(login.Token.AccessToken) == "" {
		t.Fatalf("access token is empty: body=%s", string(body))
	}
	return login.Token.AccessToken, login.User.ID
}

// 管理者でログインしてaccess_tokenを取得。ADMIN_EMAIL未設定ならスキップ。
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin e2e")
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	requireStatus(t, resp, http.StatusOK, body)

	login := mustDecode[AuthLoginResponse](t, body)
	if login.Token.AccessToken == "" {
		t.Fatalf("admin access token is empty")
	}
	return login.Token.AccessToken
}

func validAddress() map[string]any {
	return map[string]any{
		"first_name":   "Taro",
		"last_name":    "Yamada",
		"phone_number": "0712345678",
		"line1":        "Moi Avenue 1",
		"line2":        "",
		"region":       "Nairobi",
		"city":         "Nairobi",
		"is_default":   true,
	}
}
