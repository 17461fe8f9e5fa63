package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"app/internal/client"

	"github.com/stretchr/testify/require"
)

// テスト用のAPIスタブ。テストごとにmuxへハンドラを足して使う。
func newTestStores(t *testing.T, mux *http.ServeMux) *Stores {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL)
	require.NoError(t, err)

	credsPath := filepath.Join(t.TempDir(), "credentials.toml")
	return NewStores(api, credsPath)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

var testUser = client.User{ID: 1, Email: "taro@example.com", Name: "taro", Role: "USER", IsActive: true}

// POST /auth/login を固定ユーザーで受けるハンドラを登録する
func stubLogin(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.LoginResponse{
			User:  testUser,
			Token: client.AccessToken{AccessToken: "test-token", ExpiresIn: 900},
		})
	})
}

func login(t *testing.T, s *Stores) {
	t.Helper()
	require.NoError(t, s.Session.Login(context.Background(), testUser.Email, "password123"))
}
