package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
	User      UserDTO `json:"user"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
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

func mustDecodeError(t *testing.T, body []byte) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return b
}

// テストごとにユニークなユーザーを作ってトークンを返す。
// 登録→ログインまでやるので、呼んだ側はすぐAPIを叩ける。
func registerAndLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	suffix := time.Now().Format("150405.000000000")
	username := "e2e-user-" + suffix

	registerReq := map[string]string{
		"username": username,
		"email":    fmt.Sprintf("e2e-%s@example.com", suffix),
		"password": "password123",
		"name":     "E2E User",
	}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/auth/register", "", mustMarshal(t, registerReq))
	requireStatus(t, resp, http.StatusCreated, body)

	loginReq := map[string]string{
		"username": username,
		"password": "password123",
	}
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/auth/login", "", mustMarshal(t, loginReq))
	requireStatus(t, resp, http.StatusOK, body)

	var login LoginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("json.Unmarshal(LoginResponse) failed: %v body=%s", err, string(body))
	}
	if strings.TrimSpace(login.Token) == "" {
		t.Fatalf("token is empty: body=%s", string(body))
	}
	return login.Token
}
