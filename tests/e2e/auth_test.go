package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func Test_Auth_RegisterDuplicateUsername(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	suffix := time.Now().Format("150405.000000000")
	req := map[string]string{
		"username": "e2e-dup-" + suffix,
		"email":    fmt.Sprintf("e2e-dup-%s@example.com", suffix),
		"password": "password123",
		"name":     "Dup User",
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/auth/register", "", mustMarshal(t, req))
	requireStatus(t, resp, http.StatusCreated, body)

	//同じusernameで再登録すると409
	req["email"] = fmt.Sprintf("e2e-dup2-%s@example.com", suffix)
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/auth/register", "", mustMarshal(t, req))
	requireStatus(t, resp, http.StatusConflict, body)
}

func Test_Auth_LoginWrongPassword(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	suffix := time.Now().Format("150405.000000000")
	username := "e2e-wrongpw-" + suffix

	register := map[string]string{
		"username": username,
		"email":    fmt.Sprintf("e2e-wrongpw-%s@example.com", suffix),
		"password": "password123",
		"name":     "WrongPW User",
	}
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/auth/register", "", mustMarshal(t, register))
	requireStatus(t, resp, http.StatusCreated, body)

	login := map[string]string{"username": username, "password": "wrong-password"}
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/auth/login", "", mustMarshal(t, login))
	requireStatus(t, resp, http.StatusUnauthorized, body)

	//存在しないユーザーでも同じエラー文言であること
	login["username"] = "e2e-ghost-" + suffix
	resp, body2 := c.doJSON(ctx, t, http.MethodPost, "/api/auth/login", "", mustMarshal(t, login))
	requireStatus(t, resp, http.StatusUnauthorized, body2)
	if mustDecodeError(t, body).Error != mustDecodeError(t, body2).Error {
		t.Fatalf("error message should not leak user existence")
	}
}

func Test_Auth_Me(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := registerAndLogin(t, c, ctx)

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/api/auth/me", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var me UserDTO
	if err := json.Unmarshal(body, &me); err != nil {
		t.Fatalf("json.Unmarshal(UserDTO) failed: %v body=%s", err, string(body))
	}
	if me.ID == "" || me.Username == "" {
		t.Fatalf("me should include id and username: %s", string(body))
	}

	//トークンなしは401
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/api/auth/me", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
