package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignupCreatesAccount(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(0)
	app.Post("/signup", s.Signup)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/signup", SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var out AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
	if out.User == nil || out.User.Username != "alice" {
		t.Fatalf("unexpected user in response: %+v", out.User)
	}

	var count int64
	db.Table("users").Where("email = ?", "alice@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user row, got %d", count)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s, db := newTestServer(t)
	createUser(t, db, "alice")

	app := newTestApp(0)
	app.Post("/signup", s.Signup)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/signup", SignupRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	s, db := newTestServer(t)
	createUser(t, db, "alice")

	app := newTestApp(0)
	app.Post("/signup", s.Signup)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/signup", SignupRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(0)
	app.Post("/signup", s.Signup)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/signup", SignupRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	s, db := newTestServer(t)
	createUser(t, db, "alice")

	app := newTestApp(0)
	app.Post("/login", s.Login)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	s, db := newTestServer(t)
	createUser(t, db, "alice")

	app := newTestApp(0)
	app.Post("/login", s.Login)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	}))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(0)
	app.Post("/login", s.Login)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/login", LoginRequest{
		Email:    "ghost@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginBannedAccount(t *testing.T) {
	s, db := newTestServer(t)
	user := createUser(t, db, "alice")
	if err := db.Model(user).Update("banned", true).Error; err != nil {
		t.Fatalf("ban user: %v", err)
	}

	app := newTestApp(0)
	app.Post("/login", s.Login)

	resp := doRequest(t, app, jsonRequest(t, http.MethodPost, "/login", LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3r-secret-pw!",
	}))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}
