package api

import (
	"net/http"
	"testing"
)

func TestRegisterLoginProfileFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	registerTestUser(t, app, "flow@example.com", "StrongPass1")

	// Duplicated email is rejected regardless of case.
	status, _ := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "Flow@Example.com",
		"password": "StrongPass1",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", status)
	}

	status, _ = jsonRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "flow@example.com",
		"password": "wrong-password",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad password login: expected 401, got %d", status)
	}

	status, body := jsonRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "flow@example.com",
		"password": "StrongPass1",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login response carries no token: %v", body)
	}

	status, body = jsonRequest(t, app, http.MethodGet, "/api/profile", token, nil)
	if status != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", status)
	}
	user := nestedMap(t, body, "user")
	if user["email"] != "flow@example.com" {
		t.Fatalf("unexpected profile email: %v", user)
	}
	if user["username"] != "flow" {
		t.Fatalf("expected username derived from email, got %v", user["username"])
	}
	if user["daily_goal"] != "early" {
		t.Fatalf("new accounts default to the early goal, got %v", user["daily_goal"])
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "StrongPass1"},
		{"malformed email", "not-an-email", "StrongPass1"},
		{"short password", "short@example.com", "abc"},
	}

	for _, test := range tests {
		status, _ := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
			"email":    test.email,
			"password": test.password,
		})
		if status != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", test.name, status)
		}
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/settings/goal"},
		{http.MethodPost, "/api/verifications/manual"},
		{http.MethodGet, "/api/records"},
		{http.MethodGet, "/api/stats/overview"},
	}

	for _, route := range paths {
		status, _ := jsonRequest(t, app, route.method, route.path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without a token, got %d", route.method, route.path, status)
		}
	}

	status, _ := jsonRequest(t, app, http.MethodGet, "/api/profile", "not-a-jwt", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", status)
	}
}

func TestGoalSettingsFlow(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	token := registerTestUser(t, app, "goal@example.com", "StrongPass1")

	status, body := jsonRequest(t, app, http.MethodGet, "/api/settings/goal", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get goal: expected 200, got %d", status)
	}
	if body["goal"] != "early" || asNumber(t, body, "start_hour") != 6 || asNumber(t, body, "end_hour") != 8 {
		t.Fatalf("unexpected default goal window: %v", body)
	}

	status, body = jsonRequest(t, app, http.MethodPut, "/api/settings/goal", token, map[string]any{"goal": "late"})
	if status != http.StatusOK || body["goal"] != "late" {
		t.Fatalf("update goal: got %d %v", status, body)
	}

	status, body = jsonRequest(t, app, http.MethodGet, "/api/settings/goal", token, nil)
	if status != http.StatusOK || asNumber(t, body, "start_hour") != 10 || asNumber(t, body, "end_hour") != 12 {
		t.Fatalf("late goal window: got %d %v", status, body)
	}

	// Legacy "morning" is accepted and stored as early.
	status, body = jsonRequest(t, app, http.MethodPut, "/api/settings/goal", token, map[string]any{"goal": "morning"})
	if status != http.StatusOK || body["goal"] != "early" {
		t.Fatalf("morning alias: got %d %v", status, body)
	}

	status, _ = jsonRequest(t, app, http.MethodPut, "/api/settings/goal", token, map[string]any{"goal": "afternoon"})
	if status != http.StatusBadRequest {
		t.Fatalf("invalid goal: expected 400, got %d", status)
	}
}
