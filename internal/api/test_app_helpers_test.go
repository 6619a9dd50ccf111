package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/bedmade-app/bedmade/internal/db"
	"github.com/bedmade-app/bedmade/internal/vision"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) (*fiber.App, *vision.StubClassifier) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	classifier := &vision.StubClassifier{
		Result: vision.Verdict{IsMade: true, Confidence: 0.9, Feedback: "Looks tidy."},
	}

	handler := NewHandler(database, "test-secret", time.UTC, classifier, nil, false)
	app := fiber.New()
	RegisterRoutes(app, handler)

	return app, classifier
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	status, body := jsonRequest(t, app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected status 201, got %d (%v)", email, status, body)
	}

	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("register %s: response carries no token: %v", email, body)
	}
	return token
}

func jsonRequest(t *testing.T, app *fiber.App, method string, path string, token string, payload any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("%s %s: marshal payload: %v", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	body := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return response.StatusCode, body
}

func asNumber(t *testing.T, body map[string]any, key string) float64 {
	t.Helper()

	value, ok := body[key].(float64)
	if !ok {
		t.Fatalf("expected numeric %q in %v", key, body)
	}
	return value
}

func nestedMap(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()

	value, ok := body[key].(map[string]any)
	if !ok {
		t.Fatalf("expected object %q in %v", key, body)
	}
	return value
}
