package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testSessionSecret = "test-session-secret"
	testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
)

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Env:              "test",
		SessionJWTSecret: testSessionSecret,
		WebhookSecret:    testWebhookSecret,
		IKURLEndpoint:    "https://ik.imagekit.io/demo",
		IKPublicKey:      "public_test",
		IKPrivateKey:     "private_test",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: fallbackErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return s, app, db
}

func sessionToken(t *testing.T, subject, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
		"metadata": map[string]any{
			"role": role,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSessionSecret))
	if err != nil {
		t.Fatalf("sign session token: %v", err)
	}
	return token
}

func createTestUser(t *testing.T, db *gorm.DB, subject, username string) *models.User {
	t.Helper()
	user := &models.User{
		Subject:  subject,
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// doRequest performs an app.Test round trip with optional JSON body and
// bearer token, returning the status code and decoded JSON body.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp.StatusCode, decoded
}

func doGetJSON(t *testing.T, app *fiber.App, path, token string, dest any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test GET %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if dest != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}
