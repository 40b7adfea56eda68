package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"duitku/internal/config"
	"duitku/internal/handlers"
	"duitku/internal/logger"
	"duitku/internal/middleware"
	"duitku/internal/models"
	"duitku/internal/services"
	"duitku/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		Port:             "8080",
		JWTSecret:        "integration-secret",
		JWTExpirationDur: 24 * time.Hour,
	})
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Transaction{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)

	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/me", authHandler.Me)
	protected.POST("/transaction", transactionHandler.Create)
	protected.GET("/transaction", transactionHandler.GetMonthly)

	return &testApp{DB: db, Router: router}
}

// request performs an HTTP request against the app, optionally with a session cookie.
func (a *testApp) request(method, path, body, sessionToken string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionToken})
	}
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user and returns its ID.
func (a *testApp) registerUser(t *testing.T, username, password string) uint {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := a.request("POST", "/api/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("registration failed: %d %s", rec.Code, rec.Body.String())
	}

	result := parseJSON(t, rec)
	data := result["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

// loginUser logs in and returns the session token from the Set-Cookie header.
func (a *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := a.request("POST", "/api/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	return sessionCookieValue(t, rec)
}

// sessionCookieValue extracts the session token from a Set-Cookie header.
func sessionCookieValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	cookie := rec.Header().Get("Set-Cookie")
	prefix := middleware.SessionCookieName + "="
	if !strings.HasPrefix(cookie, prefix) {
		t.Fatalf("expected a session cookie, got %q", cookie)
	}
	return strings.TrimPrefix(strings.Split(cookie, ";")[0], prefix)
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
