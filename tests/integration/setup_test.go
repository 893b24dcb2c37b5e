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

	"spendwise/internal/auth"
	"spendwise/internal/handlers"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/services"
	"spendwise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Tokens *auth.TokenService
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
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

	if err := db.AutoMigrate(&models.User{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, with the production rate limits.
func setupApp(t *testing.T) *testApp {
	return setupAppWithLimits(t, middleware.AuthRateLimit, middleware.APIRateLimit)
}

// setupAppWithLimits is setupApp with custom rate limits, so limiter tests
// don't need sixty requests to trip the general limit.
func setupAppWithLimits(t *testing.T, authLimit, apiLimit middleware.RateLimitConfig) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	tokens := auth.NewTokenService("integration-test-secret", 168*time.Hour)
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)

	authHandler := handlers.NewAuthHandler(userService, tokens)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	authLimiter := middleware.NewRateLimiter(authLimit)
	apiLimiter := middleware.NewRateLimiter(apiLimit)

	// Mirrors the production router wiring, minus swagger and CORS.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authLimiter.Middleware(), authHandler.Register)
	authRoutes.POST("/login", authLimiter.Middleware(), authHandler.Login)
	authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.Me)

	expenses := api.Group("/expenses")
	expenses.Use(apiLimiter.Middleware())
	expenses.Use(middleware.RequireAuth(tokens))
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/summary", expenseHandler.Summary)
	expenses.PATCH("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	return &testApp{DB: db, Router: router, Tokens: tokens}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	return app.requestWithHeaders(method, path, body, token, nil)
}

// requestWithHeaders is request with extra headers, used to vary the
// client fingerprint seen by the rate limiter.
func (app *testApp) requestWithHeaders(method, path, body, token string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice of maps.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":%q}`, name, email, password)
	rec := app.request("POST", "/api/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// createExpense creates an expense for the token's user and returns its ID.
func (app *testApp) createExpense(t *testing.T, token, title string, amount float64, category, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"amount":%v,"category":%q,"date":%q}`, title, amount, category, date)
	rec := app.request("POST", "/api/expenses", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// assertError checks the flat error body shape.
func assertError(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	result := parseJSON(t, rec)
	if result["error"] != want {
		t.Errorf("expected error %q, got %v", want, result["error"])
	}
}
