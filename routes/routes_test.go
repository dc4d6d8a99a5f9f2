package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"guia-piracicaba-backend/database"
	"guia-piracicaba-backend/drafts"
	"guia-piracicaba-backend/middleware"
	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"
	"guia-piracicaba-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.CreateSQLiteTables(db); err != nil {
		t.Fatal(err)
	}

	s := store.New(db)
	r := gin.New()
	SetupRoutes(r, Deps{
		Store:   s,
		Drafts:  drafts.NewRegistry(s, time.Hour),
		Limiter: limiter,
	})
	return r
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicBusinessesRoute(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRouteRequiresAuth(t *testing.T) {
	r := setupRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/admin/businesses", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRouteBlocksMerchant(t *testing.T) {
	r := setupRouter(t, nil)
	businessID := uuid.New()
	token, _ := utils.GenerateToken(uuid.New(), "loja@test.com", models.RoleMerchant, &businessID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/drafts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMerchantRouteBlocksAdmin(t *testing.T) {
	r := setupRouter(t, nil)
	token, _ := utils.GenerateToken(uuid.New(), "admin@test.com", models.RoleAdmin, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/merchant/business", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := setupRouter(t, limiter)

	body := `{"email":"nobody@test.com","password":"x"}`
	w1 := httptest.NewRecorder()
	req1 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req1.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w1, req1)
	if w1.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w1.Code, w1.Body.String())
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestPublicReadsAreNotRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := setupRouter(t, limiter)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}
