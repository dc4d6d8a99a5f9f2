package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"

	"github.com/google/uuid"
)

func createdAgo(d time.Duration) func(*models.Business) {
	return func(b *models.Business) { b.CreatedAt = time.Now().Add(-d) }
}

func TestListBusinessesExcludesInactive(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))

	seedBusiness(db, "A", createdAgo(5*time.Hour))
	seedBusiness(db, "B", createdAgo(4*time.Hour), func(b *models.Business) { b.IsActive = ptr(false) })
	seedBusiness(db, "C", createdAgo(3*time.Hour))
	seedBusiness(db, "D", createdAgo(2*time.Hour), func(b *models.Business) { b.IsActive = ptr(false) })
	seedBusiness(db, "E", createdAgo(1*time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	got := names(parseResponseArray(w))
	want := []string{"E", "C", "A"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected newest-first active businesses %v, got %v", want, got)
	}
}

func TestListBusinessesFiltersCompose(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))

	seedBusiness(db, "Centro Delivery", func(b *models.Business) { b.OffersDelivery = true })
	seedBusiness(db, "Centro Balcão")
	seedBusiness(db, "Alto Delivery", func(b *models.Business) {
		b.Neighborhood = "Alto"
		b.OffersDelivery = true
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?neighborhood=Centro&delivery=true", nil))

	got := names(parseResponseArray(w))
	if len(got) != 1 || got[0] != "Centro Delivery" {
		t.Errorf("expected only 'Centro Delivery', got %v", got)
	}
}

func TestListBusinessesSearchAndSentinelCategory(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))

	seedBusiness(db, "Padaria São Jorge")
	seedBusiness(db, "Prefeitura", func(b *models.Business) {
		b.Category = models.CategoryServices
		b.IsOfficial = true
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?search=S%C3%83O", nil))
	if got := names(parseResponseArray(w)); len(got) != 1 || got[0] != "Padaria São Jorge" {
		t.Errorf("expected case-insensitive match, got %v", got)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?category=Oficiais", nil))
	if got := names(parseResponseArray(w)); len(got) != 1 || got[0] != "Prefeitura" {
		t.Errorf("expected only the official business, got %v", got)
	}
}

func TestListBusinessesSortByDistance(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))

	seedBusiness(db, "Sem Endereço", createdAgo(time.Minute))
	seedBusiness(db, "Campinas", createdAgo(2*time.Minute), func(b *models.Business) {
		b.Latitude, b.Longitude = ptr(-22.9056), ptr(-47.0608)
	})
	seedBusiness(db, "Vizinho", createdAgo(3*time.Minute), func(b *models.Business) {
		b.Latitude, b.Longitude = ptr(-22.7250), ptr(-47.6490)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?sort=distance&lat=-22.7253&lng=-47.6492", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	got := names(result)
	want := []string{"Vizinho", "Campinas", "Sem Endereço"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	first := result[0].(map[string]interface{})
	if _, ok := first["distance"]; !ok {
		t.Error("expected distance on located business")
	}
	last := result[2].(map[string]interface{})
	if _, ok := last["distance"]; ok {
		t.Error("expected no distance on business without coordinates")
	}
}

func TestListBusinessesInvalidPosition(t *testing.T) {
	router := setupPublicRouter(store.New(freshDB()))

	for _, q := range []string{"lat=-22.7", "lat=abc&lng=-47", "lat=95&lng=-47"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestListBusinessesOpenNow(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))

	seedBusiness(db, "Dia Útil")
	seedBusiness(db, "Fechado", func(b *models.Business) { b.Schedule = models.WeekSchedule{} })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses?open_now=true", nil))

	result := parseResponseArray(w)
	if got := names(result); len(got) != 1 || got[0] != "Dia Útil" {
		t.Fatalf("expected only the open business, got %v", got)
	}
	if result[0].(map[string]interface{})["open_now"] != true {
		t.Error("expected open_now true")
	}
}

func TestListBusinessesStoreFailure(t *testing.T) {
	freshDB()
	ms := newMockStore()
	ms.ListBusinessesFn = func(ctx context.Context) ([]models.Business, error) { return nil, errStoreDown }
	router := setupPublicRouter(ms)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestGetBusiness(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))
	b := seedBusiness(db, "Padaria", func(b *models.Business) {
		b.Latitude, b.Longitude = ptr(-22.7250), ptr(-47.6490)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/api/businesses/%s?lat=-22.7253&lng=-47.6492", b.ID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["name"] != "Padaria" {
		t.Errorf("expected name 'Padaria', got %v", resp["name"])
	}
	if resp["business_hours"] != "Seg: 08:00-18:00 | Ter: 08:00-18:00 | Qua: 08:00-18:00 | Qui: 08:00-18:00 | Sex: 08:00-18:00" {
		t.Errorf("unexpected business_hours %v", resp["business_hours"])
	}
	if resp["open_now"] != true {
		t.Error("expected open_now true on Monday morning")
	}
	if label, _ := resp["distance_label"].(string); label == "" {
		t.Error("expected a distance label")
	}
}

func TestGetBusinessInactiveIsHidden(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))
	b := seedBusiness(db, "Oculto", func(b *models.Business) { b.IsActive = ptr(false) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses/"+b.ID.String(), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestGetBusinessBadID(t *testing.T) {
	router := setupPublicRouter(store.New(freshDB()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/businesses/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestRecordView(t *testing.T) {
	db := freshDB()
	s := store.New(db)
	router := setupPublicRouter(s)
	b := seedBusiness(db, "Padaria")

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/api/businesses/"+b.ID.String()+"/views", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
	}

	got, _ := s.GetBusiness(context.Background(), b.ID)
	if got.Views != 3 {
		t.Errorf("expected 3 views, got %d", got.Views)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/businesses/"+uuid.New().String()+"/views", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown business, got %d", w.Code)
	}
}

func TestListCategories(t *testing.T) {
	router := setupPublicRouter(store.New(freshDB()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))

	resp := parseResponse(w)
	categories, _ := resp["categories"].([]interface{})
	if len(categories) != len(models.Categories) {
		t.Errorf("expected %d categories, got %d", len(models.Categories), len(categories))
	}
	special, _ := resp["special"].([]interface{})
	if len(special) != 2 {
		t.Errorf("expected 2 special categories, got %d", len(special))
	}
}

func TestListNeighborhoods(t *testing.T) {
	db := freshDB()
	router := setupPublicRouter(store.New(db))
	seedBusiness(db, "A")
	seedBusiness(db, "B", func(b *models.Business) { b.Neighborhood = "Alto" })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/neighborhoods", nil))

	result := parseResponseArray(w)
	if len(result) != 2 || result[0] != "Alto" || result[1] != "Centro" {
		t.Errorf("expected [Alto Centro], got %v", result)
	}
}
