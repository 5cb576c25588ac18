package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestListProductsEmptyIsArray(t *testing.T) {
	router := newTestRouter(t, Deps{})

	rec := doRequest(router, http.MethodGet, "/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, Deps{
		CatalogSvc: &stubCatalog{products: []domain.Product{
			{ID: testProductID, Name: "Widget", Price: testMoney(t, "19.99")},
		}},
	})

	rec := doRequest(router, http.MethodGet, "/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"name":"Widget"`) || !strings.Contains(body, `"amount":"19.99"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	router := newTestRouter(t, Deps{})

	rec := doRequest(router, http.MethodGet, "/products/not-a-uuid", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router := newTestRouter(t, Deps{
		CatalogSvc: &stubCatalog{err: domain.ErrNotFound},
	})

	rec := doRequest(router, http.MethodGet, "/products/"+testProductID, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
