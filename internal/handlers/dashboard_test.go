package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/apiserver/internal/services"
	"github.com/shopfront/apiserver/types"
)

type fakeDashboardRepo struct {
	orders []types.Order
}

func (f *fakeDashboardRepo) ListByUserAndStatus(ctx context.Context, userID int, status types.OrderStatus) ([]types.Order, error) {
	matched := make([]types.Order, 0)
	for _, order := range f.orders {
		if order.UserID == userID && order.Status == status {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func newDashboardRouter(repo *fakeDashboardRepo) http.Handler {
	router := chi.NewRouter()
	router.Route("/api/dashboard", func(r chi.Router) {
		DashboardRouter(r, services.NewDashboardService(repo), RequireAuth(string(testSecret)))
	})
	return router
}

func TestDashboardRoutes(t *testing.T) {
	repo := &fakeDashboardRepo{orders: []types.Order{
		{ID: 1, Status: types.OrderStatusActive, UserID: 5},
		{ID: 2, Status: types.OrderStatusComplete, UserID: 5},
		{ID: 3, Status: types.OrderStatusComplete, UserID: 5},
		{ID: 4, Status: types.OrderStatusActive, UserID: 6},
	}}
	router := newDashboardRouter(repo)

	// Guarded: no token means no dashboard.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/user_active_order/5", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token: expected 401, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/dashboard/user_active_order/5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("active orders: expected 200, got %d", rec.Code)
	}
	var active []types.Order
	if err := json.NewDecoder(rec.Body).Decode(&active); err != nil {
		t.Fatalf("decode active orders: %v", err)
	}
	if len(active) != 1 || active[0].ID != 1 {
		t.Fatalf("expected only order 1, got %+v", active)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/dashboard/user_completed_orders/5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("completed orders: expected 200, got %d", rec.Code)
	}
	var completed []types.Order
	if err := json.NewDecoder(rec.Body).Decode(&completed); err != nil {
		t.Fatalf("decode completed orders: %v", err)
	}
	if len(completed) != 2 {
		t.Fatalf("expected two completed orders, got %+v", completed)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/api/dashboard/user_active_order/zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad user id: expected 400, got %d", rec.Code)
	}
}
