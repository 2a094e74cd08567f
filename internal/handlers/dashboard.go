package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/apiserver/internal/services"
)

// DashboardHandler serves the aggregate order views.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRouter registers dashboard routes on the given router. All
// routes are guarded.
func DashboardRouter(r chi.Router, dashboardService *services.DashboardService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewDashboardHandler(dashboardService)

	r.Use(authMiddleware)
	r.Get("/user_active_order/{id}", handler.UserActiveOrder)
	r.Get("/user_completed_orders/{id}", handler.UserCompletedOrders)
}

// UserActiveOrder returns the user's orders with status "active".
func (h *DashboardHandler) UserActiveOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.dashboardService.ActiveOrderForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch active orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UserCompletedOrders returns the user's orders with status "complete".
func (h *DashboardHandler) UserCompletedOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.dashboardService.CompletedOrdersForUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch completed orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
