package services

import (
	"context"

	"github.com/shopfront/apiserver/types"
)

// DashboardRepository defines the read queries behind the dashboard views.
type DashboardRepository interface {
	ListByUserAndStatus(ctx context.Context, userID int, status types.OrderStatus) ([]types.Order, error)
}

// DashboardService serves read-only filtered order queries.
type DashboardService struct {
	repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// ActiveOrderForUser returns the user's orders with status "active".
func (s *DashboardService) ActiveOrderForUser(ctx context.Context, userID int) ([]types.Order, error) {
	return s.repo.ListByUserAndStatus(ctx, userID, types.OrderStatusActive)
}

// CompletedOrdersForUser returns the user's orders with status "complete".
func (s *DashboardService) CompletedOrdersForUser(ctx context.Context, userID int) ([]types.Order, error) {
	return s.repo.ListByUserAndStatus(ctx, userID, types.OrderStatusComplete)
}
