package services

import (
	"context"
	"testing"

	"github.com/shopfront/apiserver/internal/store"
	"github.com/shopfront/apiserver/types"
)

type fakeOrderRepo struct {
	orders []types.Order
	items  []types.OrderProduct
	nextID int
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]types.Order, error) {
	return append([]types.Order(nil), f.orders...), nil
}

func (f *fakeOrderRepo) ListByUserAndStatus(ctx context.Context, userID int, status types.OrderStatus) ([]types.Order, error) {
	matched := make([]types.Order, 0)
	for _, order := range f.orders {
		if order.UserID == userID && order.Status == status {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, order types.Order) (types.Order, error) {
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id int) error {
	for i, order := range f.orders {
		if order.ID == id {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeOrderRepo) AddProduct(ctx context.Context, item types.OrderProduct) (types.OrderProduct, error) {
	item.ID = len(f.items) + 1
	f.items = append(f.items, item)
	return item, nil
}

func TestDashboardFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	repo := &fakeOrderRepo{}
	orders := NewOrderService(repo, nil, nil)
	dashboard := NewDashboardService(repo)

	active, err := orders.Create(ctx, types.Order{Status: types.OrderStatusActive, UserID: 1})
	if err != nil {
		t.Fatalf("create active order: %v", err)
	}
	complete, err := orders.Create(ctx, types.Order{Status: types.OrderStatusComplete, UserID: 1})
	if err != nil {
		t.Fatalf("create complete order: %v", err)
	}
	if _, err := orders.Create(ctx, types.Order{Status: types.OrderStatusActive, UserID: 2}); err != nil {
		t.Fatalf("create other user's order: %v", err)
	}

	got, err := dashboard.ActiveOrderForUser(ctx, 1)
	if err != nil {
		t.Fatalf("active orders: %v", err)
	}
	if len(got) != 1 || got[0] != active {
		t.Fatalf("expected exactly the active order, got %+v", got)
	}

	got, err = dashboard.CompletedOrdersForUser(ctx, 1)
	if err != nil {
		t.Fatalf("completed orders: %v", err)
	}
	if len(got) != 1 || got[0] != complete {
		t.Fatalf("expected exactly the completed order, got %+v", got)
	}
}

func TestDashboardEmptyForUnknownUser(t *testing.T) {
	ctx := context.Background()
	dashboard := NewDashboardService(&fakeOrderRepo{})

	got, err := dashboard.ActiveOrderForUser(ctx, 42)
	if err != nil {
		t.Fatalf("active orders: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no orders, got %+v", got)
	}
}
