package services

import (
	"context"
	"encoding/json"

	"github.com/shopfront/apiserver/types"
	"github.com/sirupsen/logrus"
)

// Channel carrying order lifecycle events for downstream consumers
// (fulfillment, analytics).
const orderEventsChannel = "order-events"

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	List(ctx context.Context) ([]types.Order, error)
	Create(ctx context.Context, order types.Order) (types.Order, error)
	Delete(ctx context.Context, id int) error
	AddProduct(ctx context.Context, item types.OrderProduct) (types.OrderProduct, error)
}

// EventPublisher publishes order events to a broker. mq.MQ satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// OrderEvent is the payload published on order lifecycle changes.
type OrderEvent struct {
	OrderID   int               `json:"order_id"`
	UserID    int               `json:"user_id"`
	Status    types.OrderStatus `json:"status"`
	ProductID int               `json:"product_id,omitempty"`
	Quantity  int               `json:"quantity,omitempty"`
}

// OrderService encapsulates order use-cases. Events are published best
// effort: a broker failure is logged and never fails the request.
type OrderService struct {
	repo   OrderRepository
	events EventPublisher
	log    *logrus.Logger
}

func NewOrderService(repo OrderRepository, events EventPublisher, log *logrus.Logger) *OrderService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

func (s *OrderService) List(ctx context.Context) ([]types.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Create(ctx context.Context, order types.Order) (types.Order, error) {
	if order.Status == "" {
		order.Status = types.OrderStatusActive
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return types.Order{}, err
	}

	s.publish(ctx, "order.created", OrderEvent{
		OrderID: created.ID,
		UserID:  created.UserID,
		Status:  created.Status,
	})

	return created, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *OrderService) AddProduct(ctx context.Context, item types.OrderProduct) (types.OrderProduct, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	added, err := s.repo.AddProduct(ctx, item)
	if err != nil {
		return types.OrderProduct{}, err
	}

	s.publish(ctx, "order.product_added", OrderEvent{
		OrderID:   added.OrderID,
		ProductID: added.ProductID,
		Quantity:  added.Quantity,
	})

	return added, nil
}

func (s *OrderService) publish(ctx context.Context, eventType string, event OrderEvent) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("failed to encode order event")
		return
	}

	attrs := map[string]string{"event": eventType}
	if _, err := s.events.Publish(ctx, orderEventsChannel, data, attrs); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":    eventType,
			"order_id": event.OrderID,
		}).Warn("failed to publish order event")
	}
}
