package types

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Supported order statuses. The column is open to extension, so values
// outside this set round-trip unchanged.
const (
	// OrderStatusActive indicates an open order still being assembled.
	OrderStatusActive OrderStatus = "active"

	// OrderStatusComplete indicates a fulfilled order.
	OrderStatusComplete OrderStatus = "complete"
)

// Order represents a customer order. A user may own many orders.
type Order struct {
	// ID is the unique identifier of the order.
	ID int `json:"id" db:"id"`

	// Status is the current lifecycle state of the order.
	Status OrderStatus `json:"status" db:"status"`

	// UserID identifies the user who owns the order.
	UserID int `json:"user_id" db:"user_id"`
}

// OrderProduct is a line item linking a product to an order.
type OrderProduct struct {
	// ID is the unique identifier of the line item.
	ID int `json:"id" db:"id"`

	// OrderID identifies the order this line item belongs to.
	OrderID int `json:"order_id" db:"order_id"`

	// ProductID identifies the product being ordered.
	ProductID int `json:"product_id" db:"product_id"`

	// Quantity is the number of units ordered.
	Quantity int `json:"quantity" db:"quantity"`
}
