package types

import "github.com/shopspring/decimal"

// Product represents an item in the catalog.
type Product struct {
	// ID is the unique identifier of the product.
	ID int `json:"id" db:"id"`

	// Name is the display name of the product.
	Name string `json:"name" db:"name"`

	// Price is the unit price. Stored as numeric(10,2) to avoid
	// floating-point rounding on money.
	Price decimal.Decimal `json:"price" db:"price"`

	// ImageKey is the object-storage key of the product image,
	// empty when no image has been uploaded.
	ImageKey string `json:"image_key,omitempty" db:"image_key"`
}
