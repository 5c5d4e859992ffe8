package products

import "time"

// LowStockThreshold is the stock level below which a product is flagged.
const LowStockThreshold = 10

// Product is a catalog entry persisted in the products collection.
type Product struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Image       string    `json:"image,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LowStock reports whether stock is under LowStockThreshold.
func (p Product) LowStock() bool { return p.Stock < LowStockThreshold }

// NewProduct is the input for Create; id and createdAt are assigned by the repository.
type NewProduct struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// Patch holds the fields an Update may change. Nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

func (pt Patch) apply(p Product) Product {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.Image != nil {
		p.Image = *pt.Image
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Stock != nil {
		p.Stock = *pt.Stock
	}
	return p
}
