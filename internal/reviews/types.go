package reviews

import "time"

// Review is a product review left by a customer who has ordered the product.
type Review struct {
	ID        string    `json:"id" validate:"required"`
	ProductID string    `json:"productId" validate:"required"`
	UserID    string    `json:"userId" validate:"required"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReview is the input for Create.
type NewReview struct {
	ProductID string `json:"productId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment"`
}

// Patch holds the editable fields of a review.
type Patch struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
