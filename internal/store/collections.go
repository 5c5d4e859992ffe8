package store

// Collection is the fixed key a whole collection is persisted under.
type Collection string

const (
	Favorites   Collection = "qs_favorites"
	Cart        Collection = "qs_cart"
	Session     Collection = "qs_current_user"
	Orders      Collection = "qs_local_orders"
	Reviews     Collection = "qs_local_reviews"
	Products    Collection = "qs_local_products"
	Tickets     Collection = "qs_local_tickets"
	Idempotency Collection = "qs_idempotency"
)
