package products

import "time"

var catalogEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultCatalog is the product list a fresh store is seeded with.
func DefaultCatalog() []Product {
	return []Product{
		{ID: "P-1001", Name: "Wooden Building Blocks", Category: "Toys", Price: 24.99, Stock: 40,
			Description: "Set of 50 natural wood blocks for ages 2 and up.", Image: "/img/blocks.jpg", CreatedAt: catalogEpoch},
		{ID: "P-1002", Name: "Ceramic Dinner Set", Category: "Kitchen", Price: 89.5, Stock: 12,
			Description: "16 piece stoneware set, dishwasher safe.", Image: "/img/dinner-set.jpg", CreatedAt: catalogEpoch},
		{ID: "P-1003", Name: "Cotton Bedsheet (Queen)", Category: "Home", Price: 34, Stock: 25,
			Description: "300 thread count, includes two pillow covers.", Image: "/img/bedsheet.jpg", CreatedAt: catalogEpoch},
		{ID: "P-1004", Name: "Remote Control Car", Category: "Toys", Price: 59.99, Stock: 8,
			Description: "Rechargeable 1:18 scale off-roader.", Image: "/img/rc-car.jpg", CreatedAt: catalogEpoch},
		{ID: "P-1005", Name: "Stainless Steel Cookware", Category: "Kitchen", Price: 129, Stock: 6,
			Description: "5 piece tri-ply set with glass lids.", Image: "/img/cookware.jpg", CreatedAt: catalogEpoch},
		{ID: "P-1006", Name: "Jigsaw Puzzle 1000pc", Category: "Games", Price: 15.75, Stock: 30,
			Description: "Landscape puzzle with poster guide.", Image: "/img/puzzle.jpg", CreatedAt: catalogEpoch},
	}
}
