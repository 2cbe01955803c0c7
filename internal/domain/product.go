package domain

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Rating      float64
	ImageURL    string
	Category    string
	Stock       int
	StockMin    int
	SKU         string
}

type Category struct {
	ID   int64
	Name string
}

// LowStock reports whether the product is at or below its minimum stock level.
func (p Product) LowStock() bool {
	return p.Stock <= p.StockMin
}
