package product

// Product represents a product entity in the catalog.
// Price is a non-negative decimal carried as float64 at the service boundary;
// Quantity defaults to zero when omitted on create.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	CreatedAt   string
	UpdatedAt   string
}
