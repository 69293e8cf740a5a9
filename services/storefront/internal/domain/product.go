package domain

import "github.com/shopspring/decimal"

// Product is the read-only view of an inventory row. Nullable text columns
// are pointers so an absent value can be told apart from an empty one.
type Product struct {
	ID                 string          `db:"id"`
	Name               string          `db:"name"`
	Description        *string         `db:"description"`
	WebsiteDescription *string         `db:"website_description"`
	Price              decimal.Decimal `db:"price"`
	StockQuantity      int64           `db:"stock_quantity"`
	ImageURL           *string         `db:"image_url"`
	Brand              *string         `db:"brand"`
	Barcode            *string         `db:"barcode"`
	SKU                *string         `db:"sku"`
	Category           *string         `db:"category"`
	ShowOnWebsite      bool            `db:"show_on_website"`
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// Text returns the value of a nullable column, or "" when it is NULL.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FirstNonEmpty returns the first value that is not empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
