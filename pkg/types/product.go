package types

import "github.com/sj23z/Puzur-Cataloge/pkg/enums"

// Product is a catalog listing belonging to a brand. BasePrice is a
// currency-agnostic integer amount; clinic-facing quotes apply the
// identity's discount tier on top of it.
type Product struct {
	ID          string            `json:"id"`
	BrandID     string            `json:"brandId"`
	Name        string            `json:"name"`
	Specs       string            `json:"specs"`
	Description string            `json:"description"`
	UsageNotes  string            `json:"usageNotes,omitempty"`
	BasePrice   int64             `json:"basePrice"`
	ImageURL    string            `json:"imageUrl"`
	StockStatus enums.StockStatus `json:"stockStatus"`
}
