package types

import (
	"time"

	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
)

// OrderItem freezes a quoted line at request time. UnitPriceAtRequest is
// never recomputed, even when the product's base price or the requester's
// discount tier changes later.
type OrderItem struct {
	ProductID          string `json:"productId"`
	ProductName        string `json:"productName"`
	Quantity           int    `json:"quantity"`
	UnitPriceAtRequest int64  `json:"unitPriceAtRequest"`
}

// OrderRequest is a non-binding quote request. Requester name and clinic are
// denormalized at creation time, and Total is summed from the frozen lines
// when the order is created.
type OrderRequest struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	UserFullName string            `json:"userFullName"`
	ClinicName   string            `json:"clinicName,omitempty"`
	Items        []OrderItem       `json:"items"`
	Total        int64             `json:"total"`
	Status       enums.OrderStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	Notes        string            `json:"notes,omitempty"`
}
