package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	"github.com/sj23z/Puzur-Cataloge/internal/pricing"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

// Service owns order requests. Creation snapshots the requester and the
// product so later catalog or account edits never rewrite history.
type Service interface {
	List(ctx context.Context, forUserID string) ([]types.OrderRequest, error)
	Create(ctx context.Context, input CreateInput) (types.OrderRequest, error)
	UpdateStatus(ctx context.Context, orderID string, next enums.OrderStatus) (types.OrderRequest, error)
}

// CreateInput is one clinic request: line items against the live
// catalog plus optional free-form notes for the sales team.
type CreateInput struct {
	RequesterID string
	Items       []CreateItem
	Notes       string
}

type CreateItem struct {
	ProductID string
	Quantity  int
}

type service struct {
	store    kv.Store
	catalog  catalog.Service
	identity identity.Service
	now      func() time.Time
}

func NewService(store kv.Store, catalogSvc catalog.Service, identitySvc identity.Service) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if identitySvc == nil {
		return nil, fmt.Errorf("identity service is required")
	}
	return &service{
		store:    store,
		catalog:  catalogSvc,
		identity: identitySvc,
		now:      time.Now,
	}, nil
}

// List returns orders newest first. A non-empty forUserID narrows the
// result to that requester's own orders.
func (s *service) List(ctx context.Context, forUserID string) ([]types.OrderRequest, error) {
	orders, err := kv.ReadAll[types.OrderRequest](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read orders")
	}
	if forUserID == "" {
		return orders, nil
	}
	mine := make([]types.OrderRequest, 0, len(orders))
	for _, order := range orders {
		if order.UserID == forUserID {
			mine = append(mine, order)
		}
	}
	return mine, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (types.OrderRequest, error) {
	if input.RequesterID == "" {
		return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "requester id is required")
	}
	if len(input.Items) == 0 {
		return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
	}

	requester, err := s.identity.GetActive(ctx, input.RequesterID)
	if err != nil {
		return types.OrderRequest{}, err
	}

	items := make([]types.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return types.OrderRequest{}, err
		}
		items = append(items, types.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			Quantity:           item.Quantity,
			UnitPriceAtRequest: pricing.QuoteUnitPrice(product.BasePrice, requester.DiscountTier),
		})
	}

	order := types.OrderRequest{
		ID:           uuid.NewString(),
		UserID:       requester.ID,
		UserFullName: requester.FullName,
		ClinicName:   requester.ClinicName,
		Items:        items,
		Total:        pricing.QuoteTotal(items),
		Status:       enums.OrderStatusPending,
		CreatedAt:    s.now().UTC(),
		Notes:        strings.TrimSpace(input.Notes),
	}

	orders, err := kv.ReadAll[types.OrderRequest](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return types.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read orders")
	}
	// Newest first, so readers never have to sort.
	orders = append([]types.OrderRequest{order}, orders...)
	if err := kv.WriteAll(ctx, s.store, kv.KeyOrders, orders); err != nil {
		return types.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write orders")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, next enums.OrderStatus) (types.OrderRequest, error) {
	if !next.IsValid() {
		return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", next))
	}

	orders, err := kv.ReadAll[types.OrderRequest](ctx, s.store, kv.KeyOrders)
	if err != nil {
		return types.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read orders")
	}

	for i, order := range orders {
		if order.ID != orderID {
			continue
		}
		if !order.Status.CanTransitionTo(next) {
			return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("order cannot move from %s to %s", order.Status, next))
		}
		orders[i].Status = next
		if err := kv.WriteAll(ctx, s.store, kv.KeyOrders, orders); err != nil {
			return types.OrderRequest{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write orders")
		}
		return orders[i], nil
	}
	return types.OrderRequest{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", orderID))
}
