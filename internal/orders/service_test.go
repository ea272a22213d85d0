package orders

import (
	"context"
	"testing"
	"time"

	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

type fixture struct {
	orders   *service
	catalog  catalog.Service
	identity identity.Service
	product  types.Product
	user     types.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemoryStore()

	catalogSvc, err := catalog.NewService(store)
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}
	identitySvc, err := identity.NewService(store, config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	if err != nil {
		t.Fatalf("identity.NewService: %v", err)
	}
	ordersSvc, err := NewService(store, catalogSvc, identitySvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	brand, err := catalogSvc.UpsertBrand(context.Background(), types.Brand{Name: "LuminaTox"})
	if err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	product, err := catalogSvc.UpsertProduct(context.Background(), types.Product{
		BrandID:     brand.ID,
		Name:        "Lumina 100U",
		BasePrice:   150000,
		StockStatus: enums.StockStatusInStock,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	user, err := identitySvc.Upsert(context.Background(), identity.UpsertInput{
		Identity: types.Identity{
			Username:     "doctor",
			Role:         enums.RoleStandard,
			FullName:     "Dr. Sarah Smith",
			ClinicName:   "Elite Aesthetics",
			DiscountTier: 0.85,
			IsActive:     true,
		},
		Secret: "password123",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &fixture{
		orders:   ordersSvc.(*service),
		catalog:  catalogSvc,
		identity: identitySvc,
		product:  product,
		user:     user,
	}
}

func TestCreateSnapshotsRequesterAndPrice(t *testing.T) {
	fx := newFixture(t)

	order, err := fx.orders.Create(context.Background(), CreateInput{
		RequesterID: fx.user.ID,
		Items:       []CreateItem{{ProductID: fx.product.ID, Quantity: 2}},
		Notes:       "  deliver friday  ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.ID == "" {
		t.Fatalf("expected generated order id")
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("new order status = %s, want PENDING", order.Status)
	}
	if order.UserFullName != "Dr. Sarah Smith" || order.ClinicName != "Elite Aesthetics" {
		t.Fatalf("requester not denormalized: %+v", order)
	}
	if order.Notes != "deliver friday" {
		t.Fatalf("notes = %q", order.Notes)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != "Lumina 100U" {
		t.Fatalf("product name not denormalized: %q", item.ProductName)
	}
	if item.UnitPriceAtRequest != 127500 {
		t.Fatalf("unit price = %d, want 127500 (150000 at tier 0.85)", item.UnitPriceAtRequest)
	}
	if order.Total != 255000 {
		t.Fatalf("total = %d, want 255000", order.Total)
	}
}

func TestCreatePriceSurvivesCatalogEdit(t *testing.T) {
	fx := newFixture(t)

	order, err := fx.orders.Create(context.Background(), CreateInput{
		RequesterID: fx.user.ID,
		Items:       []CreateItem{{ProductID: fx.product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	repriced := fx.product
	repriced.BasePrice = 999999
	if _, err := fx.catalog.UpsertProduct(context.Background(), repriced); err != nil {
		t.Fatalf("reprice product: %v", err)
	}

	listed, err := fx.orders.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if listed[0].Items[0].UnitPriceAtRequest != order.Items[0].UnitPriceAtRequest {
		t.Fatalf("stored price changed after catalog edit")
	}
}

func TestCreateValidation(t *testing.T) {
	fx := newFixture(t)

	cases := map[string]CreateInput{
		"noItems":      {RequesterID: fx.user.ID},
		"zeroQuantity": {RequesterID: fx.user.ID, Items: []CreateItem{{ProductID: fx.product.ID, Quantity: 0}}},
		"noRequester":  {Items: []CreateItem{{ProductID: fx.product.ID, Quantity: 1}}},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := fx.orders.Create(context.Background(), input)
			if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateUnknownProduct(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.orders.Create(context.Background(), CreateInput{
		RequesterID: fx.user.ID,
		Items:       []CreateItem{{ProductID: "missing", Quantity: 1}},
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestListNewestFirstAndOwnFilter(t *testing.T) {
	fx := newFixture(t)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	other, err := fx.identity.Upsert(context.Background(), identity.UpsertInput{
		Identity: types.Identity{
			Username:     "otherclinic",
			Role:         enums.RoleStandard,
			FullName:     "Dr. Other",
			ClinicName:   "Other Clinic",
			DiscountTier: 0.9,
			IsActive:     true,
		},
		Secret: "password123",
	})
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	for i, requester := range []string{fx.user.ID, other.ID, fx.user.ID} {
		fx.orders.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		if _, err := fx.orders.Create(context.Background(), CreateInput{
			RequesterID: requester,
			Items:       []CreateItem{{ProductID: fx.product.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	all, err := fx.orders.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	if !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Fatalf("orders not newest first: %v then %v", all[0].CreatedAt, all[2].CreatedAt)
	}

	mine, err := fx.orders.List(context.Background(), fx.user.ID)
	if err != nil {
		t.Fatalf("List mine: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 own orders, got %d", len(mine))
	}
	for _, order := range mine {
		if order.UserID != fx.user.ID {
			t.Fatalf("foreign order leaked into own view: %+v", order)
		}
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	fx := newFixture(t)
	order, err := fx.orders.Create(context.Background(), CreateInput{
		RequesterID: fx.user.ID,
		Items:       []CreateItem{{ProductID: fx.product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	approved, err := fx.orders.UpdateStatus(context.Background(), order.ID, enums.OrderStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != enums.OrderStatusApproved {
		t.Fatalf("status = %s, want APPROVED", approved.Status)
	}

	shipped, err := fx.orders.UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped)
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if shipped.Status != enums.OrderStatusShipped {
		t.Fatalf("status = %s, want SHIPPED", shipped.Status)
	}

	_, err = fx.orders.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict cancelling shipped order, got %v", err)
	}
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.orders.UpdateStatus(context.Background(), "missing", enums.OrderStatusApproved)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.orders.UpdateStatus(context.Background(), "any", enums.OrderStatus("TELEPORTED"))
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
