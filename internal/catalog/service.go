package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

// Service exposes the brand and product collections. Reads are open to
// any authenticated caller; writes are reserved for admins at the route
// layer.
type Service interface {
	ListBrands(ctx context.Context) ([]types.Brand, error)
	UpsertBrand(ctx context.Context, brand types.Brand) (types.Brand, error)
	ListProducts(ctx context.Context, brandID string) ([]types.Product, error)
	GetProduct(ctx context.Context, id string) (types.Product, error)
	UpsertProduct(ctx context.Context, product types.Product) (types.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	store kv.Store
}

func NewService(store kv.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	return &service{store: store}, nil
}

func (s *service) ListBrands(ctx context.Context) ([]types.Brand, error) {
	brands, err := kv.ReadAll[types.Brand](ctx, s.store, kv.KeyBrands)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read brands")
	}
	return brands, nil
}

func (s *service) UpsertBrand(ctx context.Context, brand types.Brand) (types.Brand, error) {
	brand.Name = strings.TrimSpace(brand.Name)
	if brand.Name == "" {
		return types.Brand{}, pkgerrors.New(pkgerrors.CodeValidation, "brand name is required")
	}
	if brand.ID == "" {
		brand.ID = uuid.NewString()
	}

	brands, err := kv.ReadAll[types.Brand](ctx, s.store, kv.KeyBrands)
	if err != nil {
		return types.Brand{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read brands")
	}

	replaced := false
	for i, existing := range brands {
		if existing.ID == brand.ID {
			brands[i] = brand
			replaced = true
			break
		}
	}
	if !replaced {
		brands = append(brands, brand)
	}

	if err := kv.WriteAll(ctx, s.store, kv.KeyBrands, brands); err != nil {
		return types.Brand{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write brands")
	}
	return brand, nil
}

// ListProducts returns every product, or only those under brandID when
// the filter is non-empty. An unknown brand id yields an empty slice,
// not an error.
func (s *service) ListProducts(ctx context.Context, brandID string) ([]types.Product, error) {
	products, err := kv.ReadAll[types.Product](ctx, s.store, kv.KeyProducts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products")
	}
	if brandID == "" {
		return products, nil
	}
	filtered := make([]types.Product, 0, len(products))
	for _, product := range products {
		if product.BrandID == brandID {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (types.Product, error) {
	products, err := kv.ReadAll[types.Product](ctx, s.store, kv.KeyProducts)
	if err != nil {
		return types.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products")
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", id))
}

func (s *service) UpsertProduct(ctx context.Context, product types.Product) (types.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if product.BrandID == "" {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "brand id is required")
	}
	if product.BasePrice < 0 {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}
	if !product.StockStatus.IsValid() {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stock status %q", product.StockStatus))
	}

	brands, err := kv.ReadAll[types.Brand](ctx, s.store, kv.KeyBrands)
	if err != nil {
		return types.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read brands")
	}
	known := false
	for _, brand := range brands {
		if brand.ID == product.BrandID {
			known = true
			break
		}
	}
	if !known {
		return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("brand %s not found", product.BrandID))
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	products, err := kv.ReadAll[types.Product](ctx, s.store, kv.KeyProducts)
	if err != nil {
		return types.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products")
	}

	replaced := false
	for i, existing := range products {
		if existing.ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}

	if err := kv.WriteAll(ctx, s.store, kv.KeyProducts, products); err != nil {
		return types.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write products")
	}
	return product, nil
}

// DeleteProduct removes the product if present. Deleting an id that
// does not exist is a no-op.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	products, err := kv.ReadAll[types.Product](ctx, s.store, kv.KeyProducts)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products")
	}

	kept := make([]types.Product, 0, len(products))
	for _, product := range products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	if len(kept) == len(products) {
		return nil
	}

	if err := kv.WriteAll(ctx, s.store, kv.KeyProducts, kept); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write products")
	}
	return nil
}
