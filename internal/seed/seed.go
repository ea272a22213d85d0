package seed

import (
	"context"
	"errors"

	"github.com/sj23z/Puzur-Cataloge/pkg/config"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/kv"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/security"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

const defaultSecret = "password123"

// Run populates any collection whose key is still absent from the
// store. Keys that already hold data, including an explicitly emptied
// collection, are left alone, so this is safe to run on every boot.
func Run(ctx context.Context, store kv.Store, passwordCfg config.PasswordConfig, log *logger.Logger) error {
	seeded, err := seedUsers(ctx, store, passwordCfg)
	if err != nil {
		return err
	}
	if seeded {
		log.Info(ctx, "seeded default accounts")
	}

	if seeded, err = seedCollection(ctx, store, kv.KeyBrands, defaultBrands()); err != nil {
		return err
	}
	if seeded {
		log.Info(ctx, "seeded default brands")
	}

	if seeded, err = seedCollection(ctx, store, kv.KeyProducts, defaultProducts()); err != nil {
		return err
	}
	if seeded {
		log.Info(ctx, "seeded default products")
	}
	return nil
}

func seedUsers(ctx context.Context, store kv.Store, passwordCfg config.PasswordConfig) (bool, error) {
	if _, err := store.Get(ctx, kv.KeyUsers); err == nil {
		return false, nil
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check users key")
	}

	hash, err := security.HashCredential(defaultSecret, passwordCfg)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash seed credential")
	}

	users := []types.Identity{
		{
			ID:             "admin-1",
			Username:       "admin",
			CredentialHash: hash,
			Role:           enums.RoleAdmin,
			FullName:       "System Administrator",
			DiscountTier:   1,
			IsActive:       true,
		},
		{
			ID:             "user-1",
			Username:       "doctor",
			CredentialHash: hash,
			Role:           enums.RoleStandard,
			FullName:       "Dr. Sarah Smith",
			ClinicName:     "Elite Aesthetics",
			DiscountTier:   0.85,
			IsActive:       true,
		},
	}
	if err := kv.WriteAll(ctx, store, kv.KeyUsers, users); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write seed users")
	}
	return true, nil
}

func seedCollection[T any](ctx context.Context, store kv.Store, key string, records []T) (bool, error) {
	if _, err := store.Get(ctx, key); err == nil {
		return false, nil
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check "+key+" key")
	}
	if err := kv.WriteAll(ctx, store, key, records); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write seed "+key)
	}
	return true, nil
}

func defaultBrands() []types.Brand {
	return []types.Brand{
		{
			ID:             "b-1",
			Name:           "LuminaTox",
			Description:    "Premium Botulinum Toxin Type A for superior smoothing.",
			OriginCountry:  "South Korea",
			Certifications: []string{"FDA Approved", "CE Certified"},
			ImageURL:       "https://picsum.photos/id/10/800/600",
		},
		{
			ID:             "b-2",
			Name:           "VelourFill",
			Description:    "Hyaluronic Acid fillers with advanced cross-linking technology.",
			OriginCountry:  "France",
			Certifications: []string{"CE Certified", "ISO 13485"},
			ImageURL:       "https://picsum.photos/id/20/800/600",
		},
	}
}

func defaultProducts() []types.Product {
	return []types.Product{
		{
			ID:          "p-1",
			BrandID:     "b-1",
			Name:        "LuminaTox 100U",
			Specs:       "100 Units / Vial",
			Description: "Standard vial for glabellar lines.",
			BasePrice:   150000,
			ImageURL:    "https://picsum.photos/id/30/400/400",
			StockStatus: enums.StockStatusInStock,
		},
		{
			ID:          "p-2",
			BrandID:     "b-1",
			Name:        "LuminaTox 200U",
			Specs:       "200 Units / Vial",
			Description: "Larger volume for body contouring applications.",
			BasePrice:   280000,
			ImageURL:    "https://picsum.photos/id/31/400/400",
			StockStatus: enums.StockStatusLowStock,
		},
		{
			ID:          "p-3",
			BrandID:     "b-2",
			Name:        "VelourFill Deep",
			Specs:       "2 x 1.1ml Syringes",
			Description: "Ideal for nasolabial folds and deep wrinkles.",
			BasePrice:   120000,
			ImageURL:    "https://picsum.photos/id/40/400/400",
			StockStatus: enums.StockStatusInStock,
		},
		{
			ID:          "p-4",
			BrandID:     "b-2",
			Name:        "VelourFill Kiss",
			Specs:       "1 x 1.1ml Syringe",
			Description: "Designed specifically for lip augmentation.",
			BasePrice:   95000,
			ImageURL:    "https://picsum.photos/id/41/400/400",
			StockStatus: enums.StockStatusInStock,
		},
	}
}
