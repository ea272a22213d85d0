package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sj23z/Puzur-Cataloge/api/responses"
	"github.com/sj23z/Puzur-Cataloge/api/validators"
	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

// ListProducts returns the catalog, optionally narrowed by ?brand_id=.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context(), r.URL.Query().Get("brand_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

type upsertProductRequest struct {
	ID          string `json:"id,omitempty"`
	BrandID     string `json:"brandId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Specs       string `json:"specs,omitempty"`
	Description string `json:"description,omitempty"`
	UsageNotes  string `json:"usageNotes,omitempty"`
	BasePrice   int64  `json:"basePrice" validate:"min=0"`
	ImageURL    string `json:"imageUrl,omitempty"`
	StockStatus string `json:"stockStatus" validate:"required"`
}

func UpsertProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body upsertProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stock, err := enums.ParseStockStatus(body.StockStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status"))
			return
		}

		product, err := svc.UpsertProduct(r.Context(), types.Product{
			ID:          body.ID,
			BrandID:     body.BrandID,
			Name:        body.Name,
			Specs:       body.Specs,
			Description: body.Description,
			UsageNotes:  body.UsageNotes,
			BasePrice:   body.BasePrice,
			ImageURL:    body.ImageURL,
			StockStatus: stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct removes a product by path id. Unknown ids succeed.
func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
