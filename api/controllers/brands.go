package controllers

import (
	"net/http"

	"github.com/sj23z/Puzur-Cataloge/api/responses"
	"github.com/sj23z/Puzur-Cataloge/api/validators"
	"github.com/sj23z/Puzur-Cataloge/internal/catalog"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

func ListBrands(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brands)
	}
}

type upsertBrandRequest struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description,omitempty"`
	OriginCountry  string   `json:"originCountry,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
}

// UpsertBrand creates or replaces a brand, keyed by id.
func UpsertBrand(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body upsertBrandRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := svc.UpsertBrand(r.Context(), types.Brand{
			ID:             body.ID,
			Name:           body.Name,
			Description:    body.Description,
			OriginCountry:  body.OriginCountry,
			Certifications: body.Certifications,
			ImageURL:       body.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, brand)
	}
}
