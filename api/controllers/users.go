package controllers

import (
	"net/http"
	"time"

	"github.com/sj23z/Puzur-Cataloge/api/responses"
	"github.com/sj23z/Puzur-Cataloge/api/validators"
	"github.com/sj23z/Puzur-Cataloge/internal/identity"
	"github.com/sj23z/Puzur-Cataloge/pkg/enums"
	pkgerrors "github.com/sj23z/Puzur-Cataloge/pkg/errors"
	"github.com/sj23z/Puzur-Cataloge/pkg/logger"
	"github.com/sj23z/Puzur-Cataloge/pkg/types"
)

func ListUsers(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

type upsertUserRequest struct {
	ID              string     `json:"id,omitempty"`
	Username        string     `json:"username" validate:"required"`
	Password        string     `json:"password,omitempty"`
	Role            string     `json:"role" validate:"required"`
	FullName        string     `json:"fullName" validate:"required"`
	ClinicName      string     `json:"clinicName,omitempty"`
	DiscountTier    float64    `json:"discountTier" validate:"required,gt=0,lte=1"`
	IsActive        bool       `json:"isActive"`
	AccessExpiresAt *time.Time `json:"accessExpiresAt,omitempty"`
}

// UpsertUser creates or updates an account. An empty password on an
// existing account keeps the stored credential.
func UpsertUser(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "identity service unavailable"))
			return
		}

		var body upsertUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		user, err := svc.Upsert(r.Context(), identity.UpsertInput{
			Identity: types.Identity{
				ID:              body.ID,
				Username:        body.Username,
				Role:            role,
				FullName:        body.FullName,
				ClinicName:      body.ClinicName,
				DiscountTier:    body.DiscountTier,
				IsActive:        body.IsActive,
				AccessExpiresAt: body.AccessExpiresAt,
			},
			Secret: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}
