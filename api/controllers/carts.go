package controllers

import (
	"net/http"

	"github.com/rmarchetti/posplus-backend/api/responses"
	"github.com/rmarchetti/posplus-backend/api/validators"
	cartsvc "github.com/rmarchetti/posplus-backend/internal/cart"
	pkgerrors "github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type createCartRequest struct {
	EmployeeID int64                     `json:"employeeId" validate:"required,gt=0"`
	Customer   createCartCustomerPayload `json:"customer" validate:"required"`
}

type createCartCustomerPayload struct {
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phoneNumber"`
	IsWholesale bool   `json:"isWholesale"`
}

// CreateCart opens a cart for a walk-in customer.
func CreateCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload createCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CreateCart(r.Context(), payload.EmployeeID, cartsvc.CustomerInput{
			Name:        payload.Customer.Name,
			PhoneNumber: payload.Customer.PhoneNumber,
			IsWholesale: payload.Customer.IsWholesale,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		cartID, err := validators.ParseIDParam(r, "cartID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetCart(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// ListActiveCarts returns the employee's open carts, newest first.
func ListActiveCarts(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		employeeID, err := validators.ParseQueryInt(r, "employeeId", 0, 1, 1<<31)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if employeeID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "employeeId query parameter is required"))
			return
		}

		views, err := svc.ListActive(r.Context(), int64(employeeID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}
