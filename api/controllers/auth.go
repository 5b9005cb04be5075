package controllers

import (
	"net/http"

	"github.com/rmarchetti/posplus-backend/api/responses"
	"github.com/rmarchetti/posplus-backend/api/validators"
	"github.com/rmarchetti/posplus-backend/internal/employees"
	pkgerrors "github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type loginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Login authenticates a till operator by employee id and password.
func Login(svc employees.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "employee service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Login(r.Context(), payload.EmployeeID, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, employee)
	}
}
