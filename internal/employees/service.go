package employees

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmarchetti/posplus-backend/pkg/errors"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

// EmployeeDTO is the authenticated employee shape returned to clients.
// The password never leaves this package.
type EmployeeDTO struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

type Service interface {
	Login(ctx context.Context, employeeID, password string) (*EmployeeDTO, error)
}

type service struct {
	store Store
	log   *logger.Logger
}

func NewService(store Store, log *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("employees: store is required")
	}
	if log == nil {
		return nil, fmt.Errorf("employees: logger is required")
	}
	return &service{store: store, log: log}, nil
}

func (s *service) Login(ctx context.Context, employeeID, password string) (*EmployeeDTO, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" || password == "" {
		return nil, errors.New(errors.CodeValidation, "employee id and password are required")
	}

	employee, err := s.store.FindByCredentials(ctx, employeeID, password)
	if err != nil {
		if appErr := errors.As(err); appErr != nil && appErr.Code() == errors.CodeUnauthorized {
			s.log.Warn(ctx, fmt.Sprintf("login rejected for employee %s", employeeID))
		}
		return nil, err
	}

	s.log.Info(ctx, fmt.Sprintf("employee %s logged in", employee.EmployeeID))
	return &EmployeeDTO{
		ID:         employee.ID,
		EmployeeID: employee.EmployeeID,
		Name:       employee.Name,
	}, nil
}
