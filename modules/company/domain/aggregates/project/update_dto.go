package project

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/constants"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

// UpdateDTO.EndDate set to nil clears the stored end date.
type UpdateDTO struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Description string          `json:"description" yaml:"description"`
	StartDate   time.Time       `json:"startDate" yaml:"startDate" validate:"required"`
	EndDate     *time.Time      `json:"endDate" yaml:"endDate"`
	Budget      decimal.Decimal `json:"budget" yaml:"budget"`
	EmployeeIDs []int64         `json:"employeeIds" yaml:"employeeIds" validate:"required"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d)
	if err != nil {
		return serrors.ValidationErrors{"": err.Error()}, false
	}
	return errs, len(errs) == 0
}

func (d *UpdateDTO) Apply(current Project) Project {
	current.Name = d.Name
	current.Description = d.Description
	current.StartDate = d.StartDate.UTC()
	current.EndDate = nil
	if d.EndDate != nil {
		end := d.EndDate.UTC()
		current.EndDate = &end
	}
	current.Budget = d.Budget
	current.EmployeeIDs = idset.Normalize(d.EmployeeIDs)
	return current
}
