package department

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/constants"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

// UpdateDTO is the complete desired state of a department.
type UpdateDTO struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Location    string          `json:"location" yaml:"location"`
	Budget      decimal.Decimal `json:"budget" yaml:"budget"`
	EmployeeIDs []int64         `json:"employeeIds" yaml:"employeeIds" validate:"required"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Location = strings.TrimSpace(d.Location)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d)
	if err != nil {
		return serrors.ValidationErrors{"": err.Error()}, false
	}
	return errs, len(errs) == 0
}

// Apply overwrites every field of current with the desired state.
func (d *UpdateDTO) Apply(current Department) Department {
	current.Name = d.Name
	current.Location = d.Location
	current.Budget = d.Budget
	current.EmployeeIDs = idset.Normalize(d.EmployeeIDs)
	return current
}
