package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/constants"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

type UpdateDTO struct {
	ID           int64           `json:"id" yaml:"id"`
	FirstName    string          `json:"firstName" yaml:"firstName" validate:"required"`
	LastName     string          `json:"lastName" yaml:"lastName" validate:"required"`
	Email        string          `json:"email" yaml:"email" validate:"required"`
	Salary       decimal.Decimal `json:"salary" yaml:"salary"`
	HireDate     time.Time       `json:"hireDate" yaml:"hireDate" validate:"required"`
	DepartmentID int64           `json:"departmentId" yaml:"departmentId"`
	ProjectIDs   []int64         `json:"projectIds" yaml:"projectIds" validate:"required"`
}

func (d *UpdateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
}

func (d *UpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()
	errs, err := serrors.Validate(constants.Validate, d)
	if err != nil {
		return serrors.ValidationErrors{"": err.Error()}, false
	}
	return errs, len(errs) == 0
}

func (d *UpdateDTO) Apply(current Employee) Employee {
	current.FirstName = d.FirstName
	current.LastName = d.LastName
	current.Email = d.Email
	current.Salary = d.Salary
	current.HireDate = d.HireDate.UTC()
	current.DepartmentID = d.DepartmentID
	current.ProjectIDs = idset.Normalize(d.ProjectIDs)
	return current
}
