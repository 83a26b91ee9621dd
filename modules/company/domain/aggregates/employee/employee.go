package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee always belongs to exactly one department.
type Employee struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Email        string          `json:"email"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     time.Time       `json:"hireDate"`
	DepartmentID int64           `json:"departmentId"`
	ProjectIDs   []int64         `json:"projectIds"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
