package department

import (
	"github.com/shopspring/decimal"
)

// Department is the "one" side of the department/employee relationship.
// EmployeeIDs is derived from employees.department_id and is only written through Save.
type Department struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Budget      decimal.Decimal `json:"budget"`
	EmployeeIDs []int64         `json:"employeeIds"`
}
