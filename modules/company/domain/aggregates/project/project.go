package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project.EndDate is nil while the project is open-ended.
type Project struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     *time.Time      `json:"endDate"`
	Budget      decimal.Decimal `json:"budget"`
	EmployeeIDs []int64         `json:"employeeIds"`
}
