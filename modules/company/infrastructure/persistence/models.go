package persistence

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type departmentRow struct {
	ID       int64           `db:"id"`
	Name     string          `db:"name"`
	Location string          `db:"location"`
	Budget   decimal.Decimal `db:"budget"`
}

type employeeRow struct {
	ID           int64           `db:"id"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	Email        string          `db:"email"`
	Salary       decimal.Decimal `db:"salary"`
	HireDate     time.Time       `db:"hire_date"`
	DepartmentID int64           `db:"department_id"`
}

type projectRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	StartDate   time.Time       `db:"start_date"`
	EndDate     sql.NullTime    `db:"end_date"`
	Budget      decimal.Decimal `db:"budget"`
}

// edgeRow is one employee_projects link, or one employee/department pair when
// loading department members.
type edgeRow struct {
	OwnerID   int64 `db:"owner_id"`
	RelatedID int64 `db:"related_id"`
}
