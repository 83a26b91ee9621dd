// Package seed loads the reference company dataset.
package seed

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/infrastructure/persistence"
	"github.com/jacksonlee411/staffsync/pkg/composables"
)

const (
	insertDepartmentSQL = `INSERT INTO departments (id, name, location, budget) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`
	insertEmployeeSQL   = `INSERT INTO employees (id, first_name, last_name, email, salary, hire_date, department_id)
		VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`
	insertProjectSQL = `INSERT INTO projects (id, name, description, start_date, end_date, budget)
		VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`
	insertAssignmentSQL = `INSERT INTO employee_projects (employee_id, project_id) VALUES (?, ?) ON CONFLICT DO NOTHING`
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Departments() []department.Department {
	return []department.Department{
		{ID: 1, Name: "Engineering", Location: "Building A", Budget: decimal.NewFromInt(500000)},
		{ID: 2, Name: "Marketing", Location: "Building B", Budget: decimal.NewFromInt(200000)},
		{ID: 3, Name: "Sales", Location: "Building C", Budget: decimal.NewFromInt(300000)},
		{ID: 4, Name: "HR", Location: "Building D", Budget: decimal.NewFromInt(150000)},
	}
}

func Employees() []employee.Employee {
	return []employee.Employee{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@company.com", Salary: decimal.NewFromInt(75000), HireDate: day(2020, time.January, 15), DepartmentID: 1},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane.smith@company.com", Salary: decimal.NewFromInt(85000), HireDate: day(2019, time.March, 10), DepartmentID: 1},
		{ID: 3, FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@company.com", Salary: decimal.NewFromInt(65000), HireDate: day(2021, time.June, 1), DepartmentID: 2},
		{ID: 4, FirstName: "Alice", LastName: "Williams", Email: "alice.williams@company.com", Salary: decimal.NewFromInt(60000), HireDate: day(2020, time.August, 25), DepartmentID: 2},
		{ID: 5, FirstName: "Charlie", LastName: "Brown", Email: "charlie.brown@company.com", Salary: decimal.NewFromInt(55000), HireDate: day(2022, time.February, 14), DepartmentID: 3},
		{ID: 6, FirstName: "Diana", LastName: "Prince", Email: "diana.prince@company.com", Salary: decimal.NewFromInt(80000), HireDate: day(2018, time.November, 5), DepartmentID: 3},
		{ID: 7, FirstName: "Eve", LastName: "Davis", Email: "eve.davis@company.com", Salary: decimal.NewFromInt(50000), HireDate: day(2021, time.September, 20), DepartmentID: 4},
		{ID: 8, FirstName: "Frank", LastName: "Miller", Email: "frank.miller@company.com", Salary: decimal.NewFromInt(90000), HireDate: day(2017, time.April, 3), DepartmentID: 1},
	}
}

func Projects() []project.Project {
	betaEnd := day(2024, time.December, 31)
	return []project.Project{
		{ID: 1, Name: "Project Alpha", Description: "First major project", StartDate: day(2024, time.January, 1), Budget: decimal.NewFromInt(100000)},
		{ID: 2, Name: "Project Beta", Description: "Second project", StartDate: day(2024, time.March, 1), EndDate: &betaEnd, Budget: decimal.NewFromInt(150000)},
		{ID: 3, Name: "Project Gamma", Description: "Third project", StartDate: day(2024, time.June, 1), Budget: decimal.NewFromInt(200000)},
	}
}

// Assignments lists the initial employee/project edges as {employeeID, projectID}.
func Assignments() [][2]int64 {
	return [][2]int64{
		{2, 2}, {3, 2}, {4, 3}, {6, 3}, {8, 2}, {8, 3},
	}
}

// Run creates the schema if needed and inserts the reference dataset.
// Rows that already exist are left as they are.
func Run(ctx context.Context) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := persistence.EnsureSchema(txCtx); err != nil {
			return err
		}
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		for _, d := range Departments() {
			if _, err := tx.ExecContext(txCtx, tx.Rebind(insertDepartmentSQL), d.ID, d.Name, d.Location, d.Budget); err != nil {
				return gerrors.Wrapf(err, "seed department %d", d.ID)
			}
		}
		for _, e := range Employees() {
			if _, err := tx.ExecContext(txCtx, tx.Rebind(insertEmployeeSQL),
				e.ID, e.FirstName, e.LastName, e.Email, e.Salary, e.HireDate, e.DepartmentID,
			); err != nil {
				return gerrors.Wrapf(err, "seed employee %d", e.ID)
			}
		}
		for _, p := range Projects() {
			var end interface{}
			if p.EndDate != nil {
				end = *p.EndDate
			}
			if _, err := tx.ExecContext(txCtx, tx.Rebind(insertProjectSQL),
				p.ID, p.Name, p.Description, p.StartDate, end, p.Budget,
			); err != nil {
				return gerrors.Wrapf(err, "seed project %d", p.ID)
			}
		}
		for _, a := range Assignments() {
			if _, err := tx.ExecContext(txCtx, tx.Rebind(insertAssignmentSQL), a[0], a[1]); err != nil {
				return gerrors.Wrapf(err, "seed assignment %d/%d", a[0], a[1])
			}
		}
		return nil
	})
}
