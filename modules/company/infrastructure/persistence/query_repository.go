package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/pkg/composables"
)

const employeeColumns = `e.id, e.first_name, e.last_name, e.email, e.salary, e.hire_date, e.department_id`

const (
	employeesByDepartmentSQL = `SELECT ` + employeeColumns + ` FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE d.name = ? ORDER BY e.id`
	totalSalaryByDepartmentSQL = `SELECT COALESCE(SUM(CAST(e.salary AS NUMERIC)), 0) FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE d.name = ?`
	employeesWithSalaryAboveSQL = `SELECT ` + employeeColumns + ` FROM employees e
		WHERE CAST(e.salary AS NUMERIC) > CAST(? AS NUMERIC) ORDER BY e.id`
	employeesHiredBetweenSQL = `SELECT ` + employeeColumns + ` FROM employees e
		WHERE e.hire_date > ? AND e.hire_date < ? ORDER BY e.id`
	employeesHiredInRangeSQL = `SELECT ` + employeeColumns + ` FROM employees e
		WHERE e.hire_date >= ? AND e.hire_date < ? ORDER BY e.id`
	topPaidEmployeesSQL = `SELECT ` + employeeColumns + ` FROM employees e
		ORDER BY CAST(e.salary AS NUMERIC) DESC, e.id LIMIT ?`
	highestBudgetDepartmentSQL = departmentSelect + ` ORDER BY CAST(budget AS NUMERIC) DESC, id LIMIT 1`
	departmentsAvgSalaryAboveSQL = `SELECT d.id, d.name, d.location, d.budget FROM departments d
		JOIN employees e ON e.department_id = d.id
		GROUP BY d.id, d.name, d.location, d.budget
		HAVING AVG(CAST(e.salary AS NUMERIC)) > CAST(? AS NUMERIC)
		ORDER BY d.id`
	allEmployeesSQL = `SELECT ` + employeeColumns + ` FROM employees e ORDER BY e.id`
)

// QueryRepository serves read-only reporting queries.
type QueryRepository struct{}

func NewQueryRepository() *QueryRepository {
	return &QueryRepository{}
}

func (r *QueryRepository) employees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []employeeRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return hydrateEmployees(ctx, tx, rows)
}

func (r *QueryRepository) departments(ctx context.Context, query string, args ...interface{}) ([]department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []departmentRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return hydrateDepartments(ctx, tx, rows)
}

func (r *QueryRepository) EmployeesByDepartment(ctx context.Context, name string) ([]employee.Employee, error) {
	out, err := r.employees(ctx, employeesByDepartmentSQL, name)
	if err != nil {
		return nil, gerrors.Wrap(err, "employees by department")
	}
	return out, nil
}

func (r *QueryRepository) TotalSalaryByDepartment(ctx context.Context, name string) (decimal.Decimal, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	if err := tx.GetContext(ctx, &total, tx.Rebind(totalSalaryByDepartmentSQL), name); err != nil {
		return decimal.Zero, gerrors.Wrap(err, "total salary by department")
	}
	return total, nil
}

func (r *QueryRepository) EmployeesWithSalaryAbove(ctx context.Context, min decimal.Decimal) ([]employee.Employee, error) {
	out, err := r.employees(ctx, employeesWithSalaryAboveSQL, min.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "employees with salary above")
	}
	return out, nil
}

// EmployeesHiredInRange returns employees hired in [from, to).
func (r *QueryRepository) EmployeesHiredInRange(ctx context.Context, from, to time.Time) ([]employee.Employee, error) {
	out, err := r.employees(ctx, employeesHiredInRangeSQL, from.UTC(), to.UTC())
	if err != nil {
		return nil, gerrors.Wrap(err, "employees hired in range")
	}
	return out, nil
}

// EmployeesHiredBetween returns employees hired strictly after start and strictly before end.
func (r *QueryRepository) EmployeesHiredBetween(ctx context.Context, start, end time.Time) ([]employee.Employee, error) {
	out, err := r.employees(ctx, employeesHiredBetweenSQL, start.UTC(), end.UTC())
	if err != nil {
		return nil, gerrors.Wrap(err, "employees hired between")
	}
	return out, nil
}

func (r *QueryRepository) TopPaidEmployees(ctx context.Context, limit int) ([]employee.Employee, error) {
	out, err := r.employees(ctx, topPaidEmployeesSQL, limit)
	if err != nil {
		return nil, gerrors.Wrap(err, "top paid employees")
	}
	return out, nil
}

func (r *QueryRepository) DepartmentWithHighestBudget(ctx context.Context) (department.Department, error) {
	out, err := r.departments(ctx, highestBudgetDepartmentSQL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return department.Department{}, department.ErrNotFound
		}
		return department.Department{}, gerrors.Wrap(err, "department with highest budget")
	}
	if len(out) == 0 {
		return department.Department{}, department.ErrNotFound
	}
	return out[0], nil
}

func (r *QueryRepository) DepartmentsWithAverageSalaryAbove(ctx context.Context, min decimal.Decimal) ([]department.Department, error) {
	out, err := r.departments(ctx, departmentsAvgSalaryAboveSQL, min.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "departments with average salary above")
	}
	return out, nil
}

func (r *QueryRepository) ListDepartments(ctx context.Context) ([]department.Department, error) {
	out, err := r.departments(ctx, departmentSelect+` ORDER BY id`)
	if err != nil {
		return nil, gerrors.Wrap(err, "list departments")
	}
	return out, nil
}

func (r *QueryRepository) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	out, err := r.employees(ctx, allEmployeesSQL)
	if err != nil {
		return nil, gerrors.Wrap(err, "list employees")
	}
	return out, nil
}

func (r *QueryRepository) ListProjects(ctx context.Context) ([]project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []projectRow
	if err := tx.SelectContext(ctx, &rows, projectSelect+` ORDER BY id`); err != nil {
		return nil, gerrors.Wrap(err, "list projects")
	}
	return hydrateProjects(ctx, tx, rows)
}
