package persistence

import (
	"context"
	"database/sql"
	"errors"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/repo"
)

const (
	employeeSelect      = `SELECT id, first_name, last_name, email, salary, hire_date, department_id FROM employees`
	employeeProjectsSQL = `SELECT employee_id AS owner_id, project_id AS related_id FROM employee_projects WHERE employee_id IN (?) ORDER BY project_id`
	employeeUpdateSQL   = `UPDATE employees SET first_name = ?, last_name = ?, email = ?, salary = ?, hire_date = ?, department_id = ? WHERE id = ?`
	employeeClearSQL    = `DELETE FROM employee_projects WHERE employee_id = ?`
)

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	return r.get(ctx, id, false)
}

func (r *EmployeeRepository) GetForUpdate(ctx context.Context, id int64) (employee.Employee, error) {
	return r.get(ctx, id, true)
}

func (r *EmployeeRepository) get(ctx context.Context, id int64, lock bool) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	q := employeeSelect + ` WHERE id = ?`
	if lock {
		q = forUpdate(tx, q)
	}
	var row employeeRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrNotFound
		}
		return employee.Employee{}, gerrors.Wrapf(err, "get employee %d", id)
	}
	projects, err := employeeProjects(ctx, tx, []int64{id})
	if err != nil {
		return employee.Employee{}, err
	}
	return toDomainEmployee(row, projects[id]), nil
}

func (r *EmployeeRepository) GetByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []employeeRow
	if err := selectIn(ctx, tx, &rows, employeeSelect+` WHERE id IN (?) ORDER BY id`, ids); err != nil {
		return nil, gerrors.Wrap(err, "list employees")
	}
	return hydrateEmployees(ctx, tx, rows)
}

func (r *EmployeeRepository) Save(ctx context.Context, e employee.Employee) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(employeeUpdateSQL),
		e.FirstName, e.LastName, e.Email, e.Salary, e.HireDate.UTC(), e.DepartmentID, e.ID,
	)
	if err != nil {
		return gerrors.Wrapf(mapStoreError(err), "update employee %d", e.ID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return gerrors.Wrap(err, "employee rows affected")
	} else if n == 0 {
		return employee.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(employeeClearSQL), e.ID); err != nil {
		return gerrors.Wrapf(err, "clear projects of employee %d", e.ID)
	}
	projectIDs := idset.Normalize(e.ProjectIDs)
	pairs := make([][2]int64, 0, len(projectIDs))
	for _, pid := range projectIDs {
		pairs = append(pairs, [2]int64{e.ID, pid})
	}
	if err := insertEdges(ctx, tx, pairs); err != nil {
		return gerrors.Wrapf(err, "link projects of employee %d", e.ID)
	}
	return nil
}

// hydrateEmployees attaches project ids to rows, keeping row order.
func hydrateEmployees(ctx context.Context, tx repo.Tx, rows []employeeRow) ([]employee.Employee, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	projects, err := employeeProjects(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainEmployee(row, projects[row.ID]))
	}
	return out, nil
}

func employeeProjects(ctx context.Context, tx repo.Tx, ids []int64) (map[int64][]int64, error) {
	var rows []edgeRow
	if err := selectIn(ctx, tx, &rows, employeeProjectsSQL, ids); err != nil {
		return nil, gerrors.Wrap(err, "load employee projects")
	}
	return groupEdges(rows), nil
}
