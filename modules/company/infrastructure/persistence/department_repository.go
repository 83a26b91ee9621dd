package persistence

import (
	"context"
	"database/sql"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/repo"
)

const (
	departmentSelect      = `SELECT id, name, location, budget FROM departments`
	departmentMembersSQL  = `SELECT department_id AS owner_id, id AS related_id FROM employees WHERE department_id IN (?) ORDER BY id`
	departmentUpdateSQL   = `UPDATE departments SET name = ?, location = ?, budget = ? WHERE id = ?`
	departmentReparentSQL = `UPDATE employees SET department_id = ? WHERE id IN (?)`
	departmentLeftoverSQL = `SELECT id FROM employees WHERE department_id = ? AND id NOT IN (?) ORDER BY id`
	departmentAllSQL      = `SELECT id FROM employees WHERE department_id = ? ORDER BY id`
)

type DepartmentRepository struct{}

func NewDepartmentRepository() department.Repository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (department.Department, error) {
	return r.get(ctx, id, false)
}

func (r *DepartmentRepository) GetForUpdate(ctx context.Context, id int64) (department.Department, error) {
	return r.get(ctx, id, true)
}

func (r *DepartmentRepository) get(ctx context.Context, id int64, lock bool) (department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return department.Department{}, err
	}
	q := departmentSelect + ` WHERE id = ?`
	if lock {
		q = forUpdate(tx, q)
	}
	var row departmentRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return department.Department{}, department.ErrNotFound
		}
		return department.Department{}, gerrors.Wrapf(err, "get department %d", id)
	}
	members, err := departmentMembers(ctx, tx, []int64{id})
	if err != nil {
		return department.Department{}, err
	}
	return toDomainDepartment(row, members[id]), nil
}

// GetByIDs returns the departments that exist among ids, ordered by id.
func (r *DepartmentRepository) GetByIDs(ctx context.Context, ids []int64) ([]department.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []departmentRow
	if err := selectIn(ctx, tx, &rows, departmentSelect+` WHERE id IN (?) ORDER BY id`, ids); err != nil {
		return nil, gerrors.Wrap(err, "list departments")
	}
	return hydrateDepartments(ctx, tx, rows)
}

func hydrateDepartments(ctx context.Context, tx repo.Tx, rows []departmentRow) ([]department.Department, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	members, err := departmentMembers(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]department.Department, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainDepartment(row, members[row.ID]))
	}
	return out, nil
}

func departmentMembers(ctx context.Context, tx repo.Tx, ids []int64) (map[int64][]int64, error) {
	var rows []edgeRow
	if err := selectIn(ctx, tx, &rows, departmentMembersSQL, ids); err != nil {
		return nil, gerrors.Wrap(err, "load department members")
	}
	return groupEdges(rows), nil
}

func (r *DepartmentRepository) Save(ctx context.Context, d department.Department) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(departmentUpdateSQL), d.Name, d.Location, d.Budget, d.ID)
	if err != nil {
		return gerrors.Wrapf(mapStoreError(err), "update department %d", d.ID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return gerrors.Wrap(err, "department rows affected")
	} else if n == 0 {
		return department.ErrNotFound
	}

	d.EmployeeIDs = idset.Normalize(d.EmployeeIDs)
	if len(d.EmployeeIDs) > 0 {
		q, args, err := sqlx.In(departmentReparentSQL, d.ID, d.EmployeeIDs)
		if err != nil {
			return gerrors.Wrap(err, "expand IN clause")
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
		if err != nil {
			return gerrors.Wrapf(mapStoreError(err), "reparent employees into department %d", d.ID)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return gerrors.Wrap(err, "reparent rows affected")
		}
		if n != int64(len(d.EmployeeIDs)) {
			return gerrors.Wrapf(employee.ErrNotFound, "reparented %d of %d employees", n, len(d.EmployeeIDs))
		}
	}

	leftover, err := r.leftover(ctx, tx, d)
	if err != nil {
		return err
	}
	if len(leftover) > 0 {
		return &department.MembersLeftError{DepartmentID: d.ID, EmployeeIDs: leftover}
	}
	return nil
}

func (r *DepartmentRepository) leftover(ctx context.Context, tx repo.Tx, d department.Department) ([]int64, error) {
	var ids []int64
	if len(d.EmployeeIDs) == 0 {
		if err := tx.SelectContext(ctx, &ids, tx.Rebind(departmentAllSQL), d.ID); err != nil {
			return nil, gerrors.Wrap(err, "check department members")
		}
		return ids, nil
	}
	q, args, err := sqlx.In(departmentLeftoverSQL, d.ID, d.EmployeeIDs)
	if err != nil {
		return nil, gerrors.Wrap(err, "expand IN clause")
	}
	if err := tx.SelectContext(ctx, &ids, tx.Rebind(q), args...); err != nil {
		return nil, gerrors.Wrap(err, "check department members")
	}
	return ids, nil
}
