package persistence

import (
	"context"
	"database/sql"
	"errors"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/composables"
	"github.com/jacksonlee411/staffsync/pkg/repo"
)

const (
	projectSelect       = `SELECT id, name, description, start_date, end_date, budget FROM projects`
	projectEmployeesSQL = `SELECT project_id AS owner_id, employee_id AS related_id FROM employee_projects WHERE project_id IN (?) ORDER BY employee_id`
	projectUpdateSQL    = `UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, budget = ? WHERE id = ?`
	projectClearSQL     = `DELETE FROM employee_projects WHERE project_id = ?`
)

type ProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &ProjectRepository{}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	return r.get(ctx, id, false)
}

func (r *ProjectRepository) GetForUpdate(ctx context.Context, id int64) (project.Project, error) {
	return r.get(ctx, id, true)
}

func (r *ProjectRepository) get(ctx context.Context, id int64, lock bool) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return project.Project{}, err
	}
	q := projectSelect + ` WHERE id = ?`
	if lock {
		q = forUpdate(tx, q)
	}
	var row projectRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return project.Project{}, project.ErrNotFound
		}
		return project.Project{}, gerrors.Wrapf(err, "get project %d", id)
	}
	members, err := projectEmployees(ctx, tx, []int64{id})
	if err != nil {
		return project.Project{}, err
	}
	return toDomainProject(row, members[id]), nil
}

func (r *ProjectRepository) GetByIDs(ctx context.Context, ids []int64) ([]project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var rows []projectRow
	if err := selectIn(ctx, tx, &rows, projectSelect+` WHERE id IN (?) ORDER BY id`, ids); err != nil {
		return nil, gerrors.Wrap(err, "list projects")
	}
	return hydrateProjects(ctx, tx, rows)
}

func (r *ProjectRepository) Save(ctx context.Context, p project.Project) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(projectUpdateSQL),
		p.Name, p.Description, p.StartDate.UTC(), toNullTime(p.EndDate), p.Budget, p.ID,
	)
	if err != nil {
		return gerrors.Wrapf(mapStoreError(err), "update project %d", p.ID)
	}
	if n, err := res.RowsAffected(); err != nil {
		return gerrors.Wrap(err, "project rows affected")
	} else if n == 0 {
		return project.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(projectClearSQL), p.ID); err != nil {
		return gerrors.Wrapf(err, "clear employees of project %d", p.ID)
	}
	employeeIDs := idset.Normalize(p.EmployeeIDs)
	pairs := make([][2]int64, 0, len(employeeIDs))
	for _, eid := range employeeIDs {
		pairs = append(pairs, [2]int64{eid, p.ID})
	}
	if err := insertEdges(ctx, tx, pairs); err != nil {
		return gerrors.Wrapf(err, "link employees of project %d", p.ID)
	}
	return nil
}

func hydrateProjects(ctx context.Context, tx repo.Tx, rows []projectRow) ([]project.Project, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	members, err := projectEmployees(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]project.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainProject(row, members[row.ID]))
	}
	return out, nil
}

func projectEmployees(ctx context.Context, tx repo.Tx, ids []int64) (map[int64][]int64, error) {
	var rows []edgeRow
	if err := selectIn(ctx, tx, &rows, projectEmployeesSQL, ids); err != nil {
		return nil, gerrors.Wrap(err, "load project employees")
	}
	return groupEdges(rows), nil
}
