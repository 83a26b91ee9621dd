package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
)

// RelationshipResolver turns requested related ids into live entities.
// It either returns one entity per distinct id or a *MissingReferenceError.
type RelationshipResolver struct {
	departments department.Repository
	employees   employee.Repository
	projects    project.Repository
}

func NewRelationshipResolver(
	departments department.Repository,
	employees employee.Repository,
	projects project.Repository,
) *RelationshipResolver {
	return &RelationshipResolver{
		departments: departments,
		employees:   employees,
		projects:    projects,
	}
}

func (r *RelationshipResolver) Departments(ctx context.Context, ids []int64) ([]department.Department, error) {
	return resolve(ctx, KindDepartment, ids, r.departments.GetByIDs, func(d department.Department) int64 { return d.ID })
}

// Department resolves a single foreign key reference.
func (r *RelationshipResolver) Department(ctx context.Context, id int64) (department.Department, error) {
	found, err := r.Departments(ctx, []int64{id})
	if err != nil {
		return department.Department{}, err
	}
	return found[0], nil
}

func (r *RelationshipResolver) Employees(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	return resolve(ctx, KindEmployee, ids, r.employees.GetByIDs, func(e employee.Employee) int64 { return e.ID })
}

func (r *RelationshipResolver) Projects(ctx context.Context, ids []int64) ([]project.Project, error) {
	return resolve(ctx, KindProject, ids, r.projects.GetByIDs, func(p project.Project) int64 { return p.ID })
}

// resolve fetches every distinct id in requested and fails with the full list of
// ids that have no entity. The result is ordered by ascending id.
func resolve[T any](
	ctx context.Context,
	kind Kind,
	requested []int64,
	fetch func(context.Context, []int64) ([]T, error),
	idOf func(T) int64,
) ([]T, error) {
	ids := idset.Normalize(requested)
	ctx, span := tracer.Start(ctx, "company.resolve",
		trace.WithAttributes(
			attribute.String("company.kind", string(kind)),
			attribute.Int("company.requested_ids", len(ids)),
		),
	)
	defer span.End()

	if len(ids) == 0 {
		return []T{}, nil
	}

	found, err := fetch(ctx, ids)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	byID := make(map[int64]T, len(found))
	for _, item := range found {
		byID[idOf(item)] = item
	}

	out := make([]T, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, item)
	}
	if len(missing) > 0 {
		recordMissingReferences(kind, len(missing))
		span.SetAttributes(attribute.Int64Slice("company.missing_ids", missing))
		return nil, &MissingReferenceError{Kind: kind, IDs: missing}
	}
	return out, nil
}
