package services

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

type EmployeeService struct {
	repo        employee.Repository
	departments department.Repository
	projects    project.Repository
	resolver    *RelationshipResolver
	publisher   eventbus.EventBus
}

func NewEmployeeService(
	repo employee.Repository,
	departments department.Repository,
	projects project.Repository,
	resolver *RelationshipResolver,
	publisher eventbus.EventBus,
) *EmployeeService {
	return &EmployeeService{
		repo:        repo,
		departments: departments,
		projects:    projects,
		resolver:    resolver,
		publisher:   publisher,
	}
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (EmployeeSnapshot, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return EmployeeSnapshot{}, &NotFoundError{Kind: KindEmployee, ID: id}
		}
		return EmployeeSnapshot{}, err
	}
	return s.snapshot(ctx, e)
}

// Reconcile makes the stored employee match dto exactly: scalars, department and project set.
func (s *EmployeeService) Reconcile(ctx context.Context, dto *employee.UpdateDTO) (EmployeeSnapshot, error) {
	op := reconcileOp[EmployeeSnapshot]{
		kind: KindEmployee,
		validate: func() (serrors.ValidationErrors, bool) {
			if dto == nil {
				return serrors.ValidationErrors{"": "target state is required"}, false
			}
			return dto.Ok()
		},
		apply: func(ctx context.Context) (reconcileResult[EmployeeSnapshot], error) {
			return s.apply(ctx, dto)
		},
	}
	if dto != nil {
		op.id = dto.ID
	}
	return op.run(ctx, s.publisher)
}

func (s *EmployeeService) apply(ctx context.Context, dto *employee.UpdateDTO) (reconcileResult[EmployeeSnapshot], error) {
	var res reconcileResult[EmployeeSnapshot]

	current, err := s.repo.GetForUpdate(ctx, dto.ID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return res, &NotFoundError{Kind: KindEmployee, ID: dto.ID}
		}
		return res, err
	}
	if res.before, err = s.snapshot(ctx, current); err != nil {
		return res, err
	}

	if _, err := s.resolver.Department(ctx, dto.DepartmentID); err != nil {
		return res, err
	}
	if _, err := s.resolver.Projects(ctx, dto.ProjectIDs); err != nil {
		return res, err
	}

	next := dto.Apply(current)
	if err := s.repo.Save(ctx, next); err != nil {
		return res, gerrors.Wrap(err, "save employee")
	}

	if res.after, err = s.GetByID(ctx, dto.ID); err != nil {
		return res, err
	}
	res.edges = len(next.ProjectIDs)
	return res, nil
}

func (s *EmployeeService) snapshot(ctx context.Context, e employee.Employee) (EmployeeSnapshot, error) {
	d, err := s.departments.GetByID(ctx, e.DepartmentID)
	if err != nil {
		return EmployeeSnapshot{}, gerrors.Wrapf(err, "load department %d of employee %d", e.DepartmentID, e.ID)
	}
	projects, err := s.projects.GetByIDs(ctx, e.ProjectIDs)
	if err != nil {
		return EmployeeSnapshot{}, gerrors.Wrapf(err, "load projects of employee %d", e.ID)
	}
	return EmployeeSnapshot{Employee: e, Department: d, Projects: projects}, nil
}
