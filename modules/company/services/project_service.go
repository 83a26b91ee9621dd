package services

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

type ProjectService struct {
	repo      project.Repository
	employees employee.Repository
	resolver  *RelationshipResolver
	publisher eventbus.EventBus
}

func NewProjectService(
	repo project.Repository,
	employees employee.Repository,
	resolver *RelationshipResolver,
	publisher eventbus.EventBus,
) *ProjectService {
	return &ProjectService{
		repo:      repo,
		employees: employees,
		resolver:  resolver,
		publisher: publisher,
	}
}

func (s *ProjectService) GetByID(ctx context.Context, id int64) (ProjectSnapshot, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return ProjectSnapshot{}, &NotFoundError{Kind: KindProject, ID: id}
		}
		return ProjectSnapshot{}, err
	}
	return s.snapshot(ctx, p)
}

// Reconcile makes the stored project match dto exactly. A nil EndDate clears the stored date.
func (s *ProjectService) Reconcile(ctx context.Context, dto *project.UpdateDTO) (ProjectSnapshot, error) {
	op := reconcileOp[ProjectSnapshot]{
		kind: KindProject,
		validate: func() (serrors.ValidationErrors, bool) {
			if dto == nil {
				return serrors.ValidationErrors{"": "target state is required"}, false
			}
			return dto.Ok()
		},
		apply: func(ctx context.Context) (reconcileResult[ProjectSnapshot], error) {
			return s.apply(ctx, dto)
		},
	}
	if dto != nil {
		op.id = dto.ID
	}
	return op.run(ctx, s.publisher)
}

func (s *ProjectService) apply(ctx context.Context, dto *project.UpdateDTO) (reconcileResult[ProjectSnapshot], error) {
	var res reconcileResult[ProjectSnapshot]

	current, err := s.repo.GetForUpdate(ctx, dto.ID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return res, &NotFoundError{Kind: KindProject, ID: dto.ID}
		}
		return res, err
	}
	if res.before, err = s.snapshot(ctx, current); err != nil {
		return res, err
	}

	if _, err := s.resolver.Employees(ctx, dto.EmployeeIDs); err != nil {
		return res, err
	}

	next := dto.Apply(current)
	if err := s.repo.Save(ctx, next); err != nil {
		return res, gerrors.Wrap(err, "save project")
	}

	if res.after, err = s.GetByID(ctx, dto.ID); err != nil {
		return res, err
	}
	res.edges = len(next.EmployeeIDs)
	return res, nil
}

func (s *ProjectService) snapshot(ctx context.Context, p project.Project) (ProjectSnapshot, error) {
	employees, err := s.employees.GetByIDs(ctx, p.EmployeeIDs)
	if err != nil {
		return ProjectSnapshot{}, gerrors.Wrapf(err, "load employees of project %d", p.ID)
	}
	return ProjectSnapshot{Project: p, Employees: employees}, nil
}
