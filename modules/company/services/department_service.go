package services

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

type DepartmentOption func(*DepartmentService)

// WithOrphanDepartment names the department that receives employees dropped
// from another department's member set. Zero, the default, rejects such updates.
func WithOrphanDepartment(id int64) DepartmentOption {
	return func(s *DepartmentService) {
		s.orphanDepartmentID = id
	}
}

type DepartmentService struct {
	repo               department.Repository
	employees          employee.Repository
	resolver           *RelationshipResolver
	publisher          eventbus.EventBus
	orphanDepartmentID int64
}

func NewDepartmentService(
	repo department.Repository,
	employees employee.Repository,
	resolver *RelationshipResolver,
	publisher eventbus.EventBus,
	opts ...DepartmentOption,
) *DepartmentService {
	s := &DepartmentService{
		repo:      repo,
		employees: employees,
		resolver:  resolver,
		publisher: publisher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DepartmentService) GetByID(ctx context.Context, id int64) (DepartmentSnapshot, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrNotFound) {
			return DepartmentSnapshot{}, &NotFoundError{Kind: KindDepartment, ID: id}
		}
		return DepartmentSnapshot{}, err
	}
	return s.snapshot(ctx, d)
}

// Reconcile makes the stored department match dto exactly. Every employee in
// dto.EmployeeIDs is moved into the department; current members left out of the
// set are handed to the orphan department or the call is rejected.
func (s *DepartmentService) Reconcile(ctx context.Context, dto *department.UpdateDTO) (DepartmentSnapshot, error) {
	op := reconcileOp[DepartmentSnapshot]{
		kind: KindDepartment,
		validate: func() (serrors.ValidationErrors, bool) {
			if dto == nil {
				return serrors.ValidationErrors{"": "target state is required"}, false
			}
			return dto.Ok()
		},
		apply: func(ctx context.Context) (reconcileResult[DepartmentSnapshot], error) {
			return s.apply(ctx, dto)
		},
	}
	if dto != nil {
		op.id = dto.ID
	}
	return op.run(ctx, s.publisher)
}

func (s *DepartmentService) apply(ctx context.Context, dto *department.UpdateDTO) (reconcileResult[DepartmentSnapshot], error) {
	var res reconcileResult[DepartmentSnapshot]

	current, err := s.repo.GetForUpdate(ctx, dto.ID)
	if err != nil {
		if errors.Is(err, department.ErrNotFound) {
			return res, &NotFoundError{Kind: KindDepartment, ID: dto.ID}
		}
		return res, err
	}
	if res.before, err = s.snapshot(ctx, current); err != nil {
		return res, err
	}

	if _, err := s.resolver.Employees(ctx, dto.EmployeeIDs); err != nil {
		return res, err
	}

	orphans := idset.Difference(current.EmployeeIDs, dto.EmployeeIDs)
	if len(orphans) > 0 {
		if err := s.rehome(ctx, current.ID, orphans); err != nil {
			return res, err
		}
	}

	next := dto.Apply(current)
	if err := s.repo.Save(ctx, next); err != nil {
		var left *department.MembersLeftError
		if errors.As(err, &left) {
			return res, &OrphanedEmployeesError{DepartmentID: dto.ID, EmployeeIDs: left.EmployeeIDs}
		}
		return res, gerrors.Wrap(err, "save department")
	}

	if res.after, err = s.GetByID(ctx, dto.ID); err != nil {
		return res, err
	}
	res.edges = len(next.EmployeeIDs) + len(orphans)
	return res, nil
}

// rehome moves orphans out of departmentID into the configured orphan department.
func (s *DepartmentService) rehome(ctx context.Context, departmentID int64, orphans []int64) error {
	target := s.orphanDepartmentID
	if target == 0 || target == departmentID {
		return &OrphanedEmployeesError{DepartmentID: departmentID, EmployeeIDs: orphans}
	}
	if _, err := s.resolver.Department(ctx, target); err != nil {
		return err
	}

	moved, err := s.employees.GetByIDs(ctx, orphans)
	if err != nil {
		return gerrors.Wrap(err, "load orphaned employees")
	}
	for _, e := range moved {
		e.DepartmentID = target
		if err := s.employees.Save(ctx, e); err != nil {
			return gerrors.Wrapf(err, "move employee %d to department %d", e.ID, target)
		}
	}

	logWithFields(ctx, logrus.InfoLevel, "company.department.reconcile.orphans_rehomed", logrus.Fields{
		"department_id":        departmentID,
		"orphan_department_id": target,
		"employee_ids":         orphans,
	})
	return nil
}

func (s *DepartmentService) snapshot(ctx context.Context, d department.Department) (DepartmentSnapshot, error) {
	employees, err := s.employees.GetByIDs(ctx, d.EmployeeIDs)
	if err != nil {
		return DepartmentSnapshot{}, gerrors.Wrapf(err, "load employees of department %d", d.ID)
	}
	return DepartmentSnapshot{Department: d, Employees: employees}, nil
}
