package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
)

type QueryRepository interface {
	EmployeesByDepartment(ctx context.Context, name string) ([]employee.Employee, error)
	TotalSalaryByDepartment(ctx context.Context, name string) (decimal.Decimal, error)
	EmployeesWithSalaryAbove(ctx context.Context, min decimal.Decimal) ([]employee.Employee, error)
	EmployeesHiredInRange(ctx context.Context, from, to time.Time) ([]employee.Employee, error)
	EmployeesHiredBetween(ctx context.Context, start, end time.Time) ([]employee.Employee, error)
	TopPaidEmployees(ctx context.Context, limit int) ([]employee.Employee, error)
	DepartmentWithHighestBudget(ctx context.Context) (department.Department, error)
	DepartmentsWithAverageSalaryAbove(ctx context.Context, min decimal.Decimal) ([]department.Department, error)
	ListDepartments(ctx context.Context) ([]department.Department, error)
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	ListProjects(ctx context.Context) ([]project.Project, error)
}

// Roster is the full company dataset.
type Roster struct {
	Departments []department.Department `json:"departments"`
	Employees   []employee.Employee     `json:"employees"`
	Projects    []project.Project       `json:"projects"`
}

// QueryService answers read-only reporting questions. None of its methods write.
type QueryService struct {
	repo QueryRepository
}

func NewQueryService(repo QueryRepository) *QueryService {
	return &QueryService{repo: repo}
}

func (s *QueryService) EmployeesByDepartment(ctx context.Context, name string) ([]employee.Employee, error) {
	return s.repo.EmployeesByDepartment(ctx, name)
}

func (s *QueryService) TotalSalaryByDepartment(ctx context.Context, name string) (decimal.Decimal, error) {
	return s.repo.TotalSalaryByDepartment(ctx, name)
}

func (s *QueryService) EmployeesWithSalaryAbove(ctx context.Context, min decimal.Decimal) ([]employee.Employee, error) {
	return s.repo.EmployeesWithSalaryAbove(ctx, min)
}

// EmployeesByHireYear returns employees hired during the UTC calendar year.
func (s *QueryService) EmployeesByHireYear(ctx context.Context, year int) ([]employee.Employee, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.repo.EmployeesHiredInRange(ctx, from, from.AddDate(1, 0, 0))
}

// EmployeesHiredBetween excludes both bounds.
func (s *QueryService) EmployeesHiredBetween(ctx context.Context, start, end time.Time) ([]employee.Employee, error) {
	if !start.Before(end) {
		return []employee.Employee{}, nil
	}
	return s.repo.EmployeesHiredBetween(ctx, start, end)
}

func (s *QueryService) TopPaidEmployees(ctx context.Context, n int) ([]employee.Employee, error) {
	if n <= 0 {
		return []employee.Employee{}, nil
	}
	return s.repo.TopPaidEmployees(ctx, n)
}

func (s *QueryService) DepartmentWithHighestBudget(ctx context.Context) (department.Department, error) {
	d, err := s.repo.DepartmentWithHighestBudget(ctx)
	if errors.Is(err, department.ErrNotFound) {
		return department.Department{}, &NotFoundError{Kind: KindDepartment}
	}
	return d, err
}

func (s *QueryService) DepartmentsWithAverageSalaryAbove(ctx context.Context, min decimal.Decimal) ([]department.Department, error) {
	return s.repo.DepartmentsWithAverageSalaryAbove(ctx, min)
}

func (s *QueryService) Roster(ctx context.Context) (Roster, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return Roster{}, err
	}
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return Roster{}, err
	}
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return Roster{}, err
	}
	return Roster{Departments: departments, Employees: employees, Projects: projects}, nil
}
