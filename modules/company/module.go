// Package company wires the company repositories and services together.
package company

import (
	"github.com/jacksonlee411/staffsync/modules/company/infrastructure/persistence"
	"github.com/jacksonlee411/staffsync/modules/company/services"
	"github.com/jacksonlee411/staffsync/pkg/eventbus"
)

type Options struct {
	// OrphanDepartmentID receives employees removed from a department's member set.
	OrphanDepartmentID int64
}

type Services struct {
	Resolver    *services.RelationshipResolver
	Employees   *services.EmployeeService
	Projects    *services.ProjectService
	Departments *services.DepartmentService
	Queries     *services.QueryService
}

func NewServices(publisher eventbus.EventBus, opts Options) *Services {
	departmentRepo := persistence.NewDepartmentRepository()
	employeeRepo := persistence.NewEmployeeRepository()
	projectRepo := persistence.NewProjectRepository()
	resolver := services.NewRelationshipResolver(departmentRepo, employeeRepo, projectRepo)

	return &Services{
		Resolver:  resolver,
		Employees: services.NewEmployeeService(employeeRepo, departmentRepo, projectRepo, resolver, publisher),
		Projects:  services.NewProjectService(projectRepo, employeeRepo, resolver, publisher),
		Departments: services.NewDepartmentService(
			departmentRepo, employeeRepo, resolver, publisher,
			services.WithOrphanDepartment(opts.OrphanDepartmentID),
		),
		Queries: services.NewQueryService(persistence.NewQueryRepository()),
	}
}
