package services

import (
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
)

// EmployeeSnapshot is an employee with its department and projects as stored.
type EmployeeSnapshot struct {
	Employee   employee.Employee     `json:"employee"`
	Department department.Department `json:"department"`
	Projects   []project.Project     `json:"projects"`
}

func (s EmployeeSnapshot) ProjectIDs() []int64 {
	ids := make([]int64, 0, len(s.Projects))
	for _, p := range s.Projects {
		ids = append(ids, p.ID)
	}
	return ids
}

type ProjectSnapshot struct {
	Project   project.Project     `json:"project"`
	Employees []employee.Employee `json:"employees"`
}

func (s ProjectSnapshot) EmployeeIDs() []int64 {
	return employeeIDs(s.Employees)
}

type DepartmentSnapshot struct {
	Department department.Department `json:"department"`
	Employees  []employee.Employee   `json:"employees"`
}

func (s DepartmentSnapshot) EmployeeIDs() []int64 {
	return employeeIDs(s.Employees)
}

func employeeIDs(in []employee.Employee) []int64 {
	ids := make([]int64, 0, len(in))
	for _, e := range in {
		ids = append(ids, e.ID)
	}
	return ids
}
