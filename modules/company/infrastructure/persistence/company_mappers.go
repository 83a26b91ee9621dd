package persistence

import (
	"database/sql"
	"time"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
)

func toDomainDepartment(row departmentRow, employeeIDs []int64) department.Department {
	return department.Department{
		ID:          row.ID,
		Name:        row.Name,
		Location:    row.Location,
		Budget:      row.Budget,
		EmployeeIDs: nonNil(employeeIDs),
	}
}

func toDomainEmployee(row employeeRow, projectIDs []int64) employee.Employee {
	return employee.Employee{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		Salary:       row.Salary,
		HireDate:     row.HireDate.UTC(),
		DepartmentID: row.DepartmentID,
		ProjectIDs:   nonNil(projectIDs),
	}
}

func toDomainProject(row projectRow, employeeIDs []int64) project.Project {
	p := project.Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		StartDate:   row.StartDate.UTC(),
		Budget:      row.Budget,
		EmployeeIDs: nonNil(employeeIDs),
	}
	if row.EndDate.Valid {
		end := row.EndDate.Time.UTC()
		p.EndDate = &end
	}
	return p
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
