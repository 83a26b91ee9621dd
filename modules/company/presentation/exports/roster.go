// Package exports renders company data into spreadsheet workbooks.
package exports

import (
	"context"
	"io"
	"time"

	gerrors "github.com/go-faster/errors"

	"github.com/jacksonlee411/staffsync/modules/company/services"
	"github.com/jacksonlee411/staffsync/pkg/excel"
)

const dateLayout = "2006-01-02"

const (
	SheetDepartments = "Departments"
	SheetEmployees   = "Employees"
	SheetProjects    = "Projects"
	SheetAssignments = "Assignments"
)

// RosterSources splits a roster into one data source per sheet.
func RosterSources(r services.Roster) []excel.DataSource {
	departments := make([][]interface{}, 0, len(r.Departments))
	for _, d := range r.Departments {
		departments = append(departments, []interface{}{d.ID, d.Name, d.Location, d.Budget.InexactFloat64(), len(d.EmployeeIDs)})
	}

	employees := make([][]interface{}, 0, len(r.Employees))
	assignments := [][]interface{}{}
	for _, e := range r.Employees {
		employees = append(employees, []interface{}{
			e.ID, e.FirstName, e.LastName, e.Email, e.Salary.InexactFloat64(), e.HireDate.Format(dateLayout), e.DepartmentID,
		})
		for _, projectID := range e.ProjectIDs {
			assignments = append(assignments, []interface{}{e.ID, projectID})
		}
	}

	projects := make([][]interface{}, 0, len(r.Projects))
	for _, p := range r.Projects {
		projects = append(projects, []interface{}{
			p.ID, p.Name, p.Description, p.StartDate.Format(dateLayout), formatOptionalDate(p.EndDate), p.Budget.InexactFloat64(),
		})
	}

	return []excel.DataSource{
		excel.NewSliceDataSource(SheetDepartments, []string{"ID", "Name", "Location", "Budget", "Employees"}, departments),
		excel.NewSliceDataSource(SheetEmployees, []string{"ID", "First Name", "Last Name", "Email", "Salary", "Hire Date", "Department ID"}, employees),
		excel.NewSliceDataSource(SheetProjects, []string{"ID", "Name", "Description", "Start Date", "End Date", "Budget"}, projects),
		excel.NewSliceDataSource(SheetAssignments, []string{"Employee ID", "Project ID"}, assignments),
	}
}

// WriteRoster writes the roster workbook to w.
func WriteRoster(ctx context.Context, w io.Writer, r services.Roster) error {
	exporter := excel.NewExcelExporter(excel.DefaultOptions(), excel.DefaultStyle())
	data, err := exporter.Export(ctx, RosterSources(r)...)
	if err != nil {
		return gerrors.Wrap(err, "export roster")
	}
	_, err = w.Write(data)
	return err
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
