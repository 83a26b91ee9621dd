package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/wI2L/jsondiff"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/services"
)

const dateLayout = "2006-01-02"

// reconcileOutput is what reconcile prints when --show-changes is set.
type reconcileOutput struct {
	Result  any            `json:"result"`
	Changes jsondiff.Patch `json:"changes"`
}

func writeResult(w io.Writer, opts *rootOptions, v any) error {
	if opts.format == formatText {
		return textWriter{currency: opts.currency}.write(w, v)
	}
	return writeJSON(w, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// textWriter renders results for humans. Amounts are shown in currency.
type textWriter struct {
	currency string
}

func (tw textWriter) amount(d decimal.Decimal) string {
	return money.NewFromFloat(d.InexactFloat64(), tw.currency).Display()
}

func (tw textWriter) write(w io.Writer, v any) error {
	var b strings.Builder
	switch v := v.(type) {
	case reconcileOutput:
		if err := tw.write(&b, v.Result); err != nil {
			return err
		}
		if len(v.Changes) == 0 {
			b.WriteString("no changes\n")
		}
		for _, op := range v.Changes {
			fmt.Fprintf(&b, "  %s %s", op.Type, op.Path)
			if op.Value != nil {
				fmt.Fprintf(&b, " = %v", op.Value)
			}
			b.WriteString("\n")
		}
	case services.EmployeeSnapshot:
		tw.writeEmployee(&b, v.Employee)
		fmt.Fprintf(&b, "  department: %d %s\n", v.Department.ID, v.Department.Name)
		for _, p := range v.Projects {
			fmt.Fprintf(&b, "  project: %d %s\n", p.ID, p.Name)
		}
	case services.ProjectSnapshot:
		tw.writeProject(&b, v.Project)
		for _, e := range v.Employees {
			fmt.Fprintf(&b, "  employee: %d %s\n", e.ID, e.FullName())
		}
	case services.DepartmentSnapshot:
		tw.writeDepartment(&b, v.Department)
		for _, e := range v.Employees {
			fmt.Fprintf(&b, "  employee: %d %s\n", e.ID, e.FullName())
		}
	case []employee.Employee:
		for _, e := range v {
			tw.writeEmployee(&b, e)
		}
	case []department.Department:
		for _, d := range v {
			tw.writeDepartment(&b, d)
		}
	case department.Department:
		tw.writeDepartment(&b, v)
	case decimal.Decimal:
		b.WriteString(tw.amount(v) + "\n")
	case services.Roster:
		fmt.Fprintf(&b, "departments: %d\nemployees: %d\nprojects: %d\n", len(v.Departments), len(v.Employees), len(v.Projects))
	case map[string]string:
		for _, k := range sortedKeys(v) {
			fmt.Fprintf(&b, "%s: %s\n", k, v[k])
		}
	default:
		fmt.Fprintf(&b, "%v\n", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (tw textWriter) writeEmployee(b *strings.Builder, e employee.Employee) {
	fmt.Fprintf(b, "employee %d: %s <%s> salary=%s hired=%s department=%d projects=%v\n",
		e.ID, e.FullName(), e.Email, tw.amount(e.Salary), e.HireDate.Format(dateLayout), e.DepartmentID, e.ProjectIDs)
}

func (tw textWriter) writeProject(b *strings.Builder, p project.Project) {
	end := "open"
	if p.EndDate != nil {
		end = p.EndDate.Format(dateLayout)
	}
	fmt.Fprintf(b, "project %d: %s start=%s end=%s budget=%s\n",
		p.ID, p.Name, p.StartDate.Format(dateLayout), end, tw.amount(p.Budget))
}

func (tw textWriter) writeDepartment(b *strings.Builder, d department.Department) {
	fmt.Fprintf(b, "department %d: %s (%s) budget=%s employees=%v\n",
		d.ID, d.Name, d.Location, tw.amount(d.Budget), d.EmployeeIDs)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
