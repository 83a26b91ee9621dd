package services

import (
	"context"
	"slices"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/domain/idset"
	"github.com/jacksonlee411/staffsync/pkg/composables"
)

// memStore keeps rows the way the tables do: department membership lives on
// the employee and project links live in a single edge list.
type memStore struct {
	departments map[int64]department.Department
	employees   map[int64]employee.Employee
	projects    map[int64]project.Project
	edges       map[[2]int64]struct{}

	saves    int
	failSave error
	// beforeDepartmentSave runs at the start of a department Save, standing in
	// for a write another transaction commits after the department was locked.
	beforeDepartmentSave func()
}

func newMemStore() *memStore {
	s := &memStore{
		departments: map[int64]department.Department{},
		employees:   map[int64]employee.Employee{},
		projects:    map[int64]project.Project{},
		edges:       map[[2]int64]struct{}{},
	}
	s.departments[1] = department.Department{ID: 1, Name: "Engineering", Location: "Building A", Budget: decimal.NewFromInt(500000)}
	s.departments[2] = department.Department{ID: 2, Name: "Marketing", Location: "Building B", Budget: decimal.NewFromInt(200000)}
	s.departments[4] = department.Department{ID: 4, Name: "HR", Location: "Building D", Budget: decimal.NewFromInt(150000)}
	s.employees[1] = employee.Employee{ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@company.com", Salary: decimal.NewFromInt(75000), DepartmentID: 1}
	s.employees[3] = employee.Employee{ID: 3, FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@company.com", Salary: decimal.NewFromInt(65000), DepartmentID: 2}
	s.employees[4] = employee.Employee{ID: 4, FirstName: "Alice", LastName: "Williams", Email: "alice.williams@company.com", Salary: decimal.NewFromInt(60000), DepartmentID: 2}
	s.projects[1] = project.Project{ID: 1, Name: "Project Alpha", Budget: decimal.NewFromInt(100000)}
	s.projects[2] = project.Project{ID: 2, Name: "Project Beta", Budget: decimal.NewFromInt(150000)}
	s.edges[[2]int64{3, 2}] = struct{}{}
	return s
}

func (s *memStore) membersOf(departmentID int64) []int64 {
	out := []int64{}
	for _, e := range s.employees {
		if e.DepartmentID == departmentID {
			out = append(out, e.ID)
		}
	}
	slices.Sort(out)
	return out
}

func (s *memStore) projectsOf(employeeID int64) []int64 {
	out := []int64{}
	for edge := range s.edges {
		if edge[0] == employeeID {
			out = append(out, edge[1])
		}
	}
	slices.Sort(out)
	return out
}

func (s *memStore) employeesOf(projectID int64) []int64 {
	out := []int64{}
	for edge := range s.edges {
		if edge[1] == projectID {
			out = append(out, edge[0])
		}
	}
	slices.Sort(out)
	return out
}

type memDepartments struct{ s *memStore }

func (r memDepartments) GetByID(_ context.Context, id int64) (department.Department, error) {
	d, ok := r.s.departments[id]
	if !ok {
		return department.Department{}, department.ErrNotFound
	}
	d.EmployeeIDs = r.s.membersOf(id)
	return d, nil
}

func (r memDepartments) GetForUpdate(ctx context.Context, id int64) (department.Department, error) {
	return r.GetByID(ctx, id)
}

func (r memDepartments) GetByIDs(ctx context.Context, ids []int64) ([]department.Department, error) {
	out := []department.Department{}
	for _, id := range idset.Normalize(ids) {
		if d, err := r.GetByID(ctx, id); err == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memDepartments) Save(_ context.Context, d department.Department) error {
	r.s.saves++
	if r.s.failSave != nil {
		return r.s.failSave
	}
	if r.s.beforeDepartmentSave != nil {
		r.s.beforeDepartmentSave()
	}
	if _, ok := r.s.departments[d.ID]; !ok {
		return department.ErrNotFound
	}
	for _, id := range d.EmployeeIDs {
		e := r.s.employees[id]
		e.DepartmentID = d.ID
		r.s.employees[id] = e
	}
	if left := idset.Difference(r.s.membersOf(d.ID), d.EmployeeIDs); len(left) > 0 {
		return &department.MembersLeftError{DepartmentID: d.ID, EmployeeIDs: left}
	}
	d.EmployeeIDs = nil
	r.s.departments[d.ID] = d
	return nil
}

type memEmployees struct{ s *memStore }

func (r memEmployees) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	e.ProjectIDs = r.s.projectsOf(id)
	return e, nil
}

func (r memEmployees) GetForUpdate(ctx context.Context, id int64) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

func (r memEmployees) GetByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, id := range idset.Normalize(ids) {
		if e, err := r.GetByID(ctx, id); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEmployees) Save(_ context.Context, e employee.Employee) error {
	r.s.saves++
	if r.s.failSave != nil {
		return r.s.failSave
	}
	if _, ok := r.s.employees[e.ID]; !ok {
		return employee.ErrNotFound
	}
	for edge := range r.s.edges {
		if edge[0] == e.ID {
			delete(r.s.edges, edge)
		}
	}
	for _, pid := range e.ProjectIDs {
		r.s.edges[[2]int64{e.ID, pid}] = struct{}{}
	}
	e.ProjectIDs = nil
	r.s.employees[e.ID] = e
	return nil
}

type memProjects struct{ s *memStore }

func (r memProjects) GetByID(_ context.Context, id int64) (project.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	p.EmployeeIDs = r.s.employeesOf(id)
	return p, nil
}

func (r memProjects) GetForUpdate(ctx context.Context, id int64) (project.Project, error) {
	return r.GetByID(ctx, id)
}

func (r memProjects) GetByIDs(ctx context.Context, ids []int64) ([]project.Project, error) {
	out := []project.Project{}
	for _, id := range idset.Normalize(ids) {
		if p, err := r.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProjects) Save(_ context.Context, p project.Project) error {
	r.s.saves++
	if r.s.failSave != nil {
		return r.s.failSave
	}
	if _, ok := r.s.projects[p.ID]; !ok {
		return project.ErrNotFound
	}
	for edge := range r.s.edges {
		if edge[1] == p.ID {
			delete(r.s.edges, edge)
		}
	}
	for _, eid := range p.EmployeeIDs {
		r.s.edges[[2]int64{eid, p.ID}] = struct{}{}
	}
	p.EmployeeIDs = nil
	r.s.projects[p.ID] = p
	return nil
}

type stubPublisher struct {
	events []*ReconciledEvent
}

func (p *stubPublisher) Publish(args ...interface{}) {
	_ = p.PublishE(args...)
}

func (p *stubPublisher) PublishE(args ...interface{}) error {
	for _, arg := range args {
		if ev, ok := arg.(*ReconciledEvent); ok {
			p.events = append(p.events, ev)
		}
	}
	return nil
}

func (p *stubPublisher) Subscribe(interface{})   {}
func (p *stubPublisher) Unsubscribe(interface{}) {}
func (p *stubPublisher) Clear()                  {}
func (p *stubPublisher) SubscribersCount() int   { return 0 }

type unitFixture struct {
	store       *memStore
	publisher   *stubPublisher
	mock        sqlmock.Sqlmock
	ctx         context.Context
	resolver    *RelationshipResolver
	employees   *EmployeeService
	projects    *ProjectService
	departments *DepartmentService
}

func newUnitFixture(t *testing.T, opts ...DepartmentOption) *unitFixture {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	store := newMemStore()
	publisher := &stubPublisher{}
	deps, emps, projs := memDepartments{store}, memEmployees{store}, memProjects{store}
	resolver := NewRelationshipResolver(deps, emps, projs)

	return &unitFixture{
		store:       store,
		publisher:   publisher,
		mock:        mock,
		ctx:         composables.WithDB(context.Background(), sqlx.NewDb(raw, "sqlmock")),
		resolver:    resolver,
		employees:   NewEmployeeService(emps, deps, projs, resolver, publisher),
		projects:    NewProjectService(projs, emps, resolver, publisher),
		departments: NewDepartmentService(deps, emps, resolver, publisher, opts...),
	}
}

func (f *unitFixture) expectCommit() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func (f *unitFixture) expectRollback() {
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
}
