package department

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound = errors.New("department not found")
	// ErrMembersLeft is returned by Save when employees outside EmployeeIDs still reference the department.
	ErrMembersLeft = errors.New("department still referenced by employees outside its member set")
)

// MembersLeftError names the employees that still reference a department after Save.
// It matches ErrMembersLeft with errors.Is.
type MembersLeftError struct {
	DepartmentID int64
	EmployeeIDs  []int64
}

func (e *MembersLeftError) Error() string {
	return fmt.Sprintf("%s: department %d, employees %v", ErrMembersLeft.Error(), e.DepartmentID, e.EmployeeIDs)
}

func (e *MembersLeftError) Unwrap() error {
	return ErrMembersLeft
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (Department, error)
	// GetForUpdate loads the department and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (Department, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Department, error)
	// Save overwrites the scalar fields and points every employee in EmployeeIDs at the department.
	Save(ctx context.Context, d Department) error
}
