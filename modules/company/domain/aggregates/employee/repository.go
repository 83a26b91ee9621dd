package employee

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetForUpdate(ctx context.Context, id int64) (Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Employee, error)
	// Save overwrites the scalar fields and the department reference and
	// replaces the employee's project edges with ProjectIDs.
	Save(ctx context.Context, e Employee) error
}
