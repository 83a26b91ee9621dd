package project

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (Project, error)
	GetForUpdate(ctx context.Context, id int64) (Project, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Project, error)
	// Save overwrites the scalar fields, including a nil EndDate, and
	// replaces the project's employee edges with EmployeeIDs.
	Save(ctx context.Context, p Project) error
}
