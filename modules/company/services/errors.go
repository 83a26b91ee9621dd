package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksonlee411/staffsync/pkg/serrors"
)

// Kind names one of the reconciled entity kinds.
type Kind string

const (
	KindDepartment Kind = "department"
	KindEmployee   Kind = "employee"
	KindProject    Kind = "project"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeMissingReference   = "MISSING_REFERENCE"
	CodeInvalidTargetState = "INVALID_TARGET_STATE"
	CodeOrphanedEmployees  = "ORPHANED_EMPLOYEES"
)

// NotFoundError reports that the entity being reconciled does not exist.
type NotFoundError struct {
	Kind Kind
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Code() string { return CodeNotFound }

// MissingReferenceError reports requested related ids that have no matching entity.
// IDs is distinct and ascending.
type MissingReferenceError struct {
	Kind Kind
	IDs  []int64
}

func (e *MissingReferenceError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return fmt.Sprintf("missing %s references: %s", e.Kind, strings.Join(parts, ", "))
}

func (e *MissingReferenceError) Code() string { return CodeMissingReference }

// InvalidTargetStateError reports a target state that does not describe every field.
type InvalidTargetStateError struct {
	Kind   Kind
	Fields serrors.ValidationErrors
}

func (e *InvalidTargetStateError) Error() string {
	return fmt.Sprintf("invalid %s target state: %s", e.Kind, e.Fields.Error())
}

func (e *InvalidTargetStateError) Code() string { return CodeInvalidTargetState }

// OrphanedEmployeesError reports employees that a department update would leave without a department.
type OrphanedEmployeesError struct {
	DepartmentID int64
	EmployeeIDs  []int64
}

func (e *OrphanedEmployeesError) Error() string {
	return fmt.Sprintf("department %d update would leave employees %v without a department", e.DepartmentID, e.EmployeeIDs)
}

func (e *OrphanedEmployeesError) Code() string { return CodeOrphanedEmployees }

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsMissingReference(err error) bool {
	var target *MissingReferenceError
	return errors.As(err, &target)
}

func IsInvalidTargetState(err error) bool {
	var target *InvalidTargetStateError
	return errors.As(err, &target)
}

func IsOrphanedEmployees(err error) bool {
	var target *OrphanedEmployeesError
	return errors.As(err, &target)
}

// ErrorCode returns the stable code of a caller-facing error, or "" for store failures.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
