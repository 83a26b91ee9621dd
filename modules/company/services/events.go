package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/wI2L/jsondiff"
)

// ReconciledEvent is published after a reconcile call commits.
// Changes is the JSON Patch that turns the previous snapshot into Snapshot;
// it is empty when the call did not change anything.
type ReconciledEvent struct {
	OperationID uuid.UUID
	Kind        Kind
	ID          int64
	Snapshot    interface{}
	Changes     jsondiff.Patch
	OccurredAt  time.Time
}

func diffSnapshots(before, after interface{}) (jsondiff.Patch, error) {
	return jsondiff.Compare(before, after)
}
