package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/staffsync/modules/company/services"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"explicit", withCode(exitUsage, errors.New("bad flag")), exitUsage},
		{"invalid target", &services.InvalidTargetStateError{Kind: services.KindEmployee}, exitUsage},
		{"not found", &services.NotFoundError{Kind: services.KindDepartment, ID: 999}, exitNotFound},
		{"missing reference", fmt.Errorf("reconcile: %w", &services.MissingReferenceError{Kind: services.KindProject, IDs: []int64{9}}), exitMissingReference},
		{"orphaned", &services.OrphanedEmployeesError{DepartmentID: 2, EmployeeIDs: []int64{4}}, exitOrphaned},
		{"other", errors.New("connection reset"), exitInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}

func TestWithCode_Nil(t *testing.T) {
	require.NoError(t, withCode(exitUsage, nil))
}
