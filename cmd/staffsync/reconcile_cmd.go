package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/department"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/employee"
	"github.com/jacksonlee411/staffsync/modules/company/domain/aggregates/project"
	"github.com/jacksonlee411/staffsync/modules/company/services"
)

func newReconcileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Make one stored entity match a desired-state document",
	}
	cmd.AddCommand(newReconcileKindCmd(opts, "employee",
		func(ctx context.Context, s *company.Services, dto *employee.UpdateDTO) (services.EmployeeSnapshot, error) {
			return s.Employees.Reconcile(ctx, dto)
		},
	))
	cmd.AddCommand(newReconcileKindCmd(opts, "project",
		func(ctx context.Context, s *company.Services, dto *project.UpdateDTO) (services.ProjectSnapshot, error) {
			return s.Projects.Reconcile(ctx, dto)
		},
	))
	cmd.AddCommand(newReconcileKindCmd(opts, "department",
		func(ctx context.Context, s *company.Services, dto *department.UpdateDTO) (services.DepartmentSnapshot, error) {
			return s.Departments.Reconcile(ctx, dto)
		},
	))
	return cmd
}

type reconcileFunc[D, S any] func(ctx context.Context, s *company.Services, dto *D) (S, error)

func newReconcileKindCmd[D, S any](opts *rootOptions, kind string, reconcile reconcileFunc[D, S]) *cobra.Command {
	var file string
	var showChanges bool

	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Reconcile a %s to the state described in --file", kind),
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dto D
			if err := readTarget(file, cmd.InOrStdin(), &dto); err != nil {
				return err
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			var event *services.ReconciledEvent
			a.bus.Subscribe(func(e *services.ReconciledEvent) {
				event = e
			})

			result, err := reconcile(a.ctx, a.services, &dto)
			if err != nil {
				if ve, ok := validationFields(err); ok && opts.format == formatText {
					_ = textWriter{currency: opts.currency}.write(cmd.ErrOrStderr(), ve)
				}
				return err
			}

			if !showChanges {
				return writeResult(cmd.OutOrStdout(), opts, result)
			}
			out := reconcileOutput{Result: result}
			if event != nil {
				out.Changes = event.Changes
			}
			return writeResult(cmd.OutOrStdout(), opts, out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Desired state as JSON or YAML (- for JSON on stdin)")
	cmd.Flags().BoolVar(&showChanges, "show-changes", false, "Also print the JSON Patch from the previous state")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func validationFields(err error) (map[string]string, bool) {
	var invalid *services.InvalidTargetStateError
	if !errors.As(err, &invalid) {
		return nil, false
	}
	return invalid.Fields, true
}
