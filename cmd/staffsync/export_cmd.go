package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company/presentation/exports"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export departments, employees, projects and assignments to an xlsx workbook",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return withCode(exitUsage, fmt.Errorf("--out is required"))
			}

			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			roster, err := a.services.Queries.Roster(a.ctx)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := exports.WriteRoster(a.ctx, &buf, roster); err != nil {
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("mkdir %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			return writeResult(cmd.OutOrStdout(), opts, map[string]string{
				"file":        out,
				"departments": fmt.Sprint(len(roster.Departments)),
				"employees":   fmt.Sprint(len(roster.Employees)),
				"projects":    fmt.Sprint(len(roster.Projects)),
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "roster.xlsx", "Output workbook path")
	return cmd
}
