package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company/seed"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the reference dataset (existing rows are kept)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := seed.Run(a.ctx); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			return writeResult(cmd.OutOrStdout(), opts, map[string]string{
				"departments": fmt.Sprint(len(seed.Departments())),
				"employees":   fmt.Sprint(len(seed.Employees())),
				"projects":    fmt.Sprint(len(seed.Projects())),
				"assignments": fmt.Sprint(len(seed.Assignments())),
			})
		},
	}
}
