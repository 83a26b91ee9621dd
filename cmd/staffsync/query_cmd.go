package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/staffsync/modules/company/services"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a read-only reporting query",
	}

	cmd.AddCommand(newQuerySubCmd(opts, "employees-by-department <name>", "Employees of the named department", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			return q.EmployeesByDepartment(ctx, args[0])
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "total-salary <department>", "Sum of salaries in the named department", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			return q.TotalSalaryByDepartment(ctx, args[0])
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "salary-above <amount>", "Employees earning strictly more than amount", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			min, err := parseAmount(args[0])
			if err != nil {
				return nil, err
			}
			return q.EmployeesWithSalaryAbove(ctx, min)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "hired-in-year <year>", "Employees hired during the year", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, withCode(exitUsage, fmt.Errorf("invalid year %q", args[0]))
			}
			return q.EmployeesByHireYear(ctx, year)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "hired-between <start> <end>", "Employees hired strictly between two dates (YYYY-MM-DD)", 2,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			start, err := parseDate(args[0])
			if err != nil {
				return nil, err
			}
			end, err := parseDate(args[1])
			if err != nil {
				return nil, err
			}
			return q.EmployeesHiredBetween(ctx, start, end)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "top-paid <n>", "The n best paid employees", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, withCode(exitUsage, fmt.Errorf("invalid count %q", args[0]))
			}
			return q.TopPaidEmployees(ctx, n)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "highest-budget", "The department with the largest budget", 0,
		func(ctx context.Context, q *services.QueryService, _ []string) (any, error) {
			return q.DepartmentWithHighestBudget(ctx)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "avg-salary-above <amount>", "Departments whose average salary exceeds amount", 1,
		func(ctx context.Context, q *services.QueryService, args []string) (any, error) {
			min, err := parseAmount(args[0])
			if err != nil {
				return nil, err
			}
			return q.DepartmentsWithAverageSalaryAbove(ctx, min)
		}))
	cmd.AddCommand(newQuerySubCmd(opts, "roster", "Every department, employee and project", 0,
		func(ctx context.Context, q *services.QueryService, _ []string) (any, error) {
			return q.Roster(ctx)
		}))
	return cmd
}

type queryFunc func(ctx context.Context, q *services.QueryService, args []string) (any, error)

func newQuerySubCmd(opts *rootOptions, use, short string, nargs int, run queryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  exactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := run(a.ctx, a.services.Queries, args)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts, result)
		},
	}
}

func parseAmount(v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, withCode(exitUsage, fmt.Errorf("invalid amount %q: %w", v, err))
	}
	return d, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, withCode(exitUsage, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", v))
	}
	return t, nil
}
