package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/staffsync/modules/company/services"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "company.db"))
	t.Setenv("LOG_LEVEL", "silent")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("ORPHAN_DEPARTMENT_ID", "0")

	_, err := runCLI(t, "seed")
	require.NoError(t, err)
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&rootOptions{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type changesOutput struct {
	Result  services.EmployeeSnapshot `json:"result"`
	Changes []map[string]any          `json:"changes"`
}

func TestCLI_ReconcileEmployeeTwice(t *testing.T) {
	dir := setupCLI(t)
	file := filepath.Join(dir, "john.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
id: 1
firstName: John
lastName: Doe
email: john.doe@company.com
salary: 75000
hireDate: 2020-01-15
departmentId: 1
projectIds: [1, 2]
`), 0o644))

	out, err := runCLI(t, "reconcile", "employee", "--file", file, "--show-changes")
	require.NoError(t, err)
	var first changesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &first))
	require.Equal(t, []int64{1, 2}, first.Result.ProjectIDs())
	require.NotEmpty(t, first.Changes)

	out, err = runCLI(t, "reconcile", "employee", "--file", file, "--show-changes")
	require.NoError(t, err)
	var second changesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	require.Equal(t, []int64{1, 2}, second.Result.ProjectIDs())
	require.Empty(t, second.Changes)
}

func TestCLI_ReconcileErrorsMapToExitCodes(t *testing.T) {
	dir := setupCLI(t)
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	unknown := write("unknown.json", `{"id": 999, "name": "Ghost", "location": "Nowhere", "budget": "1", "employeeIds": []}`)
	_, err := runCLI(t, "reconcile", "department", "--file", unknown)
	require.Equal(t, exitNotFound, exitCode(err))

	missing := write("missing.json", `{"id": 2, "name": "Marketing", "location": "Building B", "budget": "200000", "employeeIds": [3, 4, 404]}`)
	_, err = runCLI(t, "reconcile", "department", "--file", missing)
	require.Equal(t, exitMissingReference, exitCode(err))

	shrink := write("shrink.json", `{"id": 2, "name": "Marketing", "location": "Building B", "budget": "200000", "employeeIds": [3]}`)
	_, err = runCLI(t, "reconcile", "department", "--file", shrink)
	require.Equal(t, exitOrphaned, exitCode(err))

	out, err := runCLI(t, "reconcile", "department", "--file", shrink, "--orphan-department", "4")
	require.NoError(t, err)
	var got services.DepartmentSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []int64{3}, got.EmployeeIDs())

	incomplete := write("incomplete.json", `{"id": 1, "firstName": "John"}`)
	_, err = runCLI(t, "reconcile", "employee", "--file", incomplete)
	require.Equal(t, exitUsage, exitCode(err))
}

func TestCLI_QueryAndExport(t *testing.T) {
	dir := setupCLI(t)

	out, err := runCLI(t, "query", "top-paid", "1", "--format", "text")
	require.NoError(t, err)
	require.Contains(t, out, "Frank Miller")

	out, err = runCLI(t, "query", "total-salary", "Engineering", "--format", "text")
	require.NoError(t, err)
	require.Equal(t, "$250,000.00\n", out)

	_, err = runCLI(t, "query", "hired-in-year", "soon")
	require.Equal(t, exitUsage, exitCode(err))

	workbook := filepath.Join(dir, "out", "roster.xlsx")
	_, err = runCLI(t, "export", "--out", workbook)
	require.NoError(t, err)
	info, err := os.Stat(workbook)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestCLI_RejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "query", "roster", "--format", "xml")
	require.Equal(t, exitUsage, exitCode(err))

	_, err = runCLI(t, "query", "roster", "--currency", "XYZ")
	require.Equal(t, exitUsage, exitCode(err))
}

func TestRun_WritesMetricsFile(t *testing.T) {
	dir := setupCLI(t)
	metricsFile := filepath.Join(dir, "staffsync.prom")
	shrink := filepath.Join(dir, "shrink.json")
	require.NoError(t, os.WriteFile(shrink, []byte(`{"id": 2, "name": "Marketing", "location": "Building B", "budget": "200000", "employeeIds": [3]}`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"reconcile", "department", "--file", shrink, "--metrics-file", metricsFile}, &stdout, &stderr)
	require.Equal(t, exitOrphaned, code)
	require.Contains(t, stderr.String(), "without a department")

	raw, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(raw), `company_reconcile_total{kind="department",outcome="orphaned"}`)
}

func TestRun_WritesMetricsFileFromEnvWhenInputIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "metrics", "staffsync.prom")
	t.Setenv("PROMETHEUS_TEXTFILE", metricsFile)
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"id": 1,`), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"reconcile", "employee", "--file", broken}, &stdout, &stderr)
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr.String(), "decode")

	_, err := os.Stat(metricsFile)
	require.NoError(t, err)
}
