package exports_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jacksonlee411/staffsync/modules/company/infrastructure/persistence"
	"github.com/jacksonlee411/staffsync/modules/company/presentation/exports"
	"github.com/jacksonlee411/staffsync/modules/company/services"
	"github.com/jacksonlee411/staffsync/pkg/itf"
)

func TestWriteRoster(t *testing.T) {
	env := itf.Setup(t)
	roster, err := services.NewQueryService(persistence.NewQueryRepository()).Roster(env.Ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exports.WriteRoster(env.Ctx, &buf, roster))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{
		exports.SheetDepartments, exports.SheetEmployees, exports.SheetProjects, exports.SheetAssignments,
	}, f.GetSheetList())

	departments, err := f.GetRows(exports.SheetDepartments)
	require.NoError(t, err)
	require.Len(t, departments, 5)
	require.Equal(t, []string{"1", "Engineering", "Building A", "500000", "3"}, departments[1])

	employees, err := f.GetRows(exports.SheetEmployees)
	require.NoError(t, err)
	require.Len(t, employees, 9)
	require.Equal(t, "2020-01-15", employees[1][5])

	projects, err := f.GetRows(exports.SheetProjects)
	require.NoError(t, err)
	require.Equal(t, "2024-12-31", projects[2][4])

	assignments, err := f.GetRows(exports.SheetAssignments)
	require.NoError(t, err)
	require.Len(t, assignments, 7)
}

func TestRosterSources_EmptyRoster(t *testing.T) {
	sources := exports.RosterSources(services.Roster{})
	require.Len(t, sources, 4)
	for _, src := range sources {
		rows, err := src.Rows(context.Background())
		require.NoError(t, err)
		require.NotEmpty(t, src.SheetName())
		require.Empty(t, rows)
	}
}
