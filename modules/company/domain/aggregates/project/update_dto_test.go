package project

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUpdateDTO_Ok(t *testing.T) {
	dto := UpdateDTO{ID: 1, Name: "  Alpha ", StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), EmployeeIDs: []int64{}}
	errs, ok := dto.Ok()
	require.True(t, ok, errs)
	require.Equal(t, "Alpha", dto.Name)

	missing := UpdateDTO{ID: 1, Name: "Alpha", StartDate: time.Now()}
	errs, ok = missing.Ok()
	require.False(t, ok)
	require.Contains(t, errs, "EmployeeIDs")
}

func TestUpdateDTO_ApplyClearsEndDate(t *testing.T) {
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	current := Project{ID: 1, Name: "Alpha", EndDate: &end, EmployeeIDs: []int64{9}}

	dto := UpdateDTO{
		ID:          1,
		Name:        "Alpha v2",
		StartDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600)),
		Budget:      decimal.NewFromInt(150000),
		EmployeeIDs: []int64{3, 1, 3},
	}
	got := dto.Apply(current)

	require.Nil(t, got.EndDate)
	require.Equal(t, []int64{1, 3}, got.EmployeeIDs)
	require.Equal(t, time.UTC, got.StartDate.Location())
	require.True(t, got.Budget.Equal(decimal.NewFromInt(150000)))
}

func TestUpdateDTO_ApplyCopiesEndDate(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	dto := UpdateDTO{ID: 1, Name: "Alpha", StartDate: end.AddDate(0, -6, 0), EndDate: &end, EmployeeIDs: []int64{}}
	got := dto.Apply(Project{ID: 1})

	require.NotNil(t, got.EndDate)
	require.True(t, got.EndDate.Equal(end))

	want := end
	*dto.EndDate = end.AddDate(1, 0, 0)
	require.True(t, got.EndDate.Equal(want))
}

func TestUpdateDTO_DecodeExplicitNullEndDate(t *testing.T) {
	var fromJSON UpdateDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Alpha","startDate":"2023-01-01T00:00:00Z","endDate":null,"budget":"150000.50","employeeIds":[]}`), &fromJSON))
	require.Nil(t, fromJSON.EndDate)
	require.NotNil(t, fromJSON.EmployeeIDs)
	require.Equal(t, "150000.5", fromJSON.Budget.String())

	var fromYAML UpdateDTO
	src := "id: 1\nname: Alpha\nstartDate: 2023-01-01T00:00:00Z\nendDate: null\nbudget: 150000\nemployeeIds: [2, 1]\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &fromYAML))
	require.Nil(t, fromYAML.EndDate)
	require.Equal(t, []int64{2, 1}, fromYAML.EmployeeIDs)
	require.True(t, fromYAML.Budget.Equal(decimal.NewFromInt(150000)))
	require.True(t, fromYAML.StartDate.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}
