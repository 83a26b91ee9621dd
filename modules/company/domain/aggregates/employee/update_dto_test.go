package employee

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUpdateDTO_Ok(t *testing.T) {
	tests := []struct {
		name    string
		dto     UpdateDTO
		wantErr []string
	}{
		{
			name: "complete",
			dto: UpdateDTO{
				ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@company.com",
				HireDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), DepartmentID: 1, ProjectIDs: []int64{},
			},
		},
		{
			name:    "missing project set and names",
			dto:     UpdateDTO{ID: 1, Email: "x@y.z", HireDate: time.Now()},
			wantErr: []string{"FirstName", "LastName", "ProjectIDs"},
		},
		{
			name:    "zero hire date",
			dto:     UpdateDTO{ID: 1, FirstName: "A", LastName: "B", Email: "a@b.c", ProjectIDs: []int64{1}},
			wantErr: []string{"HireDate"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := tt.dto.Ok()
			if len(tt.wantErr) == 0 {
				require.True(t, ok, errs)
				return
			}
			require.False(t, ok)
			for _, field := range tt.wantErr {
				require.Contains(t, errs, field)
			}
		})
	}
}

func TestUpdateDTO_ApplyOverwritesEverything(t *testing.T) {
	current := Employee{
		ID: 1, FirstName: "John", LastName: "Doe", Email: "john.doe@company.com",
		Salary: decimal.NewFromInt(75000), DepartmentID: 1, ProjectIDs: []int64{4, 5},
	}
	dto := UpdateDTO{
		ID: 1, FirstName: " Jonathan", LastName: "Doe-Smith", Email: "j.doe@newcompany.com",
		Salary: decimal.NewFromInt(95000), HireDate: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		DepartmentID: 2, ProjectIDs: []int64{2, 1, 2},
	}
	_, ok := dto.Ok()
	require.True(t, ok)

	got := dto.Apply(current)
	require.Equal(t, "Jonathan", got.FirstName)
	require.Equal(t, "Jonathan Doe-Smith", got.FullName())
	require.Equal(t, int64(2), got.DepartmentID)
	require.Equal(t, []int64{1, 2}, got.ProjectIDs)
	require.True(t, got.Salary.Equal(decimal.NewFromInt(95000)))
	require.Equal(t, int64(1), got.ID)
}
