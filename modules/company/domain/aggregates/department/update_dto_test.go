package department

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUpdateDTO_OkRequiresMemberSet(t *testing.T) {
	dto := UpdateDTO{ID: 2, Name: "Marketing"}
	errs, ok := dto.Ok()
	require.False(t, ok)
	require.Equal(t, "is required", errs["EmployeeIDs"])

	dto.EmployeeIDs = []int64{}
	_, ok = dto.Ok()
	require.True(t, ok)
}

func TestUpdateDTO_Apply(t *testing.T) {
	current := Department{ID: 2, Name: "Marketing", Location: "Building B", Budget: decimal.NewFromInt(200000), EmployeeIDs: []int64{3, 4}}
	dto := UpdateDTO{ID: 2, Name: "Marketing & Sales", Location: " Building B-2 ", Budget: decimal.NewFromInt(350000), EmployeeIDs: []int64{6, 3, 4, 5, 6}}
	dto.Normalize()

	got := dto.Apply(current)
	require.Equal(t, Department{
		ID:          2,
		Name:        "Marketing & Sales",
		Location:    "Building B-2",
		Budget:      decimal.NewFromInt(350000),
		EmployeeIDs: []int64{3, 4, 5, 6},
	}, got)
}
