package serrors

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"required"`
	Email string  `validate:"omitempty,email"`
	IDs   []int64 `validate:"required"`
	Count int     `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	v := validator.New()

	errs, err := Validate(v, sample{Name: "ok", IDs: []int64{}})
	require.NoError(t, err)
	require.Nil(t, errs)

	errs, err = Validate(v, sample{Email: "nope", Count: -1})
	require.NoError(t, err)
	require.Equal(t, ValidationErrors{
		"Name":  "is required",
		"Email": "must be a valid email address",
		"IDs":   "is required",
		"Count": "must be greater than or equal to 0",
	}, errs)
	require.Equal(t, "Count: must be greater than or equal to 0; Email: must be a valid email address; IDs: is required; Name: is required", errs.Error())
}

func TestValidate_InvalidInput(t *testing.T) {
	_, err := Validate(validator.New(), 42)
	require.Error(t, err)
}
