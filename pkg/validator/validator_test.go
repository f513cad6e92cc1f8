package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemPayload struct {
	ProductID string `validate:"required,uuid"`
	Quantity  int    `validate:"required,gte=1"`
	UnitPrice int64  `validate:"gte=0"`
}

func TestValidate_OK(t *testing.T) {
	p := addItemPayload{
		ProductID: "7b9e0a54-93c8-4a0e-b7ef-2f1f9f4d8a11",
		Quantity:  2,
		UnitPrice: 450000,
	}
	assert.NoError(t, Validate(p))
}

func TestValidate_FieldMessages(t *testing.T) {
	p := addItemPayload{ProductID: "not-a-uuid", Quantity: 0}

	err := Validate(p)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := verr.Fields()
	assert.Equal(t, "must be a valid UUID", fields["ProductID"])
	assert.Equal(t, "is required", fields["Quantity"])
	assert.Contains(t, verr.Error(), "field 'ProductID'")
}
