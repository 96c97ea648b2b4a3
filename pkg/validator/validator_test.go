package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	ProductID uuid.UUID       `validate:"uuid_required"`
	Quantity  decimal.Decimal `validate:"dgt0"`
	Price     decimal.Decimal `validate:"dgte0"`
}

func TestValidateStructDecimalTags(t *testing.T) {
	ok := line{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), Price: decimal.Zero}
	assert.Empty(t, ValidateStruct(&ok))

	bad := line{ProductID: uuid.Nil, Quantity: decimal.Zero, Price: decimal.NewFromInt(-1)}
	errs := ValidateStruct(&bad)
	require.Len(t, errs, 3)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.FailedField] = e.Tag
	}
	assert.Equal(t, "uuid_required", tags["line.ProductID"])
	assert.Equal(t, "dgt0", tags["line.Quantity"])
	assert.Equal(t, "dgte0", tags["line.Price"])
}

func TestValidateStructDive(t *testing.T) {
	type cart struct {
		Lines []line `validate:"required,min=1,dive"`
	}
	errs := ValidateStruct(&cart{})
	require.Len(t, errs, 1)
	assert.Equal(t, "required", errs[0].Tag)
}
