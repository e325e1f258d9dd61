package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type priced struct {
	Price decimal.Decimal `bson:"price"`
}

func TestDecimalRoundTripsAsDecimal128(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, priced{Price: decimal.RequireFromString("1.6665")})
	require.NoError(t, err)

	value := bson.Raw(raw).Lookup("price")
	assert.Equal(t, bsontype.Decimal128, value.Type)

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, out.Price.Equal(decimal.RequireFromString("1.6665")), "got %s", out.Price)
}

func TestDecimalDecodesLegacyNumbers(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name string
		doc  bson.M
		want string
	}{
		{name: "double", doc: bson.M{"price": 12.5}, want: "12.5"},
		{name: "int32", doc: bson.M{"price": int32(80)}, want: "80"},
		{name: "int64", doc: bson.M{"price": int64(120)}, want: "120"},
		{name: "string", doc: bson.M{"price": "33.33"}, want: "33.33"},
		{name: "null", doc: bson.M{"price": nil}, want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := bson.Marshal(tc.doc)
			require.NoError(t, err)

			var out priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, out.Price.Equal(decimal.RequireFromString(tc.want)), "got %s", out.Price)
		})
	}
}

func TestDecimalRejectsUnsupportedTypes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"price": true})
	require.NoError(t, err)

	var out priced
	assert.Error(t, bson.UnmarshalWithRegistry(NewRegistry(), raw, &out))
}
