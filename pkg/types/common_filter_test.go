package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var productSchema = NewSchema("category", "price", "brand")

func TestBuildFilter_CombinesConditions(t *testing.T) {
	got, err := BuildFilter([]*CommonFilter{
		{Field: "category", Operator: CommonFilterOperatorEq, Values: []any{"shoes"}},
		{Field: "price", Operator: CommonFilterOperatorRange, Values: []any{100, 500}},
		{Field: "brand", Operator: CommonFilterOperatorIn, Values: []any{"a", "b"}},
	}, productSchema, QueryModeStrict)
	require.NoError(t, err)
	require.Equal(t, bson.D{
		{Key: "category", Value: "shoes"},
		{Key: "price", Value: bson.M{"$gte": 100, "$lte": 500}},
		{Key: "brand", Value: bson.M{"$in": []any{"a", "b"}}},
	}, got)
}

func TestBuildFilter_StrictDropsUnknownFields(t *testing.T) {
	got, err := BuildFilter([]*CommonFilter{
		{Field: "password", Operator: CommonFilterOperatorEq, Values: []any{"x"}},
		{Field: "brand", Operator: CommonFilterOperatorEq, Values: []any{"a"}},
	}, productSchema, QueryModeStrict)
	require.NoError(t, err)
	require.Equal(t, bson.D{{Key: "brand", Value: "a"}}, got)
}

func TestBuildFilter_ThrowRejectsUnknownFields(t *testing.T) {
	_, err := BuildFilter([]*CommonFilter{{Field: "password", Operator: CommonFilterOperatorEq, Values: []any{"x"}}}, productSchema, QueryModeThrow)
	require.True(t, errors.Is(err, ErrUnknownFilterField))
}

func TestBuildFilter_OffKeepsUnknownFields(t *testing.T) {
	got, err := BuildFilter([]*CommonFilter{{Field: "color", Operator: CommonFilterOperatorEq, Values: []any{"red"}}}, productSchema, QueryModeOff)
	require.NoError(t, err)
	require.Equal(t, bson.D{{Key: "color", Value: "red"}}, got)
}

func TestParseQueryMode(t *testing.T) {
	require.Equal(t, QueryModeStrict, ParseQueryMode(""))
	require.Equal(t, QueryModeStrict, ParseQueryMode("true"))
	require.Equal(t, QueryModeThrow, ParseQueryMode("throw"))
	require.Equal(t, QueryModeOff, ParseQueryMode("false"))
	require.Equal(t, QueryModeOff, ParseQueryMode("off"))
}

func TestBuildFilter_InvalidOperator(t *testing.T) {
	_, err := BuildFilter([]*CommonFilter{{Field: "price", Operator: "regex", Values: []any{".*"}}}, productSchema, QueryModeStrict)
	require.True(t, errors.Is(err, ErrInvalidFilter))

	_, err = BuildFilter([]*CommonFilter{{Field: "price", Operator: CommonFilterOperatorRange, Values: []any{1}}}, productSchema, QueryModeStrict)
	require.True(t, errors.Is(err, ErrInvalidFilter))
}

func TestBuildFilter_RejectsOperatorValues(t *testing.T) {
	_, err := BuildFilter([]*CommonFilter{{Field: "price", Operator: CommonFilterOperatorEq, Values: []any{map[string]any{"$gt": ""}}}}, productSchema, QueryModeStrict)
	require.True(t, errors.Is(err, ErrInvalidFilter))

	_, err = BuildFilter([]*CommonFilter{{Field: "brand", Operator: CommonFilterOperatorIn, Values: []any{[]any{"a"}}}}, productSchema, QueryModeStrict)
	require.True(t, errors.Is(err, ErrInvalidFilter))
}
