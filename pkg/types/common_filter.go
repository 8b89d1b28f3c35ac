package types

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type CommonFilterOperator string

const (
	CommonFilterOperatorEq    CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt    CommonFilterOperator = "lt"
	CommonFilterOperatorLte   CommonFilterOperator = "lte"
	CommonFilterOperatorGt    CommonFilterOperator = "gt"
	CommonFilterOperatorGte   CommonFilterOperator = "gte"
	CommonFilterOperatorRange CommonFilterOperator = "range"
	CommonFilterOperatorIn    CommonFilterOperator = "in"
)

// QueryMode controls how filter fields outside the collection schema are
// treated.
type QueryMode string

const (
	// QueryModeStrict drops unknown fields from the filter.
	QueryModeStrict QueryMode = "strict"
	// QueryModeThrow rejects the filter with ErrUnknownFilterField.
	QueryModeThrow QueryMode = "throw"
	// QueryModeOff passes unknown fields through unchanged.
	QueryModeOff QueryMode = "off"
)

// ParseQueryMode accepts the mode names plus "true"/"false". Anything else
// falls back to QueryModeStrict.
func ParseQueryMode(s string) QueryMode {
	switch QueryMode(s) {
	case QueryModeThrow:
		return QueryModeThrow
	case QueryModeOff, "false":
		return QueryModeOff
	default:
		return QueryModeStrict
	}
}

// ErrUnknownFilterField is returned in throw mode for fields outside the
// collection schema.
var ErrUnknownFilterField = errors.New("unknown filter field")

var ErrInvalidFilter = errors.New("invalid filter")

type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
}

// Schema lists the fields a collection accepts in client-built filters.
type Schema map[string]struct{}

func NewSchema(fields ...string) Schema {
	s := make(Schema, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

func (s Schema) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// Build constructs a MongoDB condition for the filter.
func (f *CommonFilter) Build() (bson.E, error) {
	if f.Field == "" || len(f.Values) == 0 {
		return bson.E{}, fmt.Errorf("%w: field and values are required", ErrInvalidFilter)
	}
	for _, v := range f.Values {
		switch v.(type) {
		case map[string]any, []any, bson.M, bson.D, bson.A:
			// operator documents must not be smuggled in as values
			return bson.E{}, fmt.Errorf("%w: %s values must be scalars", ErrInvalidFilter, f.Field)
		}
	}
	value := f.Values[0]

	switch f.Operator {
	case CommonFilterOperatorEq:
		return bson.E{Key: f.Field, Value: value}, nil
	case CommonFilterOperatorNotEq:
		return bson.E{Key: f.Field, Value: bson.M{"$ne": value}}, nil
	case CommonFilterOperatorLt:
		return bson.E{Key: f.Field, Value: bson.M{"$lt": value}}, nil
	case CommonFilterOperatorLte:
		return bson.E{Key: f.Field, Value: bson.M{"$lte": value}}, nil
	case CommonFilterOperatorGt:
		return bson.E{Key: f.Field, Value: bson.M{"$gt": value}}, nil
	case CommonFilterOperatorGte:
		return bson.E{Key: f.Field, Value: bson.M{"$gte": value}}, nil
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			return bson.E{}, fmt.Errorf("%w: range needs two values", ErrInvalidFilter)
		}
		return bson.E{Key: f.Field, Value: bson.M{"$gte": f.Values[0], "$lte": f.Values[1]}}, nil
	case CommonFilterOperatorIn:
		return bson.E{Key: f.Field, Value: bson.M{"$in": f.Values}}, nil
	default:
		return bson.E{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilter, f.Operator)
	}
}

// BuildFilter ANDs the filters together. Fields missing from schema are
// handled according to mode.
func BuildFilter(filters []*CommonFilter, schema Schema, mode QueryMode) (bson.D, error) {
	out := bson.D{}
	for _, f := range filters {
		if f == nil {
			continue
		}
		if !schema.Has(f.Field) {
			switch mode {
			case QueryModeThrow:
				return nil, fmt.Errorf("%w: %s", ErrUnknownFilterField, f.Field)
			case QueryModeOff:
			default:
				continue
			}
		}
		e, err := f.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
