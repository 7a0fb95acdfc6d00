package domain

import (
	"reflect"
	"strings"
)

// Condition is one test applied to a single document field. A document
// field that is absent is presented to the condition as the empty string.
type Condition interface {
	Matches(value interface{}) bool
}

// Query maps field names to the conditions their values must satisfy.
// A document matches a query when every condition passes.
type Query map[string]Condition

// Matches reports whether the document satisfies every condition in the query.
func (q Query) Matches(doc Document) bool {
	for field, cond := range q {
		value, exists := doc[field]
		if !exists {
			value = ""
		}
		if !cond.Matches(value) {
			return false
		}
	}
	return true
}

type equalsCondition struct {
	expected interface{}
}

func (c equalsCondition) Matches(value interface{}) bool {
	return ValuesMatch(value, c.expected)
}

// Equals matches fields whose value equals the given one.
func Equals(expected interface{}) Condition {
	return equalsCondition{expected: expected}
}

type predicateCondition struct {
	fn func(interface{}) bool
}

func (c predicateCondition) Matches(value interface{}) bool {
	return c.fn(value)
}

// Where matches fields for which the given predicate returns true.
func Where(fn func(value interface{}) bool) Condition {
	return predicateCondition{fn: fn}
}

type containsCondition struct {
	needle interface{}
}

func (c containsCondition) Matches(value interface{}) bool {
	switch v := value.(type) {
	case string:
		needle, ok := c.needle.(string)
		return ok && strings.Contains(v, needle)
	case []interface{}:
		for _, elem := range v {
			if ValuesMatch(elem, c.needle) {
				return true
			}
		}
	}
	return false
}

// Contains matches string fields containing the given substring, and
// sequence fields containing the given element.
func Contains(needle interface{}) Condition {
	return containsCondition{needle: needle}
}

// ValuesMatch compares two values for equality, handling different types
func ValuesMatch(actual, expected interface{}) bool {
	// Handle nil values
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	// Handle numeric comparison; JSON decoding turns every number into
	// a float64, so int queries still have to match.
	if actualNum, ok1 := ToFloat64(actual); ok1 {
		if expectedNum, ok2 := ToFloat64(expected); ok2 {
			return actualNum == expectedNum
		}
	}

	// Default to deep comparison for nested sequences and mappings
	return reflect.DeepEqual(actual, expected)
}

// ToFloat64 converts various numeric types to float64 for comparison
func ToFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
