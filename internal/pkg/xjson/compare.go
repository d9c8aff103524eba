package xjson

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// Custom comparator for json.RawMessage that compares semantic equality.
var jsonRawMessageComparer = cmp.Comparer(func(x, y json.RawMessage) bool {
	if len(x) == 0 && len(y) == 0 {
		return true
	}

	if len(x) == 0 || len(y) == 0 {
		return false
	}

	var xVal, yVal any
	if err := json.Unmarshal(x, &xVal); err != nil {
		return false
	}

	if err := json.Unmarshal(y, &yVal); err != nil {
		return false
	}

	return cmp.Equal(xVal, yVal)
})

func Equal(a, b any) bool {
	return cmp.Equal(a, b, jsonRawMessageComparer)
}

// EqualText reports whether two JSON documents decode to the same value,
// ignoring whitespace and key order.
func EqualText(a, b string) bool {
	return Equal(json.RawMessage(a), json.RawMessage(b))
}

// Diff returns a human readable difference between two JSON documents.
func Diff(a, b string) string {
	var aVal, bVal any

	if err := json.Unmarshal([]byte(a), &aVal); err != nil {
		return "left: " + err.Error()
	}

	if err := json.Unmarshal([]byte(b), &bVal); err != nil {
		return "right: " + err.Error()
	}

	return cmp.Diff(aVal, bVal)
}
