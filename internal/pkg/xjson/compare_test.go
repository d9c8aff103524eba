package xjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualText(t *testing.T) {
	require.True(t, EqualText(`{"a":1,"b":[1,2]}`, `{ "b": [1, 2], "a": 1 }`))
	require.True(t, EqualText("", ""))
	require.False(t, EqualText(`{"a":1}`, `{"a":2}`))
	require.False(t, EqualText(`{"a":1}`, ""))
	require.False(t, EqualText(`{"a":`, `{"a":1}`))
}

func TestEqualStructs(t *testing.T) {
	type payload struct {
		Name string
		Raw  json.RawMessage
	}

	require.True(t, Equal(
		payload{Name: "x", Raw: json.RawMessage(`{"k": true}`)},
		payload{Name: "x", Raw: json.RawMessage(`{"k":true}`)},
	))
	require.False(t, Equal(
		payload{Name: "x", Raw: json.RawMessage(`{"k": true}`)},
		payload{Name: "y", Raw: json.RawMessage(`{"k": true}`)},
	))
}

func TestDiff(t *testing.T) {
	require.Empty(t, Diff(`[1, 2]`, `[1,2]`))
	require.NotEmpty(t, Diff(`[1, 2]`, `[2, 1]`))
	require.Contains(t, Diff(`{`, `{}`), "left:")
}
