package repair

import (
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvelopeField is the member name of the double-encoding envelope.
const DefaultEnvelopeField = "data"

// Unwrap recovers the payload of a double-encoded envelope such as
// {"data": "<escaped JSON text>"}.
//
// The envelope must be a valid JSON object whose only member is field and whose
// value is a string. Anything else leaves text untouched and reports false.
func Unwrap(text, field string) (string, bool) {
	if field == "" {
		return text, false
	}

	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, `{"`) || !strings.HasSuffix(trimmed, `"}`) {
		return text, false
	}

	if !gjson.Valid(trimmed) {
		return text, false
	}

	root := gjson.Parse(trimmed)
	if !root.IsObject() {
		return text, false
	}

	var (
		members int
		value   gjson.Result
		found   bool
	)

	root.ForEach(func(key, val gjson.Result) bool {
		members++

		if key.String() == field {
			value = val
			found = true
		}

		return true
	})

	if members != 1 || !found || value.Type != gjson.String {
		return text, false
	}

	return value.String(), true
}
