package backend

import (
	"bytes"
	"encoding/json"

	"storefront-core/internal/pkg/errs"
)

// envelope keys the backend wraps list payloads in, in lookup order
var envelopeKeys = []string{"$values", "values", "Items", "items"}

// Normalize unwraps a list payload into a bare JSON array. It accepts a bare
// array, or an object carrying the array under one of the envelope keys
// (possibly nested). An empty body or null is an empty list.
func Normalize(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), nil
	}

	switch trimmed[0] {
	case '[':
		return json.RawMessage(trimmed), nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, errs.Mark(errs.Wrap(err, "decode envelope"), errs.ErrMalformedResponse)
		}
		for _, key := range envelopeKeys {
			if inner, ok := obj[key]; ok {
				return Normalize(inner)
			}
		}
		return nil, errs.Mark(errs.New("object without a list envelope"), errs.ErrMalformedResponse)
	default:
		return nil, errs.Mark(errs.Newf("unexpected payload starting with %q", trimmed[0]), errs.ErrMalformedResponse)
	}
}

func decodeList[T any](body []byte) ([]T, error) {
	raw, err := Normalize(body)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode list"), errs.ErrMalformedResponse)
	}
	return out, nil
}

// decodeObject tolerates an empty body and reports whether a value was present.
func decodeObject[T any](body []byte) (T, bool, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, false, nil
	}
	if trimmed[0] != '{' {
		return out, false, errs.Mark(errs.Newf("expected an object, got %q", trimmed[0]), errs.ErrMalformedResponse)
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, false, errs.Mark(errs.Wrap(err, "decode object"), errs.ErrMalformedResponse)
	}
	return out, true, nil
}

type messageBody struct {
	Message string `json:"message"`
	Title   string `json:"title"`
}

// serverMessage extracts {message} (or an RFC 7807 title) from an error body.
func serverMessage(body []byte) string {
	var m messageBody
	if err := json.Unmarshal(bytes.TrimSpace(body), &m); err == nil {
		if m.Message != "" {
			return m.Message
		}
		return m.Title
	}
	return ""
}
