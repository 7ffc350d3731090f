//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope[D any] struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail D `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()) {
		return
	}
	if targetStruct != nil && expectedStatus < 300 {
		assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "Failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and, when expectedErrorMsg is set, that the error message contains it.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())

	var body errorEnvelope[json.RawMessage]
	assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode error response JSON: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg, "Response error message doesn't contain expected text")
	}
}

// ErrorDetail decodes the detail object that failure responses carry next to the message.
func ErrorDetail[D any](t *testing.T, w *httptest.ResponseRecorder) D {
	t.Helper()

	var body errorEnvelope[D]
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode error detail: %s", w.Body.String())
	return body.Detail
}
