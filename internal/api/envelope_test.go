package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestEnvelopeTransformer_Success(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", map[string]string{"title": "John 3:16 (NIV)"})
	require.NoError(t, err)

	got := marshalMap(t, result)
	assert.Equal(t, float64(EnvelopeVersion), got["v"])
	assert.Equal(t, true, got["success"])
	assert.Equal(t, map[string]any{"title": "John 3:16 (NIV)"}, got["data"])
	assert.NotContains(t, got, "code")
	assert.NotContains(t, got, "message")
}

func TestEnvelopeTransformer_NilData(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "204", nil)
	require.NoError(t, err)

	got := marshalMap(t, result)
	assert.Equal(t, true, got["success"])
	assert.NotContains(t, got, "data")
}

func TestEnvelopeTransformer_APIError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "409", &APIError{
		status:  http.StatusConflict,
		Code:    "DUPLICATE_NAME",
		Message: `tag "faith" already exists`,
		Details: map[string]string{"name": "faith"},
	})
	require.NoError(t, err)

	got := marshalMap(t, result)
	assert.Equal(t, float64(EnvelopeVersion), got["v"])
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "DUPLICATE_NAME", got["code"])
	assert.Equal(t, `tag "faith" already exists`, got["message"])
	assert.Equal(t, map[string]any{"name": "faith"}, got["details"])
	assert.NotContains(t, got, "data")
}

func TestEnvelopeTransformer_PlainErrorStatus(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "500", errors.New("boom"))
	require.NoError(t, err)

	got := marshalMap(t, result)
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "INTERNAL", got["code"])
	assert.Equal(t, "boom", got["message"])
}

func TestEnvelopeTransformer_AlreadyWrapped(t *testing.T) {
	env := &Envelope{Version: EnvelopeVersion, Success: true, Data: "x"}
	result, err := EnvelopeTransformer(nil, "200", env)
	require.NoError(t, err)
	assert.Same(t, env, result)
}

func TestEnvelope_VersionFieldName(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", nil)
	require.NoError(t, err)

	got := marshalMap(t, result)
	assert.Contains(t, got, "v")
	assert.NotContains(t, got, "version")
	assert.NotContains(t, got, "Version")
}

func TestErrors_ValidationEnvelope(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/search", map[string]any{
		"translation": "KJV",
		"book":        0,
		"chapter":     1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.NotEmpty(t, env.Details)
}

func TestStatusToCode(t *testing.T) {
	tests := map[int]string{
		http.StatusBadRequest:          "VALIDATION",
		http.StatusUnprocessableEntity: "VALIDATION",
		http.StatusUnauthorized:        "UNAUTHORIZED",
		http.StatusForbidden:           "FORBIDDEN",
		http.StatusNotFound:            "NOT_FOUND",
		http.StatusConflict:            "ALREADY_EXISTS",
		http.StatusTooManyRequests:     "RATE_LIMITED",
		http.StatusBadGateway:          "PROVIDER_ERROR",
		http.StatusServiceUnavailable:  "PROVIDER_UNAVAILABLE",
		http.StatusTeapot:              "INTERNAL",
	}
	for status, want := range tests {
		assert.Equal(t, want, statusToCode(status), status)
	}
}
