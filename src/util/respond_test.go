package util

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondOK(rec, map[string]string{"k": "v"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, map[string]interface{}{"k": "v"}, body["data"])
	assert.NotContains(t, body, "message")
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, 404, "Transaction not found")

	assert.Equal(t, 404, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Transaction not found", body["message"])
	assert.NotContains(t, body, "data")
}

func TestRespondMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMessage(rec, "Subscription cancelled")

	assert.Equal(t, 200, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Subscription cancelled", body["message"])
}
