package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	assert.Equal(t, &Meta{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, NewMeta(2, 10, 21))
	assert.Equal(t, 0, NewMeta(1, 10, 0).TotalPages)
}

func TestSuccess_KeepsEmptySlice(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, "ok", []int{})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["data"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestConflict(t *testing.T) {
	rec := httptest.NewRecorder()
	Conflict(rec, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Conflict"`)
}
