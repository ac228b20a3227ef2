package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"function-server/api"
)

func TestFunctionsList(t *testing.T) {
	h := NewFunctionsHandler(testRegistry(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/functions", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.FunctionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, len(resp.Functions), resp.Count)
	require.Len(t, resp.Functions, 2)
	// Registration order is preserved.
	assert.Equal(t, "crm_create_lead", resp.Functions[0].Name)
	assert.Equal(t, "get_weather", resp.Functions[1].Name)
	assert.NotEmpty(t, resp.Functions[0].Parameters)
}
