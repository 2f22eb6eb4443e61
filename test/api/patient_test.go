package api_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patientSeq int64

func createTestPatient(t *testing.T, firstName string) int64 {
	t.Helper()

	n := atomic.AddInt64(&patientSeq, 1)
	resp := makeRequest("POST", "/patients", map[string]interface{}{
		"first_name":    firstName,
		"last_name":     fmt.Sprintf("Tester%d", n),
		"date_of_birth": "1985-04-12",
		"gender":        "female",
		"email":         fmt.Sprintf("patient%d@example.com", n),
		"phone":         "(555) 010-0101",
	}, adminToken)
	require.True(t, resp.IsSuccess(), resp.Message)

	id := resp.GetID("id")
	require.NotZero(t, id)
	return id
}

func TestPatientFlow(t *testing.T) {
	id := createTestPatient(t, "Rosa")

	getResp := makeRequest("GET", fmt.Sprintf("/patients/%d", id), nil, receptionistToken)
	require.True(t, getResp.IsSuccess())
	assert.Equal(t, "Rosa", getResp.GetString("first_name"))
	assert.Equal(t, "1985-04-12", getResp.GetString("date_of_birth"))

	update := map[string]interface{}{
		"first_name": "Rosa",
		"last_name":  getResp.GetString("last_name"),
		"phone":      "(555) 222-3333",
	}
	updResp := makeRequest("PUT", fmt.Sprintf("/patients/%d", id), update, receptionistToken)
	require.True(t, updResp.IsSuccess())
	assert.Equal(t, "(555) 222-3333", updResp.GetString("phone"))

	delResp := makeRequest("DELETE", fmt.Sprintf("/patients/%d", id), nil, adminToken)
	require.True(t, delResp.IsSuccess())

	// Deactivated patients stay readable for history.
	getResp = makeRequest("GET", fmt.Sprintf("/patients/%d", id), nil, adminToken)
	assert.Equal(t, http.StatusOK, getResp.Code)
}

func TestPatientValidation(t *testing.T) {
	resp := makeRequest("POST", "/patients", map[string]interface{}{
		"first_name": "NoLastName",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = makeRequest("POST", "/patients", map[string]interface{}{
		"first_name":    "Bad",
		"last_name":     "Birthday",
		"date_of_birth": "12/04/1985",
	}, adminToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = makeRequest("GET", "/patients/999999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
