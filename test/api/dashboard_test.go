package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRoleVisibility(t *testing.T) {
	createTestPatient(t, "Counted")
	invoiceID, _ := createTestInvoice(t, createTestPatient(t, "Owing"), 90.0)
	require.NotZero(t, invoiceID)

	resp := makeRequest("GET", "/dashboard/stats", nil, receptionistToken)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotZero(t, resp.Data["total_patients"])
	assert.NotZero(t, resp.Data["outstanding_invoices"])
	assert.NotZero(t, resp.Data["outstanding_balance"])

	// Billing figures are omitted for clinical staff.
	resp = makeRequest("GET", "/dashboard/stats", nil, dentistToken)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotZero(t, resp.Data["total_patients"])
	_, hasInvoices := resp.Data["outstanding_invoices"]
	assert.False(t, hasInvoices)
	_, hasBalance := resp.Data["outstanding_balance"]
	assert.False(t, hasBalance)

	resp = makeRequest("GET", "/dashboard/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotZero(t, resp.Data["outstanding_invoices"])
}

func TestDashboardTodaysAppointments(t *testing.T) {
	patientID := createTestPatient(t, "Today")
	today := time.Now().Format("2006-01-02")
	createTestAppointment(t, patientID, today, "10:15")

	resp := makeRequest("GET", "/dashboard/appointments/today", nil, dentistToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var rows []map[string]interface{}
	require.NoError(t, jsonUnmarshalData(resp, &rows))

	found := false
	for _, row := range rows {
		if row["appointment_time"] == "10:15" && row["patient_first_name"] == "Today" {
			found = true
		}
	}
	assert.True(t, found)
}
