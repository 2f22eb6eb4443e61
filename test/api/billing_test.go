package api_test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T, patientID int64, unitPrice float64) (int64, map[string]interface{}) {
	t.Helper()

	resp := makeRequest("POST", "/invoices", map[string]interface{}{
		"patient_id": patientID,
		"items": []map[string]interface{}{
			{"description": "Dental cleaning", "quantity": 1, "unit_price": unitPrice},
		},
	}, receptionistToken)
	require.True(t, resp.IsSuccess(), resp.Message)

	inv := resp.Sub("invoice")
	require.NotNil(t, inv)
	return int64(inv["id"].(float64)), inv
}

func TestInvoiceTotals(t *testing.T) {
	patientID := createTestPatient(t, "Billable")

	resp := makeRequest("POST", "/invoices", map[string]interface{}{
		"patient_id": patientID,
		"items": []map[string]interface{}{
			{"description": "Filling", "quantity": 2, "unit_price": 80.0},
			{"description": "X-ray", "unit_price": 40.0},
		},
		"discount_amount": 20.0,
	}, receptionistToken)
	require.True(t, resp.IsSuccess(), resp.Message)

	inv := resp.Sub("invoice")
	require.NotNil(t, inv)

	// subtotal 200, 10% tax, 20 discount
	assert.Equal(t, 200.0, inv["subtotal"])
	assert.Equal(t, 20.0, inv["tax_amount"])
	assert.Equal(t, 200.0, inv["total_amount"])
	assert.Equal(t, 200.0, inv["balance_due"])
	assert.Equal(t, "pending", inv["status"])
	assert.True(t, strings.HasPrefix(inv["invoice_number"].(string), "INV-"))
}

func TestPaymentLifecycle(t *testing.T) {
	patientID := createTestPatient(t, "Payer")
	invoiceID, _ := createTestInvoice(t, patientID, 100.0)

	pay := func(amount float64) TestResponse {
		return makeRequest("POST", fmt.Sprintf("/invoices/%d/payments", invoiceID), map[string]interface{}{
			"payment_amount": amount,
			"payment_method": "cash",
		}, receptionistToken)
	}

	resp := pay(40.0)
	require.True(t, resp.IsSuccess(), resp.Message)
	inv := resp.Sub("invoice")
	assert.Equal(t, "partial", inv["status"])
	assert.Equal(t, 70.0, inv["balance_due"])

	// Paying more than the remaining balance is refused.
	resp = pay(100.0)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = pay(70.0)
	require.True(t, resp.IsSuccess())
	inv = resp.Sub("invoice")
	assert.Equal(t, "paid", inv["status"])
	assert.Equal(t, 0.0, inv["balance_due"])

	// A settled invoice takes no further payments.
	resp = pay(10.0)
	assert.Equal(t, http.StatusConflict, resp.Code)

	listResp := makeRequest("GET", fmt.Sprintf("/invoices/%d/payments", invoiceID), nil, receptionistToken)
	require.True(t, listResp.IsSuccess())
	var payments []map[string]interface{}
	require.NoError(t, jsonUnmarshalData(listResp, &payments))
	assert.Len(t, payments, 2)
}

func TestPaymentUpdatesTreatmentRecord(t *testing.T) {
	patientID := createTestPatient(t, "Treated")

	tResp := makeRequest("POST", "/treatments", map[string]interface{}{
		"name":      fmt.Sprintf("Crown fitting %d", patientID),
		"category":  "restorative",
		"base_cost": 350.0,
	}, adminToken)
	require.True(t, tResp.IsSuccess(), tResp.Message)
	treatmentID := tResp.GetID("id")

	rResp := makeRequest("POST", "/treatment-records", map[string]interface{}{
		"patient_id":     patientID,
		"treatment_id":   treatmentID,
		"treatment_date": "2026-08-20",
		"actual_cost":    350.0,
	}, dentistToken)
	require.True(t, rResp.IsSuccess(), rResp.Message)
	recordID := rResp.GetID("id")
	assert.Equal(t, "pending", rResp.GetString("payment_status"))

	iResp := makeRequest("POST", "/invoices", map[string]interface{}{
		"patient_id":          patientID,
		"treatment_record_id": recordID,
		"items": []map[string]interface{}{
			{"description": "Crown fitting", "unit_price": 350.0, "treatment_record_id": recordID},
		},
	}, receptionistToken)
	require.True(t, iResp.IsSuccess(), iResp.Message)
	invoiceID := int64(iResp.Sub("invoice")["id"].(float64))
	total := iResp.Sub("invoice")["total_amount"].(float64)

	pResp := makeRequest("POST", fmt.Sprintf("/invoices/%d/payments", invoiceID), map[string]interface{}{
		"payment_amount": total,
		"payment_method": "insurance",
	}, receptionistToken)
	require.True(t, pResp.IsSuccess(), pResp.Message)

	rGet := makeRequest("GET", fmt.Sprintf("/treatment-records/%d", recordID), nil, dentistToken)
	require.True(t, rGet.IsSuccess())
	assert.Equal(t, "paid", rGet.GetString("payment_status"))
}

func TestInvoiceEmailDelivery(t *testing.T) {
	patientID := createTestPatient(t, "Mailed")
	invoiceID, inv := createTestInvoice(t, patientID, 90.0)

	resp := makeRequest("POST", fmt.Sprintf("/invoices/%d/send", invoiceID), nil, receptionistToken)
	require.True(t, resp.IsSuccess(), resp.Message)
	assert.Contains(t, resp.GetString("message"), inv["invoice_number"].(string))

	// A patient without an email address cannot be mailed an invoice.
	pResp := makeRequest("POST", "/patients", map[string]interface{}{
		"first_name": "No",
		"last_name":  "Mailbox",
	}, adminToken)
	require.True(t, pResp.IsSuccess(), pResp.Message)

	bareInvoiceID, _ := createTestInvoice(t, pResp.GetID("id"), 50.0)
	resp = makeRequest("POST", fmt.Sprintf("/invoices/%d/send", bareInvoiceID), nil, receptionistToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestInvoicePDFDownload(t *testing.T) {
	patientID := createTestPatient(t, "Printed")
	invoiceID, inv := createTestInvoice(t, patientID, 120.0)

	req, err := http.NewRequest("GET", fmt.Sprintf("%s/api/v1/invoices/%d/pdf", server.URL, invoiceID), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+receptionistToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), inv["invoice_number"].(string))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}
