package model

// DashboardStats is the aggregate snapshot behind the landing screen.
// Role-specific figures are filled only for the roles that see them.
type DashboardStats struct {
	TotalPatients        int     `json:"total_patients"`
	TodaysAppointments   int     `json:"todays_appointments"`
	PendingAppointments  int     `json:"pending_appointments"`
	TotalTreatments      int     `json:"total_treatments"`
	OutstandingInvoices  int     `json:"outstanding_invoices,omitempty"`
	OutstandingBalance   float64 `json:"outstanding_balance,omitempty"`
	PatientsSeenToday    int     `json:"patients_seen_today,omitempty"`
	PendingTreatments    int     `json:"pending_treatments,omitempty"`
	TreatmentRecordCount int     `json:"treatment_record_count,omitempty"`
}
