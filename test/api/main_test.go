package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/avasquez/dental-api/internal/email"
	"github.com/avasquez/dental-api/internal/handler"
	appointmentHandler "github.com/avasquez/dental-api/internal/handler/appointment"
	authHandler "github.com/avasquez/dental-api/internal/handler/auth"
	billingHandler "github.com/avasquez/dental-api/internal/handler/billing"
	dashboardHandler "github.com/avasquez/dental-api/internal/handler/dashboard"
	healthHandler "github.com/avasquez/dental-api/internal/handler/health"
	patientHandler "github.com/avasquez/dental-api/internal/handler/patient"
	treatmentHandler "github.com/avasquez/dental-api/internal/handler/treatment"
	userHandler "github.com/avasquez/dental-api/internal/handler/user"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/pdf"
	"github.com/avasquez/dental-api/internal/repository/sqlite"
	"github.com/avasquez/dental-api/internal/router"
	appointmentService "github.com/avasquez/dental-api/internal/service/appointment"
	authService "github.com/avasquez/dental-api/internal/service/auth"
	billingService "github.com/avasquez/dental-api/internal/service/billing"
	dashboardService "github.com/avasquez/dental-api/internal/service/dashboard"
	patientService "github.com/avasquez/dental-api/internal/service/patient"
	treatmentService "github.com/avasquez/dental-api/internal/service/treatment"
	userService "github.com/avasquez/dental-api/internal/service/user"
	"github.com/avasquez/dental-api/pkg/auth"
	"github.com/avasquez/dental-api/pkg/security"
)

var (
	server *httptest.Server

	adminToken        string
	receptionistToken string
	dentistToken      string
)

// APIResponse matches the response envelope.
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TestResponse wraps a decoded response for assertions.
type TestResponse struct {
	Code    int
	Status  string
	Message string
	Data    map[string]interface{}
	DataRaw json.RawMessage
	RawBody []byte
}

// jsonUnmarshalData decodes the data payload into v, for responses whose
// data is an array rather than an object.
func jsonUnmarshalData(r TestResponse, v interface{}) error {
	return json.Unmarshal(r.DataRaw, v)
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if r.Data == nil {
		return ""
	}
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

// GetID reads a numeric field out of the data map. JSON numbers decode
// as float64.
func (r TestResponse) GetID(key string) int64 {
	if r.Data == nil {
		return 0
	}
	if v, ok := r.Data[key].(float64); ok {
		return int64(v)
	}
	return 0
}

// Sub returns a nested object from the data map, for envelopes like
// {"invoice": {...}, "items": [...]}.
func (r TestResponse) Sub(key string) map[string]interface{} {
	if r.Data == nil {
		return nil
	}
	if v, ok := r.Data[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

func TestMain(m *testing.M) {
	if err := model.RegisterValidators(); err != nil {
		fmt.Printf("failed to register validators: %v\n", err)
		os.Exit(1)
	}

	db, err := sqlite.NewDB(sqlite.Config{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := sqlite.RunMigrations(db.DB); err != nil {
		fmt.Printf("failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	base := sqlite.NewBaseRepository(db)
	userRepo := sqlite.NewUserRepository(base)
	patientRepo := sqlite.NewPatientRepository(base)
	appointmentRepo := sqlite.NewAppointmentRepository(base)
	treatmentRepo := sqlite.NewTreatmentRepository(base)
	recordRepo := sqlite.NewTreatmentRecordRepository(base)
	invoiceRepo := sqlite.NewInvoiceRepository(base)
	paymentRepo := sqlite.NewPaymentRepository(base)
	dashboardRepo := sqlite.NewDashboardRepository(base)

	hasher := security.NewBcryptHasher(4)
	tokens := auth.NewJWTService(auth.Config{
		Secret:        "api-test-secret",
		RefreshSecret: "api-test-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	userSvc := userService.NewService(userRepo, hasher)
	authSvc := authService.NewService(userRepo, hasher, tokens)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, email.NewNoopService())
	treatmentSvc := treatmentService.NewService(treatmentRepo, recordRepo, patientRepo)
	billingSvc := billingService.NewService(billingService.Config{TaxRate: 0.1}, invoiceRepo, paymentRepo, recordRepo, patientRepo, email.NewNoopService())
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	renderer := pdf.NewInvoiceRenderer(pdf.ClinicInfo{Name: "Test Clinic"})

	if _, err := userSvc.EnsureDefaultAdmin(context.Background(), "admin", "admin123"); err != nil {
		fmt.Printf("failed to bootstrap admin: %v\n", err)
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokens)
	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc),
		userHandler.NewHandler(userSvc),
		patientHandler.NewHandler(patientSvc, treatmentSvc, billingSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		treatmentHandler.NewHandler(treatmentSvc),
		billingHandler.NewHandler(billingSvc, patientSvc, renderer, email.NewNoopService()),
		dashboardHandler.NewHandler(dashboardSvc, appointmentSvc),
		healthHandler.NewHandler(db),
		handler.NewHandler(),
		router.Config{
			ReleaseMode:   true,
			MetricsPrefix: "dental_api_test",
			CORSConfig:    middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	server = httptest.NewServer(r.Engine())
	defer server.Close()

	setupAuth()

	os.Exit(m.Run())
}

func setupAuth() {
	adminToken = login("admin", "admin123")

	createStaff("frontdesk", "frontdesk1", "receptionist")
	receptionistToken = login("frontdesk", "frontdesk1")

	createStaff("drsmith", "drsmith12", "dentist")
	dentistToken = login("drsmith", "drsmith12")
}

func login(username, password string) string {
	resp := makeRequest("POST", "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	if !resp.IsSuccess() {
		fmt.Printf("failed to login as %s: %s\n", username, resp.Message)
		os.Exit(1)
	}
	token := resp.GetString("access_token")
	if token == "" {
		fmt.Printf("no access token for %s\n", username)
		os.Exit(1)
	}
	return token
}

func createStaff(username, password, role string) {
	resp := makeRequest("POST", "/users", map[string]string{
		"username":   username,
		"password":   password,
		"first_name": "Test",
		"last_name":  "User",
		"email":      username + "@example.com",
		"role":       role,
	}, adminToken)
	if !resp.IsSuccess() {
		fmt.Printf("failed to create %s user: %s\n", role, resp.Message)
		os.Exit(1)
	}
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return TestResponse{Status: "error", Message: err.Error()}
		}
	}

	req, err := http.NewRequest(method, server.URL+"/api/v1"+path, &buf)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	defer response.Body.Close()

	var apiResp APIResponse
	raw := new(bytes.Buffer)
	if _, err := raw.ReadFrom(response.Body); err != nil {
		return TestResponse{Code: response.StatusCode, Status: "error", Message: err.Error()}
	}
	if err := json.Unmarshal(raw.Bytes(), &apiResp); err != nil {
		return TestResponse{
			Code:    response.StatusCode,
			Status:  "error",
			Message: fmt.Sprintf("failed to parse response: %v", err),
			RawBody: raw.Bytes(),
		}
	}

	testResp := TestResponse{
		Code:    response.StatusCode,
		Status:  apiResp.Status,
		Message: apiResp.Message,
		DataRaw: apiResp.Data,
		RawBody: raw.Bytes(),
	}
	if len(apiResp.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(apiResp.Data, &data); err == nil {
			testResp.Data = data
		}
	}
	return testResp
}
