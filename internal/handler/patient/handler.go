package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/dental-api/internal/handler"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/service/billing"
	"github.com/avasquez/dental-api/internal/service/patient"
	"github.com/avasquez/dental-api/internal/service/treatment"
)

type Handler struct {
	service    patient.PatientServicer
	treatments treatment.TreatmentServicer
	billing    billing.BillingServicer
}

func NewHandler(service patient.PatientServicer, treatments treatment.TreatmentServicer, billingSvc billing.BillingServicer) *Handler {
	return &Handler{
		service:    service,
		treatments: treatments,
		billing:    billingSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeactivatePatient)

		patients.GET("/:id/treatments", h.TreatmentHistory)
	}
}

// RegisterBillingRoutes registers the patient routes that expose
// billing data. They belong on the same guarded group as /invoices.
func (h *Handler) RegisterBillingRoutes(r *gin.RouterGroup) {
	r.GET("/patients/:id/invoices", h.ListInvoices)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.CreatePatient(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) ListPatients(c *gin.Context) {
	filters := &model.PatientFilters{
		Search:     c.Query("search"),
		ActiveOnly: c.Query("active") != "false",
	}

	patients, err := h.service.ListPatients(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) DeactivatePatient(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if err := h.service.DeactivatePatient(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "patient deactivated"}))
}

func (h *Handler) TreatmentHistory(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	history, err := h.treatments.PatientHistory(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) ListInvoices(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	invoices, err := h.billing.ListInvoices(c.Request.Context(), &model.InvoiceFilters{PatientID: id})
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(invoices))
}
