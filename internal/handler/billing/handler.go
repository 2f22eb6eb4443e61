package billing

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/dental-api/internal/email"
	"github.com/avasquez/dental-api/internal/handler"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/pdf"
	"github.com/avasquez/dental-api/internal/service/billing"
	"github.com/avasquez/dental-api/internal/service/patient"
)

type Handler struct {
	service  billing.BillingServicer
	patients patient.PatientServicer
	renderer *pdf.InvoiceRenderer
	mailer   email.Service
}

func NewHandler(service billing.BillingServicer, patients patient.PatientServicer, renderer *pdf.InvoiceRenderer, mailer email.Service) *Handler {
	if mailer == nil {
		mailer = email.NewNoopService()
	}
	return &Handler{
		service:  service,
		patients: patients,
		renderer: renderer,
		mailer:   mailer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	invoices := r.Group("/invoices")
	{
		invoices.POST("", h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.PATCH("/:id/status", h.UpdateStatus)
		invoices.GET("/:id/pdf", h.InvoicePDF)
		invoices.POST("/:id/send", h.EmailInvoice)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.GET("/:id/payments", h.ListPayments)
		invoices.POST("/overdue-sweep", h.SweepOverdue)
	}
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	inv, items, err := h.service.CreateInvoice(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"invoice": inv,
		"items":   items,
	}))
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	inv, items, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"invoice": inv,
		"items":   items,
	}))
}

func (h *Handler) ListInvoices(c *gin.Context) {
	filters := &model.InvoiceFilters{
		Status: model.InvoiceStatus(c.Query("status")),
	}
	if id, ok := queryID(c, "patient_id"); ok {
		filters.PatientID = id
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(invoices))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	inv, err := h.service.UpdateInvoiceStatus(c.Request.Context(), id, model.InvoiceStatus(req.Status))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(inv))
}

func (h *Handler) InvoicePDF(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	inv, items, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	p, err := h.patients.GetPatient(c.Request.Context(), inv.PatientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	doc, err := h.renderer.Render(inv, items, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// EmailInvoice renders the invoice PDF and mails it to the patient.
func (h *Handler) EmailInvoice(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	inv, items, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	p, err := h.patients.GetPatient(c.Request.Context(), inv.PatientID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	if p.Email == nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("patient has no email address"))
		return
	}

	doc, err := h.renderer.Render(inv, items, p)
	if err != nil {
		handler.Error(c, err)
		return
	}
	if err := h.mailer.SendInvoice(c.Request.Context(), *p.Email, p.FullName(), inv.InvoiceNumber, doc); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"message": fmt.Sprintf("invoice %s sent to %s", inv.InvoiceNumber, *p.Email),
	}))
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	var req model.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, inv, err := h.service.RecordPayment(c.Request.Context(), id, &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{
		"payment": p,
		"invoice": inv,
	}))
}

func (h *Handler) ListPayments(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid invoice ID"))
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(payments))
}

func (h *Handler) SweepOverdue(c *gin.Context) {
	count, err := h.service.SweepOverdue(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"marked_overdue": count}))
}

func queryID(c *gin.Context, name string) (int64, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false
	}
	var id int64
	if _, err := fmt.Sscanf(v, "%d", &id); err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
