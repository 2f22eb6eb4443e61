package treatment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/dental-api/internal/handler"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/service/treatment"
)

type Handler struct {
	service treatment.TreatmentServicer
}

func NewHandler(service treatment.TreatmentServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the treatment catalog endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	treatments := r.Group("/treatments")
	{
		treatments.POST("", h.CreateTreatment)
		treatments.GET("", h.ListTreatments)
		treatments.GET("/:id", h.GetTreatment)
		treatments.PUT("/:id", h.UpdateTreatment)
		treatments.DELETE("/:id", h.DeactivateTreatment)
	}
}

// RegisterRecordRoutes wires the performed-procedure endpoints, guarded
// separately since only clinical staff write records.
func (h *Handler) RegisterRecordRoutes(r *gin.RouterGroup) {
	records := r.Group("/treatment-records")
	{
		records.POST("", h.RecordTreatment)
		records.GET("/:id", h.GetTreatmentRecord)
	}
}

func (h *Handler) CreateTreatment(c *gin.Context) {
	var req model.CreateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	t, err := h.service.CreateTreatment(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(t))
}

func (h *Handler) GetTreatment(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid treatment ID"))
		return
	}

	t, err := h.service.GetTreatment(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}

func (h *Handler) ListTreatments(c *gin.Context) {
	treatments, err := h.service.ListTreatments(c.Request.Context(), c.Query("active") != "false")
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(treatments))
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid treatment ID"))
		return
	}

	var req model.UpdateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	t, err := h.service.UpdateTreatment(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(t))
}

func (h *Handler) DeactivateTreatment(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid treatment ID"))
		return
	}

	if err := h.service.DeactivateTreatment(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "treatment deactivated"}))
}

func (h *Handler) RecordTreatment(c *gin.Context) {
	var req model.CreateTreatmentRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	rec, err := h.service.RecordTreatment(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(rec))
}

func (h *Handler) GetTreatmentRecord(c *gin.Context) {
	id, ok := handler.IDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid treatment record ID"))
		return
	}

	rec, err := h.service.GetTreatmentRecord(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(rec))
}
