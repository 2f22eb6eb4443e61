package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasquez/dental-api/internal/handler"
	"github.com/avasquez/dental-api/internal/middleware"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/service/appointment"
	"github.com/avasquez/dental-api/internal/service/dashboard"
)

type Handler struct {
	service      dashboard.DashboardServicer
	appointments appointment.AppointmentServicer
}

func NewHandler(service dashboard.DashboardServicer, appointments appointment.AppointmentServicer) *Handler {
	return &Handler{service: service, appointments: appointments}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/stats", h.Stats)
		dash.GET("/appointments/today", h.TodaysAppointments)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	role := model.UserRole(c.GetString(middleware.ContextUserRole))

	stats, err := h.service.Stats(c.Request.Context(), role)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

// TodaysAppointments is the dashboard's schedule panel: today's
// appointments with patient and dentist names.
func (h *Handler) TodaysAppointments(c *gin.Context) {
	appointments, err := h.appointments.ListAppointments(c.Request.Context(), &model.AppointmentFilters{
		Date: model.Today(),
	})
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}
