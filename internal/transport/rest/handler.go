package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	goValidator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"clinicdesk/config"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/service"
	"clinicdesk/internal/transport/websocket"
	"clinicdesk/pkg/metrics"
	"clinicdesk/pkg/validator"
)

type Handler struct {
	services    *service.Services
	logger      *zap.Logger
	config      *config.Config
	metrics     *metrics.Collector
	gatherer    prometheus.Gatherer
	calendarHub *websocket.CalendarHub
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config, m *metrics.Collector, gatherer prometheus.Gatherer, calendarHub *websocket.CalendarHub) *Handler {
	if v, ok := binding.Validator.Engine().(*goValidator.Validate); ok {
		if err := validator.Register(v); err != nil {
			logger.Error("ошибка регистрации правил валидации", zap.Error(err))
		}
	}

	return &Handler{
		services:    services,
		logger:      logger,
		config:      config,
		metrics:     m,
		gatherer:    gatherer,
		calendarHub: calendarHub,
	}
}

var (
	frontDesk   = []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleReceptionist}
	clinicians  = []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleDoctor, domain.UserRoleResident}
	cashReaders = []domain.UserRole{domain.UserRoleAdmin, domain.UserRoleAccountant, domain.UserRoleReceptionist}
)

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	router.Use(h.metricsMiddleware())

	router.GET("/health", h.health)

	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.MetricsHandler(h.gatherer)))
	}

	api := router.Group("/api/v1")
	api.Use(h.authMiddleware())
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", h.getAppointments)
			appointments.GET("/range", h.getAppointmentRange)
			appointments.GET("/statuses", h.getAppointmentStatuses)
			appointments.GET("/:id", h.getAppointmentByID)

			desk := appointments.Group("", h.roleMiddleware(frontDesk...))
			{
				desk.POST("", h.bookAppointment)
				desk.POST("/:id/confirm", h.confirmAppointment)
				desk.POST("/:id/payment", h.registerPayment)
				desk.POST("/:id/cancel", h.cancelAppointment)
				desk.POST("/:id/no-show", h.markNoShow)
			}

			clinic := appointments.Group("", h.roleMiddleware(clinicians...))
			{
				clinic.POST("/:id/resident-intake", h.completeResidentIntake)
				clinic.POST("/:id/start", h.startConsultation)
				clinic.POST("/:id/complete", h.completeAppointment)
			}
		}

		accounting := api.Group("/accounting", h.roleMiddleware(cashReaders...))
		{
			accounting.GET("/daily", h.getDailyIncome)
			accounting.GET("/range", h.getIncomeRange)
			accounting.GET("/daily/export", h.exportDailyIncome)
			accounting.GET("/daily/archive", h.getArchivedReport)
		}
	}

	// Websocket clients authenticate with the token query parameter.
	if h.calendarHub != nil {
		router.GET("/ws/calendar", h.calendarHub.HandleWebSocket)
	}
}

// @Summary Проверка состояния
// @Tags Служебные
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.config.Name,
		"version": h.config.Version,
	})
}
