package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/service"
)

// @Summary Записать пациента на прием
// @Description Создает запись к врачу, если у врача нет пересекающейся записи
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} successResponseBody{data=appointmentView} "Созданная запись"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или время в прошлом"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Время занято"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) bookAppointment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		bindErrorResponse(c, err)
		return
	}

	appointment, err := h.services.Appointment.Book(c.Request.Context(), actor, req)
	if err != nil {
		h.respondServiceError(c, err, "ошибка создания записи на прием")
		return
	}

	createdResponse(c, newAppointmentView(appointment))
}

// @Summary Получить запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} successResponseBody{data=appointmentView} "Данные записи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения записи")
		return
	}

	if actor.Role == domain.UserRoleDoctor && appointment.DoctorID != actor.ID {
		h.logger.Warn("попытка несанкционированного доступа",
			zap.Int64("user_id", actor.ID),
			zap.Int64("appointment_id", id))
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, newAppointmentView(appointment))
}

// @Summary Получить список записей
// @Description Возвращает записи с фильтрацией и пагинацией. Врачи видят только свои записи.
// @Tags Записи
// @Produce json
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Param patient_id query int false "ID пациента"
// @Param doctor_id query int false "ID врача"
// @Param status query string false "Статус записи"
// @Param start_date query string false "Начальная дата (YYYY-MM-DD, часовой пояс клиники)"
// @Param end_date query string false "Конечная дата (YYYY-MM-DD, часовой пояс клиники)"
// @Success 200 {object} paginatedResponse "Список записей с пагинацией"
// @Failure 400 {object} errorResponseBody "Неверные параметры"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AppointmentFilter{
		Limit:  limit,
		Offset: offset,
	}

	if patientIDStr := c.Query("patient_id"); patientIDStr != "" {
		patientID, err := strconv.ParseInt(patientIDStr, 10, 64)
		if err == nil {
			filter.PatientID = &patientID
		}
	}

	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err == nil {
			filter.DoctorID = &doctorID
		}
	}

	if actor.Role == domain.UserRoleDoctor {
		filter.DoctorID = &actor.ID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		if !status.IsValid() {
			badRequestResponse(c, "неизвестный статус записи")
			return
		}
		filter.Status = &status
	}

	loc := h.config.Clinic.Location

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		start, _, err := service.DayRange(startDateStr, loc)
		if err != nil {
			h.respondServiceError(c, err, "неверная начальная дата")
			return
		}
		filter.StartDate = &start
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		_, end, err := service.DayRange(endDateStr, loc)
		if err != nil {
			h.respondServiceError(c, err, "неверная конечная дата")
			return
		}
		filter.EndDate = &end
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения списка записей")
		return
	}

	page := offset/limit + 1
	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Записи для календаря
// @Description Возвращает записи, пересекающиеся с интервалом [start, end)
// @Tags Записи
// @Produce json
// @Param start query string true "Начало интервала (RFC3339)"
// @Param end query string true "Конец интервала (RFC3339)"
// @Param doctor_id query int false "ID врача"
// @Success 200 {object} successResponseBody{data=[]domain.Appointment} "Записи"
// @Failure 400 {object} errorResponseBody "Неверный интервал"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments/range [get]
func (h *Handler) getAppointmentRange(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		badRequestResponse(c, "неверный формат начала интервала, ожидается RFC3339")
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		badRequestResponse(c, "неверный формат конца интервала, ожидается RFC3339")
		return
	}

	var doctorID *int64
	if doctorIDStr := c.Query("doctor_id"); doctorIDStr != "" {
		id, err := strconv.ParseInt(doctorIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID врача")
			return
		}
		doctorID = &id
	}

	if actor.Role == domain.UserRoleDoctor {
		doctorID = &actor.ID
	}

	appointments, err := h.services.Appointment.ListRange(c.Request.Context(), start, end, doctorID)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения записей для календаря")
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary Справочник статусов
// @Description Подписи и цвета статусов для календаря
// @Tags Записи
// @Produce json
// @Success 200 {object} successResponseBody{data=[]domain.StatusPresentation}
// @Security ApiKeyAuth
// @Router /appointments/statuses [get]
func (h *Handler) getAppointmentStatuses(c *gin.Context) {
	successResponse(c, http.StatusOK, domain.StatusPresentations())
}

// @Summary Подтвердить запись
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.ConfirmAppointmentDTO false "Способ подтверждения (по умолчанию phone)"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 400 {object} errorResponseBody "Неизвестный способ подтверждения"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/confirm [post]
func (h *Handler) confirmAppointment(c *gin.Context) {
	var req domain.ConfirmAppointmentDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindErrorResponse(c, err)
			return
		}
	}

	h.applyTransition(c, "ошибка подтверждения записи", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.Confirm(c.Request.Context(), id, actor, req)
	})
}

// @Summary Зарегистрировать оплату
// @Description Фиксирует квитанцию и сумму, пациент отмечается как прибывший
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.RegisterPaymentDTO true "Квитанция и сумма"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 400 {object} errorResponseBody "Неверная квитанция или сумма"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/payment [post]
func (h *Handler) registerPayment(c *gin.Context) {
	var req domain.RegisterPaymentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	h.applyTransition(c, "ошибка регистрации оплаты", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.RegisterPayment(c.Request.Context(), id, actor, req)
	})
}

// @Summary Завершить осмотр резидентом
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/resident-intake [post]
func (h *Handler) completeResidentIntake(c *gin.Context) {
	h.applyTransition(c, "ошибка завершения осмотра резидентом", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.CompleteResidentIntake(c.Request.Context(), id, actor)
	})
}

// @Summary Начать консультацию
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/start [post]
func (h *Handler) startConsultation(c *gin.Context) {
	h.applyTransition(c, "ошибка начала консультации", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.StartConsultation(c.Request.Context(), id, actor)
	})
}

// @Summary Завершить консультацию
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/complete [post]
func (h *Handler) completeAppointment(c *gin.Context) {
	h.applyTransition(c, "ошибка завершения консультации", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.Complete(c.Request.Context(), id, actor)
	})
}

// @Summary Отменить запись
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.CancelAppointmentDTO true "Причина отмены"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 400 {object} errorResponseBody "Не указана причина"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/cancel [post]
func (h *Handler) cancelAppointment(c *gin.Context) {
	var req domain.CancelAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErrorResponse(c, err)
		return
	}

	h.applyTransition(c, "ошибка отмены записи", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.Cancel(c.Request.Context(), id, actor, req)
	})
}

// @Summary Отметить неявку
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} successResponseBody{data=appointmentView}
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 422 {object} errorResponseBody "Недопустимый переход статуса"
// @Security ApiKeyAuth
// @Router /appointments/{id}/no-show [post]
func (h *Handler) markNoShow(c *gin.Context) {
	h.applyTransition(c, "ошибка отметки неявки", func(actor domain.Actor, id int64) (*domain.Appointment, error) {
		return h.services.Appointment.MarkNoShow(c.Request.Context(), id, actor)
	})
}

func (h *Handler) applyTransition(c *gin.Context, operation string, apply func(actor domain.Actor, id int64) (*domain.Appointment, error)) {
	actor, err := getActor(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	if actor.Role == domain.UserRoleDoctor {
		current, err := h.services.Appointment.GetByID(c.Request.Context(), id)
		if err != nil {
			h.respondServiceError(c, err, operation)
			return
		}
		if current.DoctorID != actor.ID {
			h.logger.Warn("попытка изменить чужую запись",
				zap.Int64("user_id", actor.ID),
				zap.Int64("appointment_id", id))
			forbiddenResponse(c)
			return
		}
	}

	appointment, err := apply(actor, id)
	if err != nil {
		h.respondServiceError(c, err, operation)
		return
	}

	successResponse(c, http.StatusOK, newAppointmentView(appointment))
}

// appointmentView adds the operations accepted from the current status.
type appointmentView struct {
	*domain.Appointment
	AllowedOperations []domain.Operation `json:"allowed_operations"`
}

func newAppointmentView(a *domain.Appointment) appointmentView {
	ops := domain.AllowedOperations(a.Status)
	if ops == nil {
		ops = []domain.Operation{}
	}
	return appointmentView{Appointment: a, AllowedOperations: ops}
}

func (h *Handler) appointmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("неверный формат ID", zap.String("id", c.Param("id")))
		badRequestResponse(c, "неверный формат ID")
		return 0, false
	}
	return id, true
}
