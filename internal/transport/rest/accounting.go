package rest

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinicdesk/internal/service"
	"clinicdesk/internal/storage"
)

const reportArchiveHeader = "X-Report-Archive-URL"

// today returns the current day in the clinic timezone.
func (h *Handler) today() string {
	return time.Now().In(h.config.Clinic.Location).Format(service.DayLayout)
}

// @Summary Дневная выручка
// @Description Итоги по оплаченным консультациям за календарный день клиники. При сбое базы возвращается нулевая сводка.
// @Tags Бухгалтерия
// @Produce json
// @Param date query string false "День (YYYY-MM-DD), по умолчанию сегодня"
// @Success 200 {object} successResponseBody{data=domain.DailyIncomeSummary}
// @Failure 400 {object} errorResponseBody "Неверный формат даты"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /accounting/daily [get]
func (h *Handler) getDailyIncome(c *gin.Context) {
	day := c.DefaultQuery("date", h.today())

	summary, err := h.services.Accounting.SummarizeDay(c.Request.Context(), day)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения дневной выручки")
		return
	}

	successResponse(c, http.StatusOK, summary)
}

// @Summary Выручка за период
// @Tags Бухгалтерия
// @Produce json
// @Param from query string true "Первый день (YYYY-MM-DD)"
// @Param to query string true "Последний день включительно (YYYY-MM-DD)"
// @Success 200 {object} successResponseBody{data=domain.DailyIncomeSummary}
// @Failure 400 {object} errorResponseBody "Неверный период"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /accounting/range [get]
func (h *Handler) getIncomeRange(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		badRequestResponse(c, "необходимо указать параметры from и to")
		return
	}

	summary, err := h.services.Accounting.SummarizeRange(c.Request.Context(), from, to)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения выручки за период")
		return
	}

	successResponse(c, http.StatusOK, summary)
}

// @Summary Выгрузить кассовый отчет
// @Description Excel-файл с операциями за день и строкой итогов
// @Tags Бухгалтерия
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "День (YYYY-MM-DD), по умолчанию сегодня"
// @Success 200 {file} file "Отчет"
// @Header 200 {string} X-Report-Archive-URL "Ссылка на архивную копию"
// @Failure 400 {object} errorResponseBody "Неверный формат даты"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /accounting/daily/export [get]
func (h *Handler) exportDailyIncome(c *gin.Context) {
	day := c.DefaultQuery("date", h.today())

	dailyReport, err := h.services.Report.ExportDaily(c.Request.Context(), day)
	if err != nil {
		h.respondServiceError(c, err, "ошибка выгрузки отчета")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, dailyReport.FileName))
	if dailyReport.ArchiveURL != "" {
		c.Header(reportArchiveHeader, dailyReport.ArchiveURL)
	}
	c.Data(http.StatusOK, storage.XLSXContentType, dailyReport.Content)
}

// @Summary Скачать архивный отчет
// @Description Отчет, ранее сохраненный выгрузкой в архив. Имя объекта берется из ссылки X-Report-Archive-URL.
// @Tags Бухгалтерия
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param object query string true "Имя объекта (reports/...)"
// @Success 200 {file} file "Отчет"
// @Failure 400 {object} errorResponseBody "Некорректное имя объекта"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Отчет не найден"
// @Security ApiKeyAuth
// @Router /accounting/daily/archive [get]
func (h *Handler) getArchivedReport(c *gin.Context) {
	objectName := c.Query("object")
	if objectName == "" {
		badRequestResponse(c, "необходимо указать параметр object")
		return
	}

	archived, err := h.services.Report.ArchivedReport(c.Request.Context(), objectName)
	if err != nil {
		h.respondServiceError(c, err, "ошибка получения архивного отчета")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archived.FileName))
	c.Data(http.StatusOK, storage.XLSXContentType, archived.Content)
}
