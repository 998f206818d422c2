package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/pkg/validator"
)

type errorResponseBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    int               `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = totalCount / pageSize
		if totalCount%pageSize > 0 {
			totalPages++
		}
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

// bindErrorResponse reports a failed ShouldBind*, listing the offending fields
// when the failure came from the validator.
func bindErrorResponse(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponseBody{
		Status:  "error",
		Message: "неверный формат данных",
		Code:    http.StatusBadRequest,
		Fields:  validator.ValidationDetails(err),
	})
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// serviceErrorStatus maps domain errors to HTTP status codes.
func serviceErrorStatus(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAppointmentNotFound),
		errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBookingConflict),
		errors.Is(err, domain.ErrBookingBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondServiceError(c *gin.Context, err error, operation string) {
	status := serviceErrorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(operation, zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	h.logger.Warn(operation, zap.Error(err), zap.Int("status", status))
	errorResponse(c, status, clientMessage(err))
}

// clientMessage strips the wrapping context and returns the sentinel text,
// so internal identifiers in the chain never reach the client.
func clientMessage(err error) string {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return te.Error()
	}

	for _, sentinel := range []error{
		domain.ErrAppointmentNotFound,
		domain.ErrBookingConflict,
		domain.ErrBookingInPast,
		domain.ErrBookingBusy,
		domain.ErrInvalidTimeRange,
		domain.ErrInvalidTransition,
		domain.ErrReasonRequired,
		domain.ErrInvalidConfirmationMethod,
		domain.ErrInvalidPayment,
		domain.ErrInvalidDate,
		domain.ErrReportNotFound,
		domain.ErrInvalidReportName,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(serviceErrorStatus(err))
}
