package domain

import "errors"

var (
	ErrAppointmentNotFound       = errors.New("запись не найдена")
	ErrBookingConflict           = errors.New("у врача уже есть запись на это время")
	ErrBookingInPast             = errors.New("нельзя записать на прошедшее время")
	ErrBookingBusy               = errors.New("расписание врача сейчас изменяется, повторите попытку")
	ErrInvalidTimeRange          = errors.New("время окончания должно быть позже времени начала")
	ErrInvalidTransition         = errors.New("недопустимый переход статуса записи")
	ErrReasonRequired            = errors.New("необходимо указать причину отмены")
	ErrInvalidConfirmationMethod = errors.New("неизвестный способ подтверждения")
	ErrInvalidPayment            = errors.New("необходимо указать номер квитанции и положительную сумму с точностью до сотых")
	ErrInvalidDate               = errors.New("неверный формат даты, ожидается YYYY-MM-DD")
	ErrReportNotFound            = errors.New("архивный отчет не найден")
	ErrInvalidReportName         = errors.New("некорректное имя архивного отчета")
)

// IsValidationError reports whether err is a rejection of the actor's input
// rather than a backend failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrBookingInPast) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrReasonRequired) ||
		errors.Is(err, ErrInvalidConfirmationMethod) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidReportName)
}
