package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/repository"
	"clinicdesk/pkg/metrics"
)

const DayLayout = "2006-01-02"

type AccountingServiceImpl struct {
	repo    repository.ConsultationRepository
	loc     *time.Location
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewAccountingService(repo repository.ConsultationRepository, loc *time.Location, m *metrics.Collector, logger *zap.Logger) *AccountingServiceImpl {
	return &AccountingServiceImpl{
		repo:    repo,
		loc:     loc,
		metrics: m,
		logger:  logger,
	}
}

// DayRange resolves a civil day in loc to [00:00:00.000, 23:59:59.999].
func DayRange(day string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DayLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%q: %w", day, domain.ErrInvalidDate)
	}
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end, nil
}

func (s *AccountingServiceImpl) Summarize(ctx context.Context, start, end time.Time) domain.DailyIncomeSummary {
	ctx, span := tracer.Start(ctx, "accounting.summarize")
	defer span.End()
	span.SetAttributes(
		attribute.String("range_start", start.Format(time.RFC3339)),
		attribute.String("range_end", end.Format(time.RFC3339)),
	)

	transactions, err := s.repo.ListRange(ctx, start, end)
	if err != nil {
		s.metrics.AccountingDegraded.Inc()
		s.logger.Error("ошибка получения консультаций, возвращается пустая сводка",
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Error(err),
		)
		span.SetAttributes(attribute.Bool("degraded", true))
		return domain.EmptyIncomeSummary(start, end)
	}

	return domain.SummarizeIncome(start, end, transactions)
}

func (s *AccountingServiceImpl) SummarizeDay(ctx context.Context, day string) (domain.DailyIncomeSummary, error) {
	start, end, err := DayRange(day, s.loc)
	if err != nil {
		return domain.DailyIncomeSummary{}, err
	}
	return s.Summarize(ctx, start, end), nil
}

func (s *AccountingServiceImpl) SummarizeRange(ctx context.Context, fromDay, toDay string) (domain.DailyIncomeSummary, error) {
	start, _, err := DayRange(fromDay, s.loc)
	if err != nil {
		return domain.DailyIncomeSummary{}, err
	}
	_, end, err := DayRange(toDay, s.loc)
	if err != nil {
		return domain.DailyIncomeSummary{}, err
	}
	if end.Before(start) {
		return domain.DailyIncomeSummary{}, domain.ErrInvalidTimeRange
	}
	return s.Summarize(ctx, start, end), nil
}
