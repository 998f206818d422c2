package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/report"
	"clinicdesk/internal/storage"
	"clinicdesk/pkg/metrics"
)

type DailyReport struct {
	FileName string
	Content  []byte
	// ArchiveURL is a presigned link to the archived copy, empty when archiving is off or failed.
	ArchiveURL string
}

type ReportServiceImpl struct {
	accounting AccountingService
	storage    storage.ReportStorage
	loc        *time.Location
	metrics    *metrics.Collector
	logger     *zap.Logger
}

func NewReportService(accounting AccountingService, reportStorage storage.ReportStorage, loc *time.Location, m *metrics.Collector, logger *zap.Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		accounting: accounting,
		storage:    reportStorage,
		loc:        loc,
		metrics:    m,
		logger:     logger,
	}
}

func (s *ReportServiceImpl) ExportDaily(ctx context.Context, day string) (*DailyReport, error) {
	ctx, span := tracer.Start(ctx, "report.export_daily")
	defer span.End()

	summary, err := s.accounting.SummarizeDay(ctx, day)
	if err != nil {
		return nil, err
	}

	buf, err := report.RenderDailyIncome(summary, s.loc)
	if err != nil {
		s.logger.Error("ошибка формирования отчета", zap.String("day", day), zap.Error(err))
		return nil, fmt.Errorf("ошибка при формировании отчета: %w", err)
	}

	out := &DailyReport{
		FileName: report.FileName(day),
		Content:  buf.Bytes(),
	}
	s.metrics.ReportsExported.Inc()

	if s.storage == nil {
		return out, nil
	}

	objectName, err := s.storage.UploadReport(ctx, day, out.Content)
	if err != nil {
		s.logger.Warn("не удалось сохранить отчет в архив", zap.String("day", day), zap.Error(err))
		return out, nil
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName)
	if err != nil {
		s.logger.Warn("не удалось получить ссылку на отчет", zap.String("object", objectName), zap.Error(err))
		return out, nil
	}
	out.ArchiveURL = url

	return out, nil
}

// ArchivedReport reads back a report stored by ExportDaily.
func (s *ReportServiceImpl) ArchivedReport(ctx context.Context, objectName string) (*DailyReport, error) {
	ctx, span := tracer.Start(ctx, "report.archived")
	defer span.End()

	if s.storage == nil {
		return nil, domain.ErrReportNotFound
	}

	data, err := s.storage.GetReport(ctx, objectName)
	switch {
	case errors.Is(err, storage.ErrInvalidObjectName):
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidReportName, err)
	case errors.Is(err, storage.ErrObjectNotFound):
		return nil, fmt.Errorf("%w: %v", domain.ErrReportNotFound, err)
	case err != nil:
		failSpan(span, err)
		s.logger.Error("ошибка чтения архивного отчета", zap.String("object", objectName), zap.Error(err))
		return nil, fmt.Errorf("ошибка чтения архивного отчета: %w", err)
	}

	return &DailyReport{FileName: path.Base(objectName), Content: data}, nil
}
