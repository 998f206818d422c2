package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/report"
	"clinicdesk/internal/storage"
	"clinicdesk/pkg/metrics"
)

type fakeReportStorage struct {
	uploaded  map[string][]byte
	uploadErr error
	getErr    error
}

func (s *fakeReportStorage) UploadReport(_ context.Context, day string, data []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	name := "reports/" + day + "-test.xlsx"
	s.uploaded[name] = data
	return name, nil
}

func (s *fakeReportStorage) GetReport(_ context.Context, objectName string) ([]byte, error) {
	if !strings.HasPrefix(objectName, "reports/") {
		return nil, storage.ErrInvalidObjectName
	}
	if s.getErr != nil {
		return nil, s.getErr
	}
	data, ok := s.uploaded[objectName]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (s *fakeReportStorage) GetPresignedURL(_ context.Context, objectName string) (string, error) {
	return "https://s3.example/" + objectName + "?sig=1", nil
}

func newReportFixture(reportStorage *fakeReportStorage) *ReportServiceImpl {
	m := metrics.NewCollector("clinicdesk", prometheus.NewRegistry())
	accounting := NewAccountingService(&fakeConsultationRepo{items: []domain.Consultation{
		{ID: 1, PatientName: "Ana", Date: fixedNow.UnixMilli(), PaymentAmount: money("300")},
	}}, clinicTZ, m, zap.NewNop())

	if reportStorage == nil {
		return NewReportService(accounting, nil, clinicTZ, m, zap.NewNop())
	}
	return NewReportService(accounting, reportStorage, clinicTZ, m, zap.NewNop())
}

func TestExportDaily_WithoutArchive(t *testing.T) {
	svc := newReportFixture(nil)

	r, err := svc.ExportDaily(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("ExportDaily error: %v", err)
	}
	if r.FileName != "corte-de-caja-2024-03-01.xlsx" || r.ArchiveURL != "" {
		t.Fatalf("unexpected report %s / %s", r.FileName, r.ArchiveURL)
	}

	f, err := excelize.OpenReader(bytes.NewReader(r.Content))
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(report.SheetName)
	if err != nil || len(rows) != 3 {
		t.Fatalf("expected header, one transaction and totals, got %d rows (%v)", len(rows), err)
	}
}

func TestExportDaily_Archives(t *testing.T) {
	archive := &fakeReportStorage{uploaded: map[string][]byte{}}
	svc := newReportFixture(archive)

	r, err := svc.ExportDaily(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("ExportDaily error: %v", err)
	}
	if r.ArchiveURL != "https://s3.example/reports/2024-03-01-test.xlsx?sig=1" {
		t.Fatalf("unexpected archive url %s", r.ArchiveURL)
	}
	if !bytes.Equal(archive.uploaded["reports/2024-03-01-test.xlsx"], r.Content) {
		t.Fatal("expected the archived copy to match the download")
	}
}

func TestExportDaily_ArchiveFailureStillServesFile(t *testing.T) {
	svc := newReportFixture(&fakeReportStorage{uploaded: map[string][]byte{}, uploadErr: errBackend})

	r, err := svc.ExportDaily(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("expected export despite archive failure, got %v", err)
	}
	if len(r.Content) == 0 || r.ArchiveURL != "" {
		t.Fatalf("expected content without archive url, got %d bytes / %q", len(r.Content), r.ArchiveURL)
	}
}

func TestExportDaily_InvalidDate(t *testing.T) {
	svc := newReportFixture(nil)
	if _, err := svc.ExportDaily(context.Background(), "ayer"); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestArchivedReport(t *testing.T) {
	archive := &fakeReportStorage{uploaded: map[string][]byte{}}
	svc := newReportFixture(archive)
	ctx := context.Background()

	exported, err := svc.ExportDaily(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("ExportDaily error: %v", err)
	}

	r, err := svc.ArchivedReport(ctx, "reports/2024-03-01-test.xlsx")
	if err != nil {
		t.Fatalf("ArchivedReport error: %v", err)
	}
	if r.FileName != "2024-03-01-test.xlsx" || !bytes.Equal(r.Content, exported.Content) {
		t.Fatalf("unexpected archived report %s (%d bytes)", r.FileName, len(r.Content))
	}

	cases := []struct {
		name   string
		object string
		getErr error
		target error
	}{
		{"missing", "reports/2023-01-01-none.xlsx", nil, domain.ErrReportNotFound},
		{"outside prefix", "../etc/passwd", nil, domain.ErrInvalidReportName},
		{"backend", "reports/2024-03-01-test.xlsx", errBackend, errBackend},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			archive.getErr = tc.getErr
			defer func() { archive.getErr = nil }()
			if _, err := svc.ArchivedReport(ctx, tc.object); !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestArchivedReport_WithoutArchive(t *testing.T) {
	svc := newReportFixture(nil)
	if _, err := svc.ArchivedReport(context.Background(), "reports/2024-03-01-test.xlsx"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
