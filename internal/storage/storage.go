package storage

import (
	"context"
	"errors"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	ErrInvalidObjectName = errors.New("некорректное имя объекта отчета")
	ErrObjectNotFound    = errors.New("объект отчета не найден")
)

// ReportStorage archives exported cash-cut spreadsheets.
type ReportStorage interface {
	// UploadReport stores the file and returns its object key.
	UploadReport(ctx context.Context, day string, data []byte) (string, error)

	// GetReport reads an archived report back. It returns ErrObjectNotFound
	// when the key does not exist.
	GetReport(ctx context.Context, objectName string) ([]byte, error)

	// GetPresignedURL returns a temporary download link for an archived report.
	GetPresignedURL(ctx context.Context, objectName string) (string, error)
}
