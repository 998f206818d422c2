package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"clinicdesk/config"
)

const reportsPrefix = "reports/"

type S3Storage struct {
	client *minio.Client
	cfg    config.S3Config
	logger *zap.Logger
}

func NewS3Storage(cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
		logger.Info("создан бакет для отчетов", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func ReportObjectName(day string, id uuid.UUID) string {
	return fmt.Sprintf("%s%s-%s.xlsx", reportsPrefix, day, id.String())
}

func (s *S3Storage) UploadReport(ctx context.Context, day string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("пустые данные отчета")
	}

	objectName := ReportObjectName(day, uuid.New())
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: XLSXContentType,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки отчета в S3: %w", err)
	}

	s.logger.Info("отчет сохранен в архив", zap.String("object", objectName), zap.Int("size", len(data)))
	return objectName, nil
}

func (s *S3Storage) GetReport(ctx context.Context, objectName string) ([]byte, error) {
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}

	object, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отчета из S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", objectName, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения отчета из S3: %w", err)
	}

	return data, nil
}

func (s *S3Storage) GetPresignedURL(ctx context.Context, objectName string) (string, error) {
	if err := validateObjectName(objectName); err != nil {
		return "", err
	}

	presignedURL, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, objectName, s.cfg.PresignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации пресайн URL: %w", err)
	}

	return presignedURL.String(), nil
}

func validateObjectName(objectName string) error {
	if objectName == "" {
		return fmt.Errorf("пустое имя объекта: %w", ErrInvalidObjectName)
	}
	if !strings.HasPrefix(objectName, reportsPrefix) || strings.Contains(objectName, "..") {
		return fmt.Errorf("%s: %w", objectName, ErrInvalidObjectName)
	}
	return nil
}
