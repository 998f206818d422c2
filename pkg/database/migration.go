package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MigrationRecord struct {
	Version   string
	Name      string
	AppliedAt time.Time
}

type migrationFile struct {
	Version string
	Name    string
	File    string
}

func RunMigrations(ctx context.Context, db *pgxpool.Pool, migrations fs.FS, logger *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			version VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы миграций: %w", err)
	}

	applied := make(map[string]bool)
	rows, err := db.Query(ctx, "SELECT version, name, applied_at FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("ошибка при получении списка выполненных миграций: %w", err)
	}
	for rows.Next() {
		var record MigrationRecord
		if err := rows.Scan(&record.Version, &record.Name, &record.AppliedAt); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка при сканировании записи о миграции: %w", err)
		}
		applied[record.Version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов запроса: %w", err)
	}

	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return fmt.Errorf("ошибка при чтении директории миграций: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	pending, skipped := pendingMigrations(names, applied)
	for _, file := range skipped {
		logger.Warn("неверный формат имени файла миграции", zap.String("file", file))
	}

	for _, m := range pending {
		content, err := fs.ReadFile(migrations, m.File)
		if err != nil {
			return fmt.Errorf("ошибка при чтении файла миграции %s: %w", m.File, err)
		}

		logger.Info("выполнение миграции", zap.String("version", m.Version), zap.String("name", m.Name))

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("ошибка при начале транзакции: %w", err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("ошибка при выполнении миграции %s: %w", m.File, err)
		}

		_, err = tx.Exec(ctx,
			"INSERT INTO migrations (version, name, applied_at) VALUES ($1, $2, $3)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("ошибка при записи информации о выполненной миграции: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("ошибка при коммите транзакции: %w", err)
		}

		logger.Info("миграция выполнена успешно", zap.String("version", m.Version), zap.String("name", m.Name))
	}

	return nil
}

// pendingMigrations orders "<version>_<name>.sql" files by name and drops the
// ones already applied. Files not matching the pattern are returned as skipped.
func pendingMigrations(files []string, applied map[string]bool) ([]migrationFile, []string) {
	var sqlFiles []string
	for _, f := range files {
		if strings.HasSuffix(f, ".sql") {
			sqlFiles = append(sqlFiles, f)
		}
	}
	sort.Strings(sqlFiles)

	var pending []migrationFile
	var skipped []string
	for _, f := range sqlFiles {
		parts := strings.SplitN(f, "_", 2)
		if len(parts) != 2 {
			skipped = append(skipped, f)
			continue
		}
		if applied[parts[0]] {
			continue
		}
		pending = append(pending, migrationFile{
			Version: parts[0],
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			File:    f,
		})
	}
	return pending, skipped
}
