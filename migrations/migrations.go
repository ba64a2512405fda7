// Package migrations содержит SQL схему сервиса, встроенную в бинарник.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// Executor выполняет SQL (реализуется *sql.DB и *dbmetrics.DB)
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Read возвращает содержимое миграции
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read migration %s: %w", name, err)
	}
	return string(data), nil
}

// Apply применяет все миграции по порядку. Схема идемпотентна (IF NOT EXISTS),
// поэтому повторный запуск безопасен. Возвращает имена примененных файлов.
func Apply(ctx context.Context, db Executor) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		body, err := Read(name)
		if err != nil {
			return nil, err
		}
		if _, err := db.ExecContext(ctx, body); err != nil {
			return nil, fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return names, nil
}
