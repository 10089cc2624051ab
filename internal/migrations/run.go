// Package migrations создаёт схему базы данных при старте приложения.
// SQL-файлы вшиты в бинарник; уже применённые версии повторно не выполняются.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var files embed.FS

// Run применяет все невыполненные миграции к базе storageConnectionString.
//
// Для миграций открывается отдельное соединение: migrate закрывает
// переданный ему *sql.DB вместе с собой.
func Run(storageConnectionString string) error {
	const op = "migrations.Run"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	src, err := iofs.New(files, "sql")
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
