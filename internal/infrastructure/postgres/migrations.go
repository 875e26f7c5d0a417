package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/loulwahalabdely/FC723-Project1/migrations"
)

// RunMigrations は bookings テーブルのマイグレーションを実行する
// migrationsPath が空の場合はバイナリに埋め込んだスキーマを使う
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("マイグレーションドライバー作成エラー: %w", err)
	}

	var m *migrate.Migrate
	if migrationsPath == "" {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return fmt.Errorf("埋め込みマイグレーションの読み込みエラー: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			return fmt.Errorf("マイグレーションインスタンス作成エラー: %w", err)
		}
	} else {
		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
		if err != nil {
			return fmt.Errorf("マイグレーションインスタンス作成エラー: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("マイグレーション実行エラー: %w", err)
	}
	return nil
}
