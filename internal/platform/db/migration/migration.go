package migration

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// DefaultDir は移行ファイルの既定ディレクトリです。
const DefaultDir = "assets/migrations"

// ErrUnsupportedAction は未知の操作が指定された場合のエラーです。
var ErrUnsupportedAction = errors.New("migration: unsupported action")

// SourceURL はディレクトリを golang-migrate の file ソース URL に変換します。
func SourceURL(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	return "file://" + filepath.ToSlash(absDir), nil
}

// Run は up / down / drop / version のいずれかを実行します。
func Run(action, dir, dsn string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch action {
	case "up", "down", "drop", "version":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAction, action)
	}

	sourceURL, err := SourceURL(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migration applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}
