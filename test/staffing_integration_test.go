//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/cache"
	repo "github.com/ogurasousui/staffing-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/config"
	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/migration"
	pg "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/postgres"
	rdb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/redis"
)

const migrationsDir = "../assets/migrations"

// R(1) の下に S(2)。P(30) は A(3) と B(4) に紐付きます。
const seedSQL = `
INSERT INTO positions (id, name) VALUES (10, 'X'), (30, 'P'), (40, 'Retired');
UPDATE positions SET deleted_at = NOW() WHERE id = 40;

INSERT INTO departments (id, name, parent_department_id) VALUES
    (1, 'R', NULL),
    (2, 'S', 1),
    (3, 'A', NULL),
    (4, 'B', NULL);

INSERT INTO position_department (position_id, department_id, vacancy_total) VALUES
    (10, 1, 3),
    (10, 2, 2),
    (30, 3, 2),
    (30, 4, 1),
    (40, 4, 9);

INSERT INTO employees (id, full_name, position_id, department_id) VALUES
    (100, 'In R', 10, 1),
    (101, 'In A', 30, 3),
    (102, 'Unassigned', NULL, NULL);
`

func setup(t *testing.T) (*config.Config, *pgxpool.Pool) {
	t.Helper()

	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	dsn := cfg.Database.DSN()
	if err := migration.Run("down", migrationsDir, dsn, nil); err != nil {
		t.Fatalf("failed to reset migrations: %v", err)
	}
	if err := migration.Run("up", migrationsDir, dsn, nil); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, seedSQL); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return cfg, pool
}

func TestStaffingIntegration(t *testing.T) {
	cfg, pool := setup(t)
	ctx := context.Background()

	source := staffing.NewTransactionalSource(repo.NewSnapshotRepository(pool), pg.NewTransactionManager(pool))
	if cfg.Cache.Enabled() {
		client, err := rdb.NewClient(ctx, cfg.Cache.Redis)
		if err != nil {
			t.Fatalf("failed to connect redis: %v", err)
		}
		t.Cleanup(func() { _ = client.Close() })

		snapshotCache := cache.NewSnapshotCache(client, source, cfg.Cache.TTL, nil)
		if err := snapshotCache.Invalidate(ctx); err != nil {
			t.Fatalf("failed to invalidate cache: %v", err)
		}
		source = snapshotCache
	}

	svc := staffing.NewService(source, nil, staffing.VacancyModeTotal, nil)

	tests := []struct {
		name                    string
		in                      staffing.GetVacancyCountInput
		total, occupied, vacant int
	}{
		{name: "department subtree", in: staffing.GetVacancyCountInput{DepartmentID: ptr(1)}, total: 5, occupied: 1, vacant: 4},
		{name: "position across departments", in: staffing.GetVacancyCountInput{PositionID: ptr(30)}, total: 3, occupied: 1, vacant: 2},
		{name: "organization skips deleted position", in: staffing.GetVacancyCountInput{}, total: 8, occupied: 2, vacant: 6},
	}

	for _, tt := range tests {
		result, err := svc.GetVacancyCount(ctx, tt.in)
		if err != nil {
			t.Fatalf("%s: GetVacancyCount error: %v", tt.name, err)
		}
		if c := result.Count; c.Total != tt.total || c.Occupied != tt.occupied || c.Vacant != tt.vacant {
			t.Fatalf("%s: expected {%d %d %d}, got %+v", tt.name, tt.total, tt.occupied, tt.vacant, c)
		}
	}
}

func TestStaffingIntegration_SchemaMissing(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := migration.Run("down", migrationsDir, cfg.Database.DSN(), nil); err != nil {
		t.Fatalf("failed to reset migrations: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Close()

	_, err = repo.NewSnapshotRepository(pool).LoadRecords(ctx)
	if !errors.Is(err, repo.ErrSchemaNotMigrated) {
		t.Fatalf("expected ErrSchemaNotMigrated, got %v", err)
	}
}

func ptr(v int64) *int64 {
	return &v
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}
