package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
	pgdb "github.com/ogurasousui/staffing-grpc-clean-arch/internal/platform/db/postgres"
)

const (
	undefinedTableCode  = "42P01"
	undefinedColumnCode = "42703"
	queryCanceledCode   = "57014"
)

// ErrSchemaNotMigrated はスナップショット用のテーブルが存在しない場合のエラーです。
var ErrSchemaNotMigrated = errors.New("postgres: staffing schema is not migrated")

const (
	selectDepartmentsSQL = `
        SELECT id, name, parent_department_id, parent_position_id, deleted_at IS NOT NULL
          FROM departments
         ORDER BY id
    `
	selectPositionsSQL = `
        SELECT id, name, deleted_at IS NOT NULL
          FROM positions
         ORDER BY id
    `
	selectBindingsSQL = `
        SELECT position_id, department_id, vacancy_total, deleted_at IS NOT NULL
          FROM position_department
         ORDER BY id
    `
	selectEmployeesSQL = `
        SELECT id, full_name, COALESCE(position_id, 0), COALESCE(department_id, 0), deleted_at IS NOT NULL
          FROM employees
         ORDER BY id
    `
	selectRelationsSQL = `
        SELECT parent_position_id, parent_department_id, child_position_id, child_department_id, deleted_at IS NOT NULL
          FROM position_relations
         ORDER BY id
    `
	selectLinksSQL = `
        SELECT position_id, parent_position_id, department_id, deleted_at IS NOT NULL
          FROM position_position
         ORDER BY id
    `
)

// SnapshotRepository は PostgreSQL から集計用レコードを読み込みます。
type SnapshotRepository struct {
	pool pgdb.Queryer
}

// NewSnapshotRepository は SnapshotRepository を生成します。
func NewSnapshotRepository(pool pgdb.Queryer) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

var _ staffing.SnapshotSource = (*SnapshotRepository)(nil)

// LoadRecords は6つのテーブルを順に読み込みます。
// 一貫した時点を得るには呼び出し側で読み取り専用トランザクションを張ってください。
func (r *SnapshotRepository) LoadRecords(ctx context.Context) (*staffing.Records, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	records := &staffing.Records{}
	var err error

	if records.Departments, err = queryAll(ctx, exec, "departments", selectDepartmentsSQL, scanDepartment); err != nil {
		return nil, err
	}
	if records.Positions, err = queryAll(ctx, exec, "positions", selectPositionsSQL, scanPosition); err != nil {
		return nil, err
	}
	if records.Bindings, err = queryAll(ctx, exec, "position_department", selectBindingsSQL, scanBinding); err != nil {
		return nil, err
	}
	if records.Employees, err = queryAll(ctx, exec, "employees", selectEmployeesSQL, scanEmployee); err != nil {
		return nil, err
	}
	if records.Relations, err = queryAll(ctx, exec, "position_relations", selectRelationsSQL, scanRelation); err != nil {
		return nil, err
	}
	if records.Links, err = queryAll(ctx, exec, "position_position", selectLinksSQL, scanLink); err != nil {
		return nil, err
	}

	return records, nil
}

func queryAll[T any](ctx context.Context, exec pgdb.Queryer, table, query string, scan func(pgx.CollectableRow) (T, error)) ([]T, error) {
	rows, err := exec.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, translateSnapshotPgError(err))
	}

	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, translateSnapshotPgError(err))
	}
	return items, nil
}

func scanDepartment(row pgx.CollectableRow) (staffing.Department, error) {
	var (
		d              staffing.Department
		parentDept     sql.NullInt64
		parentPosition sql.NullInt64
	)
	if err := row.Scan(&d.ID, &d.Name, &parentDept, &parentPosition, &d.Deleted); err != nil {
		return staffing.Department{}, err
	}
	d.ParentDepartmentID = nullableInt64(parentDept)
	d.ParentPositionID = nullableInt64(parentPosition)
	return d, nil
}

func scanPosition(row pgx.CollectableRow) (staffing.Position, error) {
	var p staffing.Position
	err := row.Scan(&p.ID, &p.Name, &p.Deleted)
	return p, err
}

func scanBinding(row pgx.CollectableRow) (staffing.Binding, error) {
	var (
		b     staffing.Binding
		total int32
	)
	if err := row.Scan(&b.PositionID, &b.DepartmentID, &total, &b.Deleted); err != nil {
		return staffing.Binding{}, err
	}
	b.VacancyTotal = int(total)
	return b, nil
}

func scanEmployee(row pgx.CollectableRow) (staffing.Employee, error) {
	var e staffing.Employee
	err := row.Scan(&e.ID, &e.FullName, &e.PositionID, &e.DepartmentID, &e.Deleted)
	return e, err
}

func scanRelation(row pgx.CollectableRow) (staffing.PositionRelation, error) {
	var rel staffing.PositionRelation
	err := row.Scan(&rel.ParentPositionID, &rel.ParentDepartmentID, &rel.ChildPositionID, &rel.ChildDepartmentID, &rel.Deleted)
	return rel, err
}

func scanLink(row pgx.CollectableRow) (staffing.PositionLink, error) {
	var l staffing.PositionLink
	err := row.Scan(&l.PositionID, &l.ParentPositionID, &l.DepartmentID, &l.Deleted)
	return l, err
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func translateSnapshotPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case undefinedTableCode, undefinedColumnCode:
			return fmt.Errorf("%w: %s", ErrSchemaNotMigrated, pgErr.Message)
		case queryCanceledCode:
			return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
	}
	return err
}
