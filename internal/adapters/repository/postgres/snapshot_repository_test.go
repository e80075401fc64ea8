package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/ogurasousui/staffing-grpc-clean-arch/internal/core/staffing"
)

func expectSnapshotQueries(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "parent_department_id", "parent_position_id", "deleted"}).
			AddRow(int64(1), "本社", nil, nil, false).
			AddRow(int64(2), "営業部", int64(1), int64(10), false).
			AddRow(int64(3), "旧部署", int64(1), nil, true))

	mock.ExpectQuery(regexp.QuoteMeta(selectPositionsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "deleted"}).
			AddRow(int64(10), "部長", false).
			AddRow(int64(11), "課長", false))

	mock.ExpectQuery(regexp.QuoteMeta(selectBindingsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"position_id", "department_id", "vacancy_total", "deleted"}).
			AddRow(int64(10), int64(1), int32(1), false).
			AddRow(int64(11), int64(2), int32(4), false))

	mock.ExpectQuery(regexp.QuoteMeta(selectEmployeesSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "position_id", "department_id", "deleted"}).
			AddRow(int64(100), "山田 太郎", int64(10), int64(1), false).
			AddRow(int64(101), "佐藤 花子", int64(11), int64(2), false).
			AddRow(int64(102), "未配属", int64(0), int64(0), false))

	mock.ExpectQuery(regexp.QuoteMeta(selectRelationsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"parent_position_id", "parent_department_id", "child_position_id", "child_department_id", "deleted"}).
			AddRow(int64(10), int64(1), int64(11), int64(2), false))

	mock.ExpectQuery(regexp.QuoteMeta(selectLinksSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"position_id", "parent_position_id", "department_id", "deleted"}).
			AddRow(int64(11), int64(10), int64(1), true))
}

func TestSnapshotRepository_LoadRecords(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectSnapshotQueries(mock)

	records, err := NewSnapshotRepository(mock).LoadRecords(context.Background())
	if err != nil {
		t.Fatalf("LoadRecords returned error: %v", err)
	}

	if len(records.Departments) != 3 || len(records.Positions) != 2 || len(records.Bindings) != 2 ||
		len(records.Employees) != 3 || len(records.Relations) != 1 || len(records.Links) != 1 {
		t.Fatalf("unexpected record counts: %+v", records)
	}

	root := records.Departments[0]
	if root.ParentDepartmentID != nil || root.ParentPositionID != nil {
		t.Fatalf("expected root without parents, got %+v", root)
	}
	sales := records.Departments[1]
	if sales.ParentDepartmentID == nil || *sales.ParentDepartmentID != 1 || sales.ParentPositionID == nil || *sales.ParentPositionID != 10 {
		t.Fatalf("unexpected parents for sales department: %+v", sales)
	}
	if !records.Departments[2].Deleted {
		t.Fatalf("expected department 3 to be deleted")
	}
	if records.Bindings[1].VacancyTotal != 4 {
		t.Fatalf("expected vacancy total 4, got %d", records.Bindings[1].VacancyTotal)
	}
	if unassigned := records.Employees[2]; unassigned.PositionID != 0 || unassigned.DepartmentID != 0 {
		t.Fatalf("expected unassigned employee, got %+v", unassigned)
	}
	if !records.Links[0].Deleted {
		t.Fatalf("expected link to be deleted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSnapshotRepository_LoadRecordsFeedsEngine(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	expectSnapshotQueries(mock)

	svc := staffing.NewService(NewSnapshotRepository(mock), nil, staffing.VacancyModeTotal, nil)
	result, err := svc.GetVacancyCount(context.Background(), staffing.GetVacancyCountInput{})
	if err != nil {
		t.Fatalf("GetVacancyCount returned error: %v", err)
	}

	if result.Count.Total != 5 || result.Count.Occupied != 2 || result.Count.Vacant != 3 {
		t.Fatalf("unexpected organization count: %+v", result.Count)
	}
}

func TestSnapshotRepository_LoadRecords_UndefinedTable(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
		WillReturnError(&pgconn.PgError{Code: undefinedTableCode, Message: `relation "departments" does not exist`})

	_, err = NewSnapshotRepository(mock).LoadRecords(context.Background())
	if !errors.Is(err, ErrSchemaNotMigrated) {
		t.Fatalf("expected ErrSchemaNotMigrated, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSnapshotRepository_LoadRecords_QueryCanceled(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "parent_department_id", "parent_position_id", "deleted"}))
	mock.ExpectQuery(regexp.QuoteMeta(selectPositionsSQL)).
		WillReturnError(&pgconn.PgError{Code: queryCanceledCode, Message: "canceling statement due to statement timeout"})

	_, err = NewSnapshotRepository(mock).LoadRecords(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestSnapshotRepository_LoadRecords_ScanError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	rowErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "parent_department_id", "parent_position_id", "deleted"}).
			AddRow(int64(1), "本社", nil, nil, false).
			RowError(0, rowErr))

	_, err = NewSnapshotRepository(mock).LoadRecords(context.Background())
	if !errors.Is(err, rowErr) {
		t.Fatalf("expected row error, got %v", err)
	}
}
