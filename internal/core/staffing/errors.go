package staffing

import "errors"

var (
	// ErrInvalidSnapshot はスナップショットの検証に失敗した場合に返却されます。
	ErrInvalidSnapshot = errors.New("staffing: invalid snapshot")
	// ErrSnapshotUnavailable はスナップショットの取得に失敗した場合に返却されます。
	ErrSnapshotUnavailable = errors.New("staffing: snapshot unavailable")

	ErrInvalidDepartmentID = errors.New("staffing: invalid department id")
	ErrInvalidPositionID   = errors.New("staffing: invalid position id")
	ErrInvalidVacancyMode  = errors.New("staffing: invalid vacancy mode")

	ErrInvalidRecordID     = errors.New("invalid record id")
	ErrDuplicateDepartment = errors.New("duplicate department")
	ErrDuplicatePosition   = errors.New("duplicate position")
	ErrDuplicateEmployee   = errors.New("duplicate employee")
	ErrInvalidBinding      = errors.New("invalid binding")
	ErrNegativeVacancy     = errors.New("negative vacancy total")
	ErrInvalidRelation     = errors.New("invalid position relation")
	ErrInvalidEmployee     = errors.New("invalid employee reference")
)
