package staffing

// Department は部署エンティティです。
type Department struct {
	ID                 int64
	ParentDepartmentID *int64
	ParentPositionID   *int64
	Name               string
	Deleted            bool
}

// Position は役職エンティティです。
type Position struct {
	ID      int64
	Name    string
	Deleted bool
}

// Binding は役職と部署の紐付け（定員枠）です。
type Binding struct {
	PositionID   int64
	DepartmentID int64
	VacancyTotal int
	Deleted      bool
}

// Employee は社員エンティティです。PositionID / DepartmentID が 0 の場合は未配属を表します。
type Employee struct {
	ID           int64
	PositionID   int64
	DepartmentID int64
	FullName     string
	Deleted      bool
}

// PositionRelation は部署をまたぐ役職間の報告関係です。
type PositionRelation struct {
	ParentPositionID   int64
	ParentDepartmentID int64
	ChildPositionID    int64
	ChildDepartmentID  int64
	Deleted            bool
}

// PositionLink は同一部署内の役職間の報告関係です。
type PositionLink struct {
	PositionID       int64
	ParentPositionID int64
	DepartmentID     int64
	Deleted          bool
}

// Records は SnapshotSource が返す1回分の生データです。
type Records struct {
	Departments []Department
	Positions   []Position
	Bindings    []Binding
	Employees   []Employee
	Relations   []PositionRelation
	Links       []PositionLink
}

// VacancyMode は Binding.VacancyTotal に格納された値の解釈です。
type VacancyMode string

const (
	// VacancyModeTotal は格納値を定員数として扱います。
	VacancyModeTotal VacancyMode = "total"
	// VacancyModeRemaining は格納値を残り空席数として扱い、在籍数を足して定員数に変換します。
	VacancyModeRemaining VacancyMode = "remaining"
)

// Valid は既知のモードかを判定します。
func (m VacancyMode) Valid() bool {
	switch m {
	case VacancyModeTotal, VacancyModeRemaining:
		return true
	default:
		return false
	}
}

// Count は集計結果です。
type Count struct {
	Total       int
	Occupied    int
	Vacant      int
	Departments int
}

func newCount(total, occupied, departments int) Count {
	vacant := total - occupied
	if vacant < 0 {
		vacant = 0
	}
	if departments < 0 {
		departments = 0
	}
	return Count{Total: total, Occupied: occupied, Vacant: vacant, Departments: departments}
}

// Query は集計対象の指定です。
type Query struct {
	DepartmentID *int64
	PositionID   *int64
	// DirectOnly は部下を持つノード向けの旧来モードで、部署と役職の組だけを数えます。
	DirectOnly bool
}

// Strategy は Query に対して選択された集計方法です。
type Strategy string

const (
	StrategyPositionSubtree   Strategy = "position_subtree"
	StrategyDepartmentSubtree Strategy = "department_subtree"
	StrategyOrganization      Strategy = "organization"
	StrategyDirectPair        Strategy = "direct_pair"
	StrategyNone              Strategy = "none"
)
