package staffing

import (
	"fmt"
	"slices"
)

// Summary はスナップショットに含まれるレコード件数です。
type Summary struct {
	Departments int
	Positions   int
	Bindings    int
	Employees   int
	Relations   int
	Links       int
}

// Snapshot は検証済みでインデックス化された不変のデータ集合です。
// 生成後は読み取り専用のため、複数の集計から同時に参照できます。
type Snapshot struct {
	mode    VacancyMode
	summary Summary

	bindingTotals map[pairKey]int
	bindingOrder  []pairKey
	deptTotals    map[int64]int
	positionDepts map[int64][]int64

	employeesAt map[pairKey]int
	employeesIn map[int64]int

	childDepartments    map[int64][]int64
	relationDepartments map[int64][]int64
	// key は (子の部署, 親の役職)
	relationPositions map[pairKey][]int64
	// key は (部署, 親の役職)
	linkPositions map[pairKey][]int64
}

// NewSnapshot は生データを検証し、集計用のインデックスを構築します。
// mode が空の場合は VacancyModeTotal として扱います。
func NewSnapshot(records *Records, mode VacancyMode) (*Snapshot, error) {
	if mode == "" {
		mode = VacancyModeTotal
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVacancyMode, mode)
	}
	if records == nil {
		records = &Records{}
	}

	s := &Snapshot{
		mode:                mode,
		bindingTotals:       make(map[pairKey]int, len(records.Bindings)),
		deptTotals:          make(map[int64]int),
		positionDepts:       make(map[int64][]int64),
		employeesAt:         make(map[pairKey]int),
		employeesIn:         make(map[int64]int),
		childDepartments:    make(map[int64][]int64),
		relationDepartments: make(map[int64][]int64),
		relationPositions:   make(map[pairKey][]int64),
		linkPositions:       make(map[pairKey][]int64),
	}

	deletedDepts, err := s.indexDepartments(records.Departments)
	if err != nil {
		return nil, err
	}
	deletedPositions, err := s.indexPositions(records.Positions)
	if err != nil {
		return nil, err
	}

	active := func(positionID, departmentID int64) bool {
		return !deletedPositions.has(positionID) && !deletedDepts.has(departmentID)
	}

	if err := s.indexEmployees(records.Employees, active); err != nil {
		return nil, err
	}
	if err := s.indexBindings(records.Bindings, active); err != nil {
		return nil, err
	}
	if err := s.indexRelations(records.Relations, deletedDepts, deletedPositions); err != nil {
		return nil, err
	}
	if err := s.indexLinks(records.Links, active); err != nil {
		return nil, err
	}

	s.summary = Summary{
		Departments: len(records.Departments),
		Positions:   len(records.Positions),
		Bindings:    len(records.Bindings),
		Employees:   len(records.Employees),
		Relations:   len(records.Relations),
		Links:       len(records.Links),
	}

	return s, nil
}

// Mode はスナップショット構築時の VacancyMode を返します。
func (s *Snapshot) Mode() VacancyMode {
	return s.mode
}

// Summary はレコード件数を返します。
func (s *Snapshot) Summary() Summary {
	return s.summary
}

func (s *Snapshot) indexDepartments(departments []Department) (visitedSet[int64], error) {
	seen := newVisitedSet[int64]()
	deleted := newVisitedSet[int64]()

	for _, d := range departments {
		if d.ID <= 0 {
			return nil, invalidRecord(ErrInvalidRecordID, "department %d", d.ID)
		}
		if !seen.visit(d.ID) {
			return nil, invalidRecord(ErrDuplicateDepartment, "department %d", d.ID)
		}
		if d.Deleted {
			deleted.visit(d.ID)
		}
	}

	for _, d := range departments {
		if d.Deleted || d.ParentDepartmentID == nil || *d.ParentDepartmentID <= 0 {
			continue
		}
		parent := *d.ParentDepartmentID
		s.childDepartments[parent] = append(s.childDepartments[parent], d.ID)
	}

	return deleted, nil
}

func (s *Snapshot) indexPositions(positions []Position) (visitedSet[int64], error) {
	seen := newVisitedSet[int64]()
	deleted := newVisitedSet[int64]()

	for _, p := range positions {
		if p.ID <= 0 {
			return nil, invalidRecord(ErrInvalidRecordID, "position %d", p.ID)
		}
		if !seen.visit(p.ID) {
			return nil, invalidRecord(ErrDuplicatePosition, "position %d", p.ID)
		}
		if p.Deleted {
			deleted.visit(p.ID)
		}
	}

	return deleted, nil
}

func (s *Snapshot) indexEmployees(employees []Employee, active func(positionID, departmentID int64) bool) error {
	seen := newVisitedSet[int64]()

	for _, e := range employees {
		if e.ID <= 0 {
			return invalidRecord(ErrInvalidRecordID, "employee %d", e.ID)
		}
		if !seen.visit(e.ID) {
			return invalidRecord(ErrDuplicateEmployee, "employee %d", e.ID)
		}
		if e.PositionID < 0 || e.DepartmentID < 0 {
			return invalidRecord(ErrInvalidEmployee, "employee %d", e.ID)
		}
		if e.Deleted || e.DepartmentID == 0 || !active(e.PositionID, e.DepartmentID) {
			continue
		}

		s.employeesIn[e.DepartmentID]++
		if e.PositionID > 0 {
			s.employeesAt[pairKey{departmentID: e.DepartmentID, positionID: e.PositionID}]++
		}
	}

	return nil
}

// indexBindings は有効な紐付けを (部署, 役職) ごとに1件だけ採用します。重複は先勝ちです。
func (s *Snapshot) indexBindings(bindings []Binding, active func(positionID, departmentID int64) bool) error {
	for _, b := range bindings {
		if b.PositionID <= 0 || b.DepartmentID <= 0 {
			return invalidRecord(ErrInvalidBinding, "binding (position %d, department %d)", b.PositionID, b.DepartmentID)
		}
		if b.VacancyTotal < 0 {
			return invalidRecord(ErrNegativeVacancy, "binding (position %d, department %d)", b.PositionID, b.DepartmentID)
		}
		if b.Deleted || !active(b.PositionID, b.DepartmentID) {
			continue
		}

		key := pairKey{departmentID: b.DepartmentID, positionID: b.PositionID}
		if _, dup := s.bindingTotals[key]; dup {
			continue
		}

		total := b.VacancyTotal
		if s.mode == VacancyModeRemaining {
			total += s.employeesAt[key]
		}

		s.bindingTotals[key] = total
		s.bindingOrder = append(s.bindingOrder, key)
		s.deptTotals[b.DepartmentID] += total
		s.positionDepts[b.PositionID] = append(s.positionDepts[b.PositionID], b.DepartmentID)
	}

	for _, depts := range s.positionDepts {
		slices.Sort(depts)
	}

	return nil
}

func (s *Snapshot) indexRelations(relations []PositionRelation, deletedDepts, deletedPositions visitedSet[int64]) error {
	for _, r := range relations {
		if r.ParentPositionID <= 0 || r.ParentDepartmentID <= 0 || r.ChildPositionID <= 0 || r.ChildDepartmentID <= 0 {
			return invalidRecord(ErrInvalidRelation, "relation (%d@%d -> %d@%d)",
				r.ParentPositionID, r.ParentDepartmentID, r.ChildPositionID, r.ChildDepartmentID)
		}
		if r.Deleted || deletedDepts.has(r.ChildDepartmentID) {
			continue
		}

		s.relationDepartments[r.ParentDepartmentID] = append(s.relationDepartments[r.ParentDepartmentID], r.ChildDepartmentID)

		if deletedPositions.has(r.ChildPositionID) {
			continue
		}
		key := pairKey{departmentID: r.ChildDepartmentID, positionID: r.ParentPositionID}
		s.relationPositions[key] = append(s.relationPositions[key], r.ChildPositionID)
	}

	return nil
}

func (s *Snapshot) indexLinks(links []PositionLink, active func(positionID, departmentID int64) bool) error {
	for _, l := range links {
		if l.PositionID <= 0 || l.ParentPositionID <= 0 || l.DepartmentID <= 0 {
			return invalidRecord(ErrInvalidRelation, "link (%d -> %d@%d)", l.ParentPositionID, l.PositionID, l.DepartmentID)
		}
		if l.Deleted || !active(l.PositionID, l.DepartmentID) {
			continue
		}

		key := pairKey{departmentID: l.DepartmentID, positionID: l.ParentPositionID}
		s.linkPositions[key] = append(s.linkPositions[key], l.PositionID)
	}

	return nil
}

func (s *Snapshot) binding(key pairKey) (int, bool) {
	total, ok := s.bindingTotals[key]
	return total, ok
}

func (s *Snapshot) occupiedAt(key pairKey) int {
	return s.employeesAt[key]
}

func (s *Snapshot) departmentTotals(departmentID int64) (total, occupied int) {
	return s.deptTotals[departmentID], s.employeesIn[departmentID]
}

func (s *Snapshot) boundDepartments(positionID int64) []int64 {
	return s.positionDepts[positionID]
}

func (s *Snapshot) childDepartmentsOf(departmentID int64) []int64 {
	return s.childDepartments[departmentID]
}

func (s *Snapshot) relatedDepartmentsOf(departmentID int64) []int64 {
	return s.relationDepartments[departmentID]
}

func (s *Snapshot) linkedPositionsOf(key pairKey) []int64 {
	return s.linkPositions[key]
}

func (s *Snapshot) relatedPositionsOf(key pairKey) []int64 {
	return s.relationPositions[key]
}

func invalidRecord(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, fmt.Sprintf(format, args...), cause)
}
