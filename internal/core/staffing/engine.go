package staffing

// Engine はスナップショットに対して定員・在籍・空席を集計します。
// Engine は状態を持たないため、同じスナップショットに対して並行に呼び出せます。
type Engine struct {
	snap *Snapshot
}

// NewEngine は Engine を生成します。snap が nil の場合は空のスナップショットとして扱います。
func NewEngine(snap *Snapshot) *Engine {
	if snap == nil {
		snap = &Snapshot{mode: VacancyModeTotal}
	}
	return &Engine{snap: snap}
}

// PositionSubtree は (部署, 役職) を起点に、部下の役職と配下の部署をたどって集計します。
func (e *Engine) PositionSubtree(departmentID, positionID int64) Count {
	w := e.newPositionWalk()
	w.walk(pairKey{departmentID: departmentID, positionID: positionID})
	return newCount(w.total, w.occupied, len(w.departments)-1)
}

// DepartmentSubtree は部署を起点に、配下の部署と関係で結ばれた部署をたどって集計します。
func (e *Engine) DepartmentSubtree(departmentID int64) Count {
	visited := newVisitedSet[int64]()
	var total, occupied int

	var dfs func(deptID int64)
	dfs = func(deptID int64) {
		if !visited.visit(deptID) {
			return
		}

		t, o := e.snap.departmentTotals(deptID)
		total += t
		occupied += o

		for _, child := range e.snap.childDepartmentsOf(deptID) {
			dfs(child)
		}
		for _, child := range e.snap.relatedDepartmentsOf(deptID) {
			dfs(child)
		}
	}

	dfs(departmentID)
	return newCount(total, occupied, len(visited)-1)
}

// Organization は組織全体の有効な紐付けを1件ずつ集計します。
func (e *Engine) Organization() Count {
	depts := newVisitedSet[int64]()
	var total, occupied int

	for _, key := range e.snap.bindingOrder {
		t, _ := e.snap.binding(key)
		total += t
		occupied += e.snap.occupiedAt(key)
		depts.visit(key.departmentID)
	}

	return newCount(total, occupied, len(depts))
}

// Direct は (部署, 役職) の組だけを集計します。部下や配下の部署はたどりません。
func (e *Engine) Direct(departmentID, positionID int64) Count {
	key := pairKey{departmentID: departmentID, positionID: positionID}
	total, ok := e.snap.binding(key)
	if !ok {
		return Count{}
	}
	return newCount(total, e.snap.occupiedAt(key), 0)
}

// positionAcrossBindings は役職が紐付くすべての部署を起点に集計します。
// 訪問済み集合を共有するため、ある起点の配下に別の起点が含まれても二重に数えません。
func (e *Engine) positionAcrossBindings(positionID int64) Count {
	roots := e.snap.boundDepartments(positionID)
	w := e.newPositionWalk()
	for _, deptID := range roots {
		w.walk(pairKey{departmentID: deptID, positionID: positionID})
	}
	return newCount(w.total, w.occupied, len(w.departments)-len(roots))
}

type positionWalk struct {
	snap        *Snapshot
	visited     visitedSet[pairKey]
	departments visitedSet[int64]
	total       int
	occupied    int
}

func (e *Engine) newPositionWalk() *positionWalk {
	return &positionWalk{
		snap:        e.snap,
		visited:     newVisitedSet[pairKey](),
		departments: newVisitedSet[int64](),
	}
}

func (w *positionWalk) walk(key pairKey) {
	if !w.visited.visit(key) {
		return
	}
	w.departments.visit(key.departmentID)

	if total, ok := w.snap.binding(key); ok {
		w.total += total
		w.occupied += w.snap.occupiedAt(key)
	}

	for _, child := range w.snap.linkedPositionsOf(key) {
		w.walk(pairKey{departmentID: key.departmentID, positionID: child})
	}
	for _, child := range w.snap.relatedPositionsOf(key) {
		w.walk(pairKey{departmentID: key.departmentID, positionID: child})
	}
	for _, child := range w.snap.childDepartmentsOf(key.departmentID) {
		w.walk(pairKey{departmentID: child, positionID: key.positionID})
	}
}
