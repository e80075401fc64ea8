package staffing

// pairKey は (部署, 役職) の複合キーです。
type pairKey struct {
	departmentID int64
	positionID   int64
}

// visitedSet は1回の集計呼び出しの間だけ使う訪問済み集合です。
type visitedSet[K comparable] map[K]struct{}

func newVisitedSet[K comparable]() visitedSet[K] {
	return make(visitedSet[K])
}

// visit は未訪問なら記録して true を返します。訪問済みなら false です。
func (v visitedSet[K]) visit(key K) bool {
	if _, ok := v[key]; ok {
		return false
	}
	v[key] = struct{}{}
	return true
}

func (v visitedSet[K]) has(key K) bool {
	_, ok := v[key]
	return ok
}
