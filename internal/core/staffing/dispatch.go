package staffing

// Resolve は Query に対して使用する集計方法を決定します。
func (e *Engine) Resolve(q Query) Strategy {
	if q.DirectOnly {
		switch {
		case q.DepartmentID != nil && q.PositionID != nil:
			return StrategyDirectPair
		case q.DepartmentID != nil:
			return StrategyDepartmentSubtree
		default:
			return StrategyOrganization
		}
	}

	switch {
	case q.PositionID != nil && len(e.snap.boundDepartments(*q.PositionID)) > 0:
		return StrategyPositionSubtree
	case q.DepartmentID != nil:
		return StrategyDepartmentSubtree
	case q.PositionID != nil:
		return StrategyNone
	default:
		return StrategyOrganization
	}
}

// Count は Query を解釈して集計します。
func (e *Engine) Count(q Query) Count {
	switch e.Resolve(q) {
	case StrategyDirectPair:
		return e.Direct(*q.DepartmentID, *q.PositionID)
	case StrategyPositionSubtree:
		return e.positionAcrossBindings(*q.PositionID)
	case StrategyDepartmentSubtree:
		return e.DepartmentSubtree(*q.DepartmentID)
	case StrategyOrganization:
		return e.Organization()
	default:
		return Count{}
	}
}
