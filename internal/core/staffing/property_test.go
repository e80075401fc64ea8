package staffing

import (
	"math/rand/v2"
	"testing"
)

// randomForest は親子関係に循環がなく、在籍者が有効な紐付けの組にだけいるスナップショットを生成します。
func randomForest(r *rand.Rand) (*Records, []int64) {
	records := &Records{}
	var roots []int64

	deptCount := 1 + r.IntN(12)
	for id := int64(1); id <= int64(deptCount); id++ {
		d := Department{ID: id}
		if id > 1 && r.IntN(4) != 0 {
			d.ParentDepartmentID = ptr(1 + r.Int64N(id-1))
		} else {
			roots = append(roots, id)
		}
		records.Departments = append(records.Departments, d)
	}

	var active []Binding
	bindingCount := r.IntN(20)
	for i := 0; i < bindingCount; i++ {
		b := Binding{
			PositionID:   1 + r.Int64N(6),
			DepartmentID: 1 + r.Int64N(int64(deptCount)),
			VacancyTotal: r.IntN(6),
			Deleted:      r.IntN(5) == 0,
		}
		records.Bindings = append(records.Bindings, b)
		if !b.Deleted {
			active = append(active, b)
		}
	}

	if len(active) > 0 {
		employeeCount := int64(r.IntN(15))
		for id := int64(1); id <= employeeCount; id++ {
			b := active[r.IntN(len(active))]
			records.Employees = append(records.Employees, Employee{
				ID:           id,
				PositionID:   b.PositionID,
				DepartmentID: b.DepartmentID,
				Deleted:      r.IntN(6) == 0,
			})
		}
	}

	return records, roots
}

func TestProperty_OrganizationEqualsTopLevelSubtreesOnForests(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(20251019, 1))
	for i := 0; i < 500; i++ {
		records, roots := randomForest(r)
		engine := NewEngine(mustSnapshot(t, records))

		org := engine.Organization()
		var total, occupied int
		for _, root := range roots {
			c := engine.DepartmentSubtree(root)
			total += c.Total
			occupied += c.Occupied
		}

		if org.Total != total || org.Occupied != occupied {
			t.Fatalf("iteration %d: organization %+v differs from top-level subtrees total=%d occupied=%d", i, org, total, occupied)
		}
	}
}

func TestProperty_VacantIsClampedDifference(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		records, _ := randomForest(r)
		// 定員を超える在籍を混ぜます。
		for j := range records.Bindings {
			records.Bindings[j].VacancyTotal = r.IntN(2)
		}
		engine := NewEngine(mustSnapshot(t, records))

		for _, d := range records.Departments {
			c := engine.DepartmentSubtree(d.ID)
			want := c.Total - c.Occupied
			if want < 0 {
				want = 0
			}
			if c.Vacant != want {
				t.Fatalf("iteration %d department %d: vacant %d, want %d (%+v)", i, d.ID, c.Vacant, want, c)
			}
		}
	}
}

func TestProperty_OrganizationDiffersWhenRelationsCrossTrees(t *testing.T) {
	t.Parallel()

	// 2つの最上位部署を関係でつなぐと、部分木の単純合計は重複します。
	engine := NewEngine(mustSnapshot(t, &Records{
		Departments: []Department{{ID: 1}, {ID: 2}},
		Bindings: []Binding{
			{PositionID: 1, DepartmentID: 1, VacancyTotal: 1},
			{PositionID: 1, DepartmentID: 2, VacancyTotal: 2},
		},
		Relations: []PositionRelation{
			{ParentPositionID: 1, ParentDepartmentID: 1, ChildPositionID: 1, ChildDepartmentID: 2},
		},
	}))

	sum := engine.DepartmentSubtree(1).Total + engine.DepartmentSubtree(2).Total
	if org := engine.Organization().Total; org != 3 || sum != 5 {
		t.Fatalf("expected organization 3 and naive subtree sum 5, got %d and %d", org, sum)
	}
}
