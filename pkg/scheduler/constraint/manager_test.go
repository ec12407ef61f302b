package constraint

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

// stubConstraint 测试用约束
type stubConstraint struct {
	name     string
	typ      Type
	category Category
	weight   int
	valid    bool
	penalty  int
}

func (c *stubConstraint) Name() string       { return c.name }
func (c *stubConstraint) Type() Type         { return c.typ }
func (c *stubConstraint) Category() Category { return c.category }
func (c *stubConstraint) Weight() int        { return c.weight }

func (c *stubConstraint) Evaluate(ctx *Context) (bool, int, []ViolationDetail) {
	if c.valid {
		return true, 0, nil
	}
	return false, c.penalty, []ViolationDetail{{
		ConstraintType: c.typ,
		ConstraintName: c.name,
		Day:            -1,
		Penalty:        c.penalty,
	}}
}

func newManagerTestContext(t *testing.T) *Context {
	t.Helper()
	catalog, err := model.NewShiftCatalog([]string{"早班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-01", 3)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	p, err := model.NewProblem([]*model.Employee{{Name: "张三"}}, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	return NewContext(p)
}

func TestManager_Register(t *testing.T) {
	m := NewManager()

	m.Register(&stubConstraint{name: "软规则", typ: TypeRestTarget, category: CategorySoft, weight: 400, valid: true})
	m.Register(&stubConstraint{name: "硬规则", typ: TypeCoverage, category: CategoryHard, weight: 100, valid: true})

	if m.Count() != 2 {
		t.Errorf("Count() = %d, 期望 2", m.Count())
	}

	// 硬约束排在软约束前面
	all := m.GetAll()
	if all[0].Category() != CategoryHard {
		t.Errorf("首位约束类别 = %v, 期望 hard", all[0].Category())
	}

	// 同类型约束被替换而非追加
	m.Register(&stubConstraint{name: "硬规则v2", typ: TypeCoverage, category: CategoryHard, weight: 200, valid: true})
	if m.Count() != 2 {
		t.Errorf("替换后 Count() = %d, 期望 2", m.Count())
	}
	if got := m.GetConstraint(TypeCoverage).Name(); got != "硬规则v2" {
		t.Errorf("GetConstraint(coverage).Name() = %s, 期望 硬规则v2", got)
	}
}

func TestManager_Unregister(t *testing.T) {
	m := NewManager()
	m.Register(&stubConstraint{name: "硬规则", typ: TypeCoverage, category: CategoryHard, weight: 100, valid: true})

	m.Unregister(TypeCoverage)
	if m.Count() != 0 {
		t.Errorf("注销后 Count() = %d, 期望 0", m.Count())
	}
	if m.GetConstraint(TypeCoverage) != nil {
		t.Error("注销后不应再能获取约束")
	}
}

func TestManager_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		constraints []*stubConstraint
		wantValid   bool
		wantPenalty int
		wantHard    int
		wantSoft    int
	}{
		{
			name: "全部满足",
			constraints: []*stubConstraint{
				{name: "硬", typ: TypeCoverage, category: CategoryHard, weight: 100, valid: true},
				{name: "软", typ: TypeRestTarget, category: CategorySoft, weight: 10, valid: true},
			},
			wantValid: true,
		},
		{
			name: "软约束违反不影响可行性",
			constraints: []*stubConstraint{
				{name: "硬", typ: TypeCoverage, category: CategoryHard, weight: 100, valid: true},
				{name: "软", typ: TypeRestTarget, category: CategorySoft, weight: 10, valid: false, penalty: 30},
			},
			wantValid:   true,
			wantPenalty: 30,
			wantSoft:    1,
		},
		{
			name: "硬约束违反导致无效",
			constraints: []*stubConstraint{
				{name: "硬", typ: TypeCoverage, category: CategoryHard, weight: 100, valid: false, penalty: 100},
				{name: "软", typ: TypeRestTarget, category: CategorySoft, weight: 10, valid: false, penalty: 30},
			},
			wantValid:   false,
			wantPenalty: 130,
			wantHard:    1,
			wantSoft:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			for _, c := range tt.constraints {
				m.Register(c)
			}
			ctx := newManagerTestContext(t)

			result := m.Evaluate(ctx)
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, 期望 %v", result.IsValid, tt.wantValid)
			}
			if result.TotalPenalty != tt.wantPenalty {
				t.Errorf("TotalPenalty = %d, 期望 %d", result.TotalPenalty, tt.wantPenalty)
			}
			if len(result.HardViolations) != tt.wantHard {
				t.Errorf("硬违反数 = %d, 期望 %d", len(result.HardViolations), tt.wantHard)
			}
			if len(result.SoftViolations) != tt.wantSoft {
				t.Errorf("软违反数 = %d, 期望 %d", len(result.SoftViolations), tt.wantSoft)
			}

			if got := m.HardValid(ctx); got != tt.wantValid {
				t.Errorf("HardValid() = %v, 期望 %v", got, tt.wantValid)
			}
		})
	}
}

func TestManager_ViolatedHardFamilies(t *testing.T) {
	m := NewManager()
	m.Register(&stubConstraint{name: "活动需求下限", typ: TypeActivity, category: CategoryHard, weight: 100, valid: false, penalty: 100})
	m.Register(&stubConstraint{name: "禁排班次", typ: TypeZeroBan, category: CategoryHard, weight: 100, valid: true})
	m.Register(&stubConstraint{name: "软规则", typ: TypeRestTarget, category: CategorySoft, weight: 10, valid: false, penalty: 10})

	families := m.ViolatedHardFamilies(newManagerTestContext(t))
	if len(families) != 1 {
		t.Fatalf("违反的硬规则族数 = %d, 期望 1", len(families))
	}
	if families[0] != "活动需求下限" {
		t.Errorf("families[0] = %s, 期望 活动需求下限", families[0])
	}
}

func TestContext_Helpers(t *testing.T) {
	catalog, _ := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	horizon, _ := model.NewHorizonFromDays("2026-03-01", 4)
	p, _ := model.NewProblem([]*model.Employee{{Name: "张三"}, {Name: "李四"}}, catalog, horizon)

	ctx := NewContext(p)
	if ctx.Assigned(0, 0) {
		t.Error("新建上下文的单元格应为未分配")
	}

	// 张三: 早 晚 休 早；李四: 晚 晚 晚 休
	ctx.Matrix[0] = []int{0, 1, 2, 0}
	ctx.Matrix[1] = []int{1, 1, 1, 2}

	if !ctx.IsWork(0, 0) || ctx.IsWork(0, 2) {
		t.Error("IsWork 判定错误")
	}
	if !ctx.IsRest(0, 2) || ctx.IsRest(0, 3) {
		t.Error("IsRest 判定错误")
	}
	if got := ctx.CountByDayShift(1, 1); got != 2 {
		t.Errorf("CountByDayShift(1, 晚班) = %d, 期望 2", got)
	}
	if got := ctx.RestCount(0); got != 1 {
		t.Errorf("RestCount(0) = %d, 期望 1", got)
	}
	if got := ctx.WorkDayCount(1); got != 3 {
		t.Errorf("WorkDayCount(1) = %d, 期望 3", got)
	}
	if got := ctx.EmployeeShiftCount(1, 1); got != 3 {
		t.Errorf("EmployeeShiftCount(1, 晚班) = %d, 期望 3", got)
	}

	runs := ctx.WorkRuns(0)
	if len(runs) != 2 || runs[0] != 2 || runs[1] != 1 {
		t.Errorf("WorkRuns(0) = %v, 期望 [2 1]", runs)
	}

	clone := ctx.Clone()
	clone.Matrix[0][0] = 2
	if ctx.Matrix[0][0] != 0 {
		t.Error("Clone 后修改副本不应影响原矩阵")
	}
}
