package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/objective"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
)

func newEngineProblem(t *testing.T) *model.Problem {
	t.Helper()
	catalog, err := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-01", 7)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	p, err := model.NewProblem([]*model.Employee{
		{Name: "张三"}, {Name: "李四"}, {Name: "王五"}, {Name: "赵六"},
	}, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	p.MinStaff["早班"] = 1
	p.MinStaff["晚班"] = 1
	p.RestTarget = model.RestTargetCount(2)
	return p
}

func fastSolverOptions() *solver.Options {
	opts := solver.DefaultOptions()
	opts.TimeBudget = 3 * time.Second
	opts.MaxIterations = 5000
	opts.PlateauThreshold = 1000
	opts.Seed = 42
	return opts
}

func TestEngine_Solve(t *testing.T) {
	engine := NewEngine(WithSolverOptions(fastSolverOptions()))
	outcome, err := engine.Solve(context.Background(), newEngineProblem(t))
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}

	if outcome.SolveID == "" {
		t.Error("SolveID 不应为空")
	}
	if outcome.Table == nil || len(outcome.Table.Rows) != 4 {
		t.Fatalf("排班表行数错误: %+v", outcome.Table)
	}
	if outcome.Audit == nil {
		t.Fatal("审计报告不应为空")
	}
	if outcome.Fairness == nil || outcome.Coverage == nil {
		t.Fatal("统计分析不应为空")
	}

	// 审计与覆盖率必须见证硬约束满足
	for _, f := range outcome.Audit.Failed() {
		switch f.Category {
		case "coverage", "zero_ban", "activity":
			t.Errorf("硬规则出现审计违反: %+v", f)
		}
	}
}

func TestEngine_InvalidWeights(t *testing.T) {
	engine := NewEngine(
		WithSolverOptions(fastSolverOptions()),
		WithWeights(map[objective.Tier]int{objective.TierReducedShift: 999999}),
	)

	_, err := engine.Solve(context.Background(), newEngineProblem(t))
	if err == nil {
		t.Fatal("破坏递减序的权重应被拒绝")
	}
	if !errors.Is(err, errors.CodeInvalidConfig) {
		t.Errorf("错误码 = %v, 期望 INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestEngine_InvalidProblem(t *testing.T) {
	p := newEngineProblem(t)
	p.MinStaff["中班"] = 1

	engine := NewEngine(WithSolverOptions(fastSolverOptions()))
	_, err := engine.Solve(context.Background(), p)
	if err == nil {
		t.Fatal("非法配置应被拒绝")
	}
	if !errors.Is(err, errors.CodeInvalidConfig) {
		t.Errorf("错误码 = %v, 期望 INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestEngine_Infeasible(t *testing.T) {
	p := newEngineProblem(t)
	p.Activities = []model.ActivityDemand{{Day: 0, Shift: "早班", MinCount: 9}}

	engine := NewEngine(WithSolverOptions(fastSolverOptions()))
	_, err := engine.Solve(context.Background(), p)
	if err == nil {
		t.Fatal("应返回无可行解错误")
	}
	if !errors.Is(err, errors.CodeNoFeasibleSolution) {
		t.Errorf("错误码 = %v, 期望 NO_FEASIBLE_SOLUTION", errors.GetCode(err))
	}
}
