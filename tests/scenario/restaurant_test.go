// Package scenario 提供场景测试
package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
)

// scenarioOptions 场景测试用的求解参数（缩短预算、固定种子）
func scenarioOptions() *solver.Options {
	opts := solver.DefaultOptions()
	opts.TimeBudget = 5 * time.Second
	opts.MaxIterations = 20000
	opts.PlateauThreshold = 3000
	opts.Seed = 20260301
	return opts
}

// TestRestaurantWeeklySchedule 餐饮门店一周排班测试
// 6 名员工、早晚两个工作班次，带指定休息日、拒绝班次、
// 晚转早与周末活动需求的综合场景
func TestRestaurantWeeklySchedule(t *testing.T) {
	catalog, err := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromRange("2026-03-02", "2026-03-08")
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}

	employees := []*model.Employee{
		{Name: "张三", Request: model.Request{RestDays: model.ParseDayList("3", horizon.NumDays)}},
		{Name: "李四", Request: model.Request{RefusedShift: "晚班"}},
		{Name: "王五", Request: model.Request{PrevShift: "晚班"}},
		{Name: "赵六", Request: model.Request{ReducedShift: "早班"}},
		{Name: "孙七"},
		{Name: "周八", Request: model.Request{RestDays: model.ParseDayList("6，7", horizon.NumDays)}},
	}

	p, err := model.NewProblem(employees, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	p.MinStaff["早班"] = 2
	p.MinStaff["晚班"] = 1
	p.RestTarget = model.RestTargetCount(2)
	p.MaxConsecutive = 5
	p.NightToDay = model.NightToDayRule{Enabled: true, NightShift: "晚班", DayShift: "早班"}
	// 周六促销活动，早班需要 4 人
	p.Activities = []model.ActivityDemand{{Day: 5, Shift: "早班", MinCount: 4}}
	p.DailyTolerance = 2
	p.PeriodTolerance = 2

	engine := scheduler.NewEngine(scheduler.WithSolverOptions(scenarioOptions()))
	outcome, err := engine.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	// 结果概览
	t.Logf("求解ID: %s", outcome.SolveID)
	t.Logf("总惩罚: %d", outcome.Penalty)
	t.Logf("耗时: %v", outcome.Duration)
	t.Logf("覆盖率: %.1f%%", outcome.Coverage.OverallCoverage)
	t.Logf("公平性评分: %.1f", outcome.Fairness.OverallFairnessScore)
	t.Logf("审计结论: %d 条，其中违反 %d 条", len(outcome.Audit.Findings), len(outcome.Audit.Failed()))
	for _, f := range outcome.Audit.Failed() {
		t.Logf("  [%s] %s", f.Category, f.Message)
	}

	// 排班表结构
	if len(outcome.Table.Rows) != 6 {
		t.Fatalf("排班表行数 = %d, 期望 6", len(outcome.Table.Rows))
	}
	if len(outcome.Table.DayLabels) != 7 {
		t.Fatalf("天标签数 = %d, 期望 7", len(outcome.Table.DayLabels))
	}

	// 硬规则不得有审计违反
	for _, f := range outcome.Audit.Failed() {
		switch f.Category {
		case "coverage", "zero_ban", "activity":
			t.Errorf("硬规则出现审计违反: %+v", f)
		}
	}

	// 周六活动需求
	early := outcome.Table.Footer[0]
	if early.Shift != "早班" {
		t.Fatalf("脚注首行班次 = %s, 期望 早班", early.Shift)
	}
	if early.Counts[5] < 4 {
		t.Errorf("周六早班人数 = %d, 期望至少 4", early.Counts[5])
	}

	// 每人每天恰好一个班次
	for _, row := range outcome.Table.Rows {
		if row.WorkDays+row.RestDays != 7 {
			t.Errorf("员工 %s 工作+休息 = %d 天, 期望 7", row.Employee, row.WorkDays+row.RestDays)
		}
	}
}

// TestBannedShiftSchedule 含禁排班次的排班测试
// 中班最低人数配置为 0，默认策略下全程禁排
func TestBannedShiftSchedule(t *testing.T) {
	catalog, err := model.NewShiftCatalog([]string{"早班", "中班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-02", 7)
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
	p.MinStaff["中班"] = 0 // 禁排
	p.MinStaff["晚班"] = 1
	p.RestTarget = model.RestTargetCount(2)

	engine := scheduler.NewEngine(scheduler.WithSolverOptions(scenarioOptions()))
	outcome, err := engine.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	for _, row := range outcome.Table.Rows {
		if n := row.ShiftCount["中班"]; n != 0 {
			t.Errorf("员工 %s 被安排了禁排的中班 %d 次", row.Employee, n)
		}
	}
	t.Logf("禁排场景覆盖率: %.1f%%", outcome.Coverage.OverallCoverage)
}

// TestUnderstaffedGracefulDegradation 人手不足的优雅降级测试
// 最低人数要求超过供给时不拒解，由审计报告缺口
func TestUnderstaffedGracefulDegradation(t *testing.T) {
	catalog, err := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-02", 7)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	p, err := model.NewProblem([]*model.Employee{
		{Name: "张三"}, {Name: "李四"},
	}, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	// 2 人供给对 3 人需求：软约束降级而非无解
	p.MinStaff["早班"] = 2
	p.MinStaff["晚班"] = 1
	p.RestTarget = model.RestTargetCount(1)

	engine := scheduler.NewEngine(scheduler.WithSolverOptions(scenarioOptions()))
	outcome, err := engine.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("人手不足不应拒解: %v", err)
	}

	shortfalls := 0
	for _, f := range outcome.Audit.Failed() {
		if f.Category == "min_staff" {
			shortfalls++
		}
	}
	if shortfalls == 0 {
		t.Error("审计应报告最低人数缺口")
	}
	if len(outcome.Coverage.Understaffed) == 0 {
		t.Error("覆盖率分析应列出人手不足的时段")
	}
	t.Logf("缺口时段: %d 个，需求满足度 %.1f%%",
		len(outcome.Coverage.Understaffed), outcome.Coverage.DemandSatisfaction)
}
