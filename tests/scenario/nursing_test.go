// Package scenario 提供场景测试
package scenario

import (
	"context"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler"
)

// TestNursingBiweeklySchedule 护理站两周排班测试
// 白班/大夜班双班制，连续工作上限按硬约束执行，
// 休息目标按做五休二比例推导
func TestNursingBiweeklySchedule(t *testing.T) {
	catalog, err := model.NewShiftCatalog([]string{"白班", "大夜班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-02", 14)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}

	employees := []*model.Employee{
		{Name: "陈护士", Request: model.Request{PrevShift: "大夜班"}},
		{Name: "林护士", Request: model.Request{RefusedShift: "大夜班"}},
		{Name: "黄护士"},
		{Name: "吴护士", Request: model.Request{RestDays: model.ParseDayList("7,14", horizon.NumDays)}},
		{Name: "郑护士"},
		{Name: "刘护士", Request: model.Request{ReducedShift: "大夜班"}},
	}

	p, err := model.NewProblem(employees, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	p.MinStaff["白班"] = 2
	p.MinStaff["大夜班"] = 1
	p.RestTarget = model.RestTargetRatio(2, 5)
	p.MaxConsecutive = 10
	p.ConsecutivePolicy = model.ConsecutiveHard
	p.NightToDay = model.NightToDayRule{Enabled: true, NightShift: "大夜班", DayShift: "白班"}
	p.DailyTolerance = 2
	p.PeriodTolerance = 3

	engine := scheduler.NewEngine(scheduler.WithSolverOptions(scenarioOptions()))
	outcome, err := engine.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("排班执行失败: %v", err)
	}

	t.Logf("休息目标: %d 天（做五休二，14 天周期）", p.RestTargetDays())
	t.Logf("总惩罚: %d，耗时: %v", outcome.Penalty, outcome.Duration)
	t.Logf("覆盖率: %.1f%%，夜班基尼: %.3f",
		outcome.Coverage.OverallCoverage, outcome.Fairness.NightShiftGini)
	for _, f := range outcome.Audit.Failed() {
		t.Logf("  [%s] %s", f.Category, f.Message)
	}

	if p.RestTargetDays() != 4 {
		t.Errorf("休息目标 = %d, 期望 4", p.RestTargetDays())
	}

	// 硬化的连续规则与其他硬规则不得有审计违反
	for _, f := range outcome.Audit.Failed() {
		switch f.Category {
		case "coverage", "zero_ban", "activity", "consecutive":
			t.Errorf("硬规则出现审计违反: %+v", f)
		}
	}

	// 每人最长连续工作不超过上限
	for e, row := range outcome.Table.Rows {
		run, longest := 0, 0
		for _, cell := range row.Cells {
			if cell.IsRest {
				run = 0
				continue
			}
			run++
			if run > longest {
				longest = run
			}
		}
		if longest > p.MaxConsecutive {
			t.Errorf("员工 %s 最长连续工作 %d 天，超过上限 %d", outcome.Table.Rows[e].Employee, longest, p.MaxConsecutive)
		}
	}
}
