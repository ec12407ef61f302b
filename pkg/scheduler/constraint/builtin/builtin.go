// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/objective"
)

// RegisterAll 根据问题定义向管理器注册全部内置约束
// 权重取自层级表；连续工作天数规则的硬/软由问题策略决定。
func RegisterAll(m *constraint.Manager, p *model.Problem, w objective.Weights) {
	// 硬约束：覆盖、禁排、活动需求
	// 覆盖与禁排没有独立层级，取最高层级权重以保证修复梯度占优
	m.Register(NewCoverageConstraint(w.Get(objective.TierActivityShortfall)))
	m.Register(NewZeroBanConstraint(w.Get(objective.TierActivityShortfall)))
	m.Register(NewActivityConstraint(w.Get(objective.TierActivityShortfall)))

	// 连续工作天数：策略决定硬/软
	if p.MaxConsecutive > 0 {
		cat := constraint.CategorySoft
		if p.ConsecutivePolicy == model.ConsecutiveHard {
			cat = constraint.CategoryHard
		}
		m.Register(NewConsecutiveConstraint(p.MaxConsecutive, cat, w.Get(objective.TierConsecutiveRun)))
	}

	// 软约束
	m.Register(NewMinStaffConstraint(w.Get(objective.TierMinStaffShortage)))
	m.Register(NewRestTargetConstraint(w.Get(objective.TierRestDeviation)))
	m.Register(NewRestRequestConstraint(w.Get(objective.TierRestDeviation)))
	m.Register(NewRefusedShiftConstraint(w.Get(objective.TierRefusedShift)))
	m.Register(NewReducedShiftConstraint(w.Get(objective.TierReducedShift)))
	m.Register(NewDailyBalanceConstraint(p.DailyTolerance, w.Get(objective.TierDailyVolume)))
	m.Register(NewPeriodBalanceConstraint(p.PeriodTolerance, w.Get(objective.TierPeriodFairness)))

	if p.NightToDay.Enabled {
		m.Register(NewNightToDayConstraint(p.NightToDay.NightShift, p.NightToDay.DayShift, w.Get(objective.TierNightToDay)))
	}
}
