// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// ZeroBanConstraint 禁排班次约束（硬约束）
// 最低人数被显式配置为 0 的工作班次，任何一天都不得有人被安排——
// 这是"总数恒等于 0"的硬等式，与"未配置最低人数"截然不同。
type ZeroBanConstraint struct {
	*BaseConstraint
}

// NewZeroBanConstraint 创建禁排约束
func NewZeroBanConstraint(weight int) *ZeroBanConstraint {
	return &ZeroBanConstraint{
		BaseConstraint: NewBaseConstraint(
			"禁排班次",
			constraint.TypeZeroBan,
			constraint.CategoryHard,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *ZeroBanConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0
	isValid := true

	p := ctx.Problem
	for _, s := range p.BannedIndexes() {
		name := p.Catalog.Name(s)
		for d := 0; d < p.NumDays(); d++ {
			count := ctx.CountByDayShift(d, s)
			if count == 0 {
				continue
			}
			isValid = false
			penalty := c.Weight() * count
			totalPenalty += penalty
			violations = append(violations, c.violation(
				"", d,
				fmt.Sprintf("班次 %s 已禁排，第 %d 天却安排了 %d 人", name, d+1, count),
				penalty, count, 0,
			))
		}
	}

	return isValid, totalPenalty, violations
}

// ActivityConstraint 活动需求下限约束（硬约束）
// 每条 (天, 班次, 最低人数) 活动需求必须满足，优先级最高，
// 允许其压倒休息目标与晚转早等软规则。
type ActivityConstraint struct {
	*BaseConstraint
}

// NewActivityConstraint 创建活动需求约束
func NewActivityConstraint(weight int) *ActivityConstraint {
	return &ActivityConstraint{
		BaseConstraint: NewBaseConstraint(
			"活动需求下限",
			constraint.TypeActivity,
			constraint.CategoryHard,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *ActivityConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0
	isValid := true

	p := ctx.Problem
	for _, a := range p.Activities {
		s, ok := p.Catalog.IndexOf(a.Shift)
		if !ok {
			continue
		}
		count := ctx.CountByDayShift(a.Day, s)
		if count >= a.MinCount {
			continue
		}
		isValid = false
		shortage := a.MinCount - count
		penalty := c.Weight() * shortage
		totalPenalty += penalty
		violations = append(violations, c.violation(
			"", a.Day,
			fmt.Sprintf("第 %d 天活动需求 %s 需要 %d 人，实际 %d 人", a.Day+1, a.Shift, a.MinCount, count),
			penalty, count, a.MinCount,
		))
	}

	return isValid, totalPenalty, violations
}

// MinStaffConstraint 每日最低人数约束（软约束）
// 对每个 (天, 班次) 以缺口量 max(0, 最低-实际) 线性计罚。
// 设计为软约束：硬化会在需求超过供给时造成整体无解，
// 软化让求解器优雅降级，由审计层报告缺口。
type MinStaffConstraint struct {
	*BaseConstraint
}

// NewMinStaffConstraint 创建每日最低人数约束
func NewMinStaffConstraint(weight int) *MinStaffConstraint {
	return &MinStaffConstraint{
		BaseConstraint: NewBaseConstraint(
			"每日最低人数",
			constraint.TypeMinStaff,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *MinStaffConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	for name, min := range p.MinStaff {
		if min <= 0 {
			// 0 的语义由禁排约束处理，不在此计罚
			continue
		}
		s, ok := p.Catalog.IndexOf(name)
		if !ok {
			continue
		}
		for d := 0; d < p.NumDays(); d++ {
			count := ctx.CountByDayShift(d, s)
			if count >= min {
				continue
			}
			shortage := min - count
			penalty := c.Weight() * shortage
			totalPenalty += penalty
			violations = append(violations, c.violation(
				"", d,
				fmt.Sprintf("第 %d 天班次 %s 最低需要 %d 人，实际 %d 人", d+1, name, min, count),
				penalty, count, min,
			))
		}
	}

	return len(violations) == 0, totalPenalty, violations
}
