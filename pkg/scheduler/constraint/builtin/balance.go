// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// DailyBalanceConstraint 单班次每日人数均衡约束（软约束）
// 对每个工作班次统计各天在岗人数，极差超出容差的部分线性计罚。
// 只抑制超出容差的波动，不追求极差归零。
type DailyBalanceConstraint struct {
	*BaseConstraint
	tolerance int
}

// NewDailyBalanceConstraint 创建每日均衡约束
func NewDailyBalanceConstraint(tolerance, weight int) *DailyBalanceConstraint {
	return &DailyBalanceConstraint{
		BaseConstraint: NewBaseConstraint(
			"每日人数均衡",
			constraint.TypeDailyBalance,
			constraint.CategorySoft,
			weight,
		),
		tolerance: tolerance,
	}
}

// Evaluate 评估整个排班矩阵
func (c *DailyBalanceConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	for _, s := range p.Catalog.WorkIndexes() {
		if p.IsBanned(p.Catalog.Name(s)) {
			continue
		}
		spread := dailySpread(ctx, s)
		excess := excessOver(spread, c.tolerance)
		if excess == 0 {
			continue
		}
		penalty := c.Weight() * excess
		totalPenalty += penalty
		violations = append(violations, c.violation(
			"", -1,
			fmt.Sprintf("班次 %s 每日人数极差 %d，超出容差 %d", p.Catalog.Name(s), spread, c.tolerance),
			penalty, spread, c.tolerance,
		))
	}

	return len(violations) == 0, totalPenalty, violations
}

// PeriodBalanceConstraint 员工间分配均衡约束（软约束）
// 对每个工作班次统计各员工在周期内的分配次数，
// 极差超出容差的部分线性计罚。
type PeriodBalanceConstraint struct {
	*BaseConstraint
	tolerance int
}

// NewPeriodBalanceConstraint 创建员工间均衡约束
func NewPeriodBalanceConstraint(tolerance, weight int) *PeriodBalanceConstraint {
	return &PeriodBalanceConstraint{
		BaseConstraint: NewBaseConstraint(
			"员工间分配均衡",
			constraint.TypePeriodBalance,
			constraint.CategorySoft,
			weight,
		),
		tolerance: tolerance,
	}
}

// Evaluate 评估整个排班矩阵
func (c *PeriodBalanceConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	for _, s := range p.Catalog.WorkIndexes() {
		if p.IsBanned(p.Catalog.Name(s)) {
			continue
		}
		spread := periodSpread(ctx, s)
		excess := excessOver(spread, c.tolerance)
		if excess == 0 {
			continue
		}
		penalty := c.Weight() * excess
		totalPenalty += penalty
		violations = append(violations, c.violation(
			"", -1,
			fmt.Sprintf("班次 %s 员工间分配极差 %d，超出容差 %d", p.Catalog.Name(s), spread, c.tolerance),
			penalty, spread, c.tolerance,
		))
	}

	return len(violations) == 0, totalPenalty, violations
}

// dailySpread 某班次各天在岗人数的极差
func dailySpread(ctx *constraint.Context, shiftIdx int) int {
	numDays := ctx.Problem.NumDays()
	if numDays == 0 {
		return 0
	}
	min, max := -1, 0
	for d := 0; d < numDays; d++ {
		count := ctx.CountByDayShift(d, shiftIdx)
		if min == -1 || count < min {
			min = count
		}
		if count > max {
			max = count
		}
	}
	return max - min
}

// periodSpread 某班次各员工周期分配次数的极差
func periodSpread(ctx *constraint.Context, shiftIdx int) int {
	if ctx.Problem.NumEmployees() == 0 {
		return 0
	}
	min, max := -1, 0
	for e := range ctx.Problem.Employees {
		count := ctx.EmployeeShiftCount(e, shiftIdx)
		if min == -1 || count < min {
			min = count
		}
		if count > max {
			max = count
		}
	}
	return max - min
}
