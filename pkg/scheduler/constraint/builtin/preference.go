// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// RefusedShiftConstraint 拒绝班次约束（软约束）
// 员工拒绝的班次每安排一次记一次重罚——"尽最大努力绝不安排"，
// 但在人手不足被迫时仍可能违反，由审计解释原因。
type RefusedShiftConstraint struct {
	*BaseConstraint
}

// NewRefusedShiftConstraint 创建拒绝班次约束
func NewRefusedShiftConstraint(weight int) *RefusedShiftConstraint {
	return &RefusedShiftConstraint{
		BaseConstraint: NewBaseConstraint(
			"拒绝班次",
			constraint.TypeRefusedShift,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *RefusedShiftConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	for e, emp := range p.Employees {
		if emp.Request.RefusedShift == "" {
			continue
		}
		s, ok := p.Catalog.IndexOf(emp.Request.RefusedShift)
		if !ok || p.Catalog.IsRest(s) {
			// 未知或休息班次的拒绝无意义，静默忽略
			continue
		}
		for d := 0; d < p.NumDays(); d++ {
			if ctx.Matrix[e][d] != s {
				continue
			}
			totalPenalty += c.Weight()
			violations = append(violations, c.violation(
				emp.Name, d,
				fmt.Sprintf("员工 %s 拒绝班次 %s，第 %d 天仍被安排", emp.Name, emp.Request.RefusedShift, d+1),
				c.Weight(), 1, 0,
			))
		}
	}

	return len(violations) == 0, totalPenalty, violations
}

// ReducedShiftConstraint 少排班次约束（软约束）
// 按员工在周期内被安排到少排班次的总次数以低权重线性计罚——
// "希望少上"，不是"不上"。
type ReducedShiftConstraint struct {
	*BaseConstraint
}

// NewReducedShiftConstraint 创建少排班次约束
func NewReducedShiftConstraint(weight int) *ReducedShiftConstraint {
	return &ReducedShiftConstraint{
		BaseConstraint: NewBaseConstraint(
			"少排班次",
			constraint.TypeReducedShift,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *ReducedShiftConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	for e, emp := range p.Employees {
		if emp.Request.ReducedShift == "" {
			continue
		}
		s, ok := p.Catalog.IndexOf(emp.Request.ReducedShift)
		if !ok || p.Catalog.IsRest(s) {
			continue
		}
		count := ctx.EmployeeShiftCount(e, s)
		if count == 0 {
			continue
		}
		penalty := c.Weight() * count
		totalPenalty += penalty
		violations = append(violations, c.violation(
			emp.Name, -1,
			fmt.Sprintf("员工 %s 希望少上 %s，周期内被安排 %d 次", emp.Name, emp.Request.ReducedShift, count),
			penalty, count, 0,
		))
	}

	return len(violations) == 0, totalPenalty, violations
}
