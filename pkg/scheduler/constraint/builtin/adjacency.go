// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// NightToDayConstraint 晚转早禁排约束（软约束）
// 对每人每对相邻天 (d, d+1)，"第 d 天晚班 + 第 d+1 天早班"不得同时
// 成立。第 0 天的边界用上期最后班次代入 d=-1 检查同一规则。
type NightToDayConstraint struct {
	*BaseConstraint
	nightShift string
	dayShift   string
}

// NewNightToDayConstraint 创建晚转早约束
func NewNightToDayConstraint(nightShift, dayShift string, weight int) *NightToDayConstraint {
	return &NightToDayConstraint{
		BaseConstraint: NewBaseConstraint(
			"禁止晚转早",
			constraint.TypeNightToDay,
			constraint.CategorySoft,
			weight,
		),
		nightShift: nightShift,
		dayShift:   dayShift,
	}
}

// Evaluate 评估整个排班矩阵
func (c *NightToDayConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	p := ctx.Problem
	nightIdx, okN := p.Catalog.IndexOf(c.nightShift)
	dayIdx, okD := p.Catalog.IndexOf(c.dayShift)
	if !okN || !okD {
		return true, 0, nil
	}

	for e, emp := range p.Employees {
		// 边界：上期最后一天为晚班且第 0 天为早班
		if emp.Request.PrevShift == c.nightShift && ctx.Matrix[e][0] == dayIdx {
			totalPenalty += c.Weight()
			violations = append(violations, c.violation(
				emp.Name, 0,
				fmt.Sprintf("员工 %s 上期最后一天为 %s，第 1 天被安排 %s", emp.Name, c.nightShift, c.dayShift),
				c.Weight(), 1, 0,
			))
		}

		for d := 0; d+1 < p.NumDays(); d++ {
			if ctx.Matrix[e][d] == nightIdx && ctx.Matrix[e][d+1] == dayIdx {
				totalPenalty += c.Weight()
				violations = append(violations, c.violation(
					emp.Name, d+1,
					fmt.Sprintf("员工 %s 第 %d 天 %s 后第 %d 天被安排 %s",
						emp.Name, d+1, c.nightShift, d+2, c.dayShift),
					c.Weight(), 1, 0,
				))
			}
		}
	}

	return len(violations) == 0, totalPenalty, violations
}
