// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// CoverageConstraint 每人每天恰好一个班次（硬约束）
// 稠密矩阵表示法本身保证"至多一个"，这里守卫"至少一个"：
// 未分配的单元格即违反。该约束在任何变体中都不允许放松。
type CoverageConstraint struct {
	*BaseConstraint
}

// NewCoverageConstraint 创建覆盖约束
func NewCoverageConstraint(weight int) *CoverageConstraint {
	return &CoverageConstraint{
		BaseConstraint: NewBaseConstraint(
			"每人每天一个班次",
			constraint.TypeCoverage,
			constraint.CategoryHard,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *CoverageConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0
	isValid := true

	for e, emp := range ctx.Problem.Employees {
		for d := 0; d < ctx.Problem.NumDays(); d++ {
			if ctx.Assigned(e, d) {
				continue
			}
			isValid = false
			totalPenalty += c.Weight()
			violations = append(violations, c.violation(
				emp.Name, d,
				fmt.Sprintf("员工 %s 第 %d 天没有任何班次", emp.Name, d+1),
				c.Weight(), 0, 1,
			))
		}
	}

	return isValid, totalPenalty, violations
}
