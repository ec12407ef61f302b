// Package builtin 提供内置约束实现
package builtin

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// RestTargetConstraint 休息天数目标约束（软约束）
// 每人的休息天数以 |实际-目标| 的偏差量重罚——概念上接近硬约束，
// 但在活动需求吃掉余量时允许让步。
type RestTargetConstraint struct {
	*BaseConstraint
}

// NewRestTargetConstraint 创建休息目标约束
func NewRestTargetConstraint(weight int) *RestTargetConstraint {
	return &RestTargetConstraint{
		BaseConstraint: NewBaseConstraint(
			"休息天数目标",
			constraint.TypeRestTarget,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *RestTargetConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	target := ctx.Problem.RestTargetDays()
	for e, emp := range ctx.Problem.Employees {
		actual := ctx.RestCount(e)
		deviation := actual - target
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation == 0 {
			continue
		}
		penalty := c.Weight() * deviation
		totalPenalty += penalty
		violations = append(violations, c.violation(
			emp.Name, -1,
			fmt.Sprintf("员工 %s 休息 %d 天，目标 %d 天", emp.Name, actual, target),
			penalty, actual, target,
		))
	}

	return len(violations) == 0, totalPenalty, violations
}

// RestRequestConstraint 指定休息日约束（软约束）
// 员工指定休息的那天若被安排上班，记一次"该休未休"违反。
// 非法的天编号在输入解析阶段已静默丢弃，这里只见到有效编号。
type RestRequestConstraint struct {
	*BaseConstraint
}

// NewRestRequestConstraint 创建指定休息日约束
func NewRestRequestConstraint(weight int) *RestRequestConstraint {
	return &RestRequestConstraint{
		BaseConstraint: NewBaseConstraint(
			"指定休息日",
			constraint.TypeRestRequest,
			constraint.CategorySoft,
			weight,
		),
	}
}

// Evaluate 评估整个排班矩阵
func (c *RestRequestConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	for e, emp := range ctx.Problem.Employees {
		for _, d := range emp.Request.RestDays {
			if !ctx.Problem.Horizon.Contains(d) {
				continue
			}
			if ctx.IsRest(e, d) {
				continue
			}
			totalPenalty += c.Weight()
			violations = append(violations, c.violation(
				emp.Name, d,
				fmt.Sprintf("员工 %s 指定第 %d 天休息，实际被安排 %s",
					emp.Name, d+1, ctx.Problem.Catalog.Name(ctx.Matrix[e][d])),
				c.Weight(), 0, 1,
			))
		}
	}

	return len(violations) == 0, totalPenalty, violations
}

// ConsecutiveConstraint 最大连续工作天数约束
// 对每人每个长度为 maxConsecutive+1 的滑动窗口，窗口内工作天数
// 不得超过 maxConsecutive；每个违反窗口计一次罚。硬/软由策略决定，
// 软形式便于审计报告违反程度而非直接拒解。
// 周期短于 maxConsecutive+1 时不生成任何窗口，规则空满足。
type ConsecutiveConstraint struct {
	*BaseConstraint
	maxConsecutive int
}

// NewConsecutiveConstraint 创建连续工作天数约束
func NewConsecutiveConstraint(maxConsecutive int, cat constraint.Category, weight int) *ConsecutiveConstraint {
	return &ConsecutiveConstraint{
		BaseConstraint: NewBaseConstraint(
			"最大连续工作天数",
			constraint.TypeConsecutive,
			cat,
			weight,
		),
		maxConsecutive: maxConsecutive,
	}
}

// Evaluate 评估整个排班矩阵
func (c *ConsecutiveConstraint) Evaluate(ctx *constraint.Context) (bool, int, []constraint.ViolationDetail) {
	var violations []constraint.ViolationDetail
	totalPenalty := 0

	if c.maxConsecutive <= 0 {
		return true, 0, nil
	}

	numDays := ctx.Problem.NumDays()
	window := c.maxConsecutive + 1
	if numDays < window {
		return true, 0, nil
	}

	for e, emp := range ctx.Problem.Employees {
		for start := 0; start+window <= numDays; start++ {
			workDays := 0
			for d := start; d < start+window; d++ {
				if ctx.IsWork(e, d) {
					workDays++
				}
			}
			if workDays <= c.maxConsecutive {
				continue
			}
			totalPenalty += c.Weight()
			violations = append(violations, c.violation(
				emp.Name, start,
				fmt.Sprintf("员工 %s 第 %d-%d 天连续工作 %d 天，超过上限 %d 天",
					emp.Name, start+1, start+window, workDays, c.maxConsecutive),
				c.Weight(), workDays, c.maxConsecutive,
			))
		}
	}

	return len(violations) == 0, totalPenalty, violations
}
