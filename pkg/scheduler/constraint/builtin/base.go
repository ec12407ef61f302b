// Package builtin 提供内置约束实现
package builtin

import (
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// BaseConstraint 约束基类
type BaseConstraint struct {
	name     string
	typ      constraint.Type
	category constraint.Category
	weight   int
}

// NewBaseConstraint 创建基础约束
func NewBaseConstraint(name string, typ constraint.Type, cat constraint.Category, weight int) *BaseConstraint {
	return &BaseConstraint{
		name:     name,
		typ:      typ,
		category: cat,
		weight:   weight,
	}
}

// Name 返回约束名称
func (c *BaseConstraint) Name() string { return c.name }

// Type 返回约束类型
func (c *BaseConstraint) Type() constraint.Type { return c.typ }

// Category 返回约束类别
func (c *BaseConstraint) Category() constraint.Category { return c.category }

// Weight 返回约束权重
func (c *BaseConstraint) Weight() int { return c.weight }

// severity 根据类别返回违反严重度
func (c *BaseConstraint) severity() string {
	if c.category == constraint.CategoryHard {
		return "error"
	}
	return "warning"
}

// violation 创建违反详情
func (c *BaseConstraint) violation(employee string, day int, message string, penalty, measured, expected int) constraint.ViolationDetail {
	return constraint.ViolationDetail{
		ConstraintType: c.typ,
		ConstraintName: c.name,
		Employee:       employee,
		Day:            day,
		Message:        message,
		Severity:       c.severity(),
		Penalty:        penalty,
		Measured:       measured,
		Expected:       expected,
	}
}

// excessOver 超出阈值的量（"观测值超出容差才计罚"的通用模式）
func excessOver(observed, threshold int) int {
	if observed > threshold {
		return observed - threshold
	}
	return 0
}
