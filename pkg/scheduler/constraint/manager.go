// Package constraint 定义约束接口和管理器
package constraint

import (
	"sort"
	"sync"

	"github.com/zhipai/zhipai/pkg/logger"
)

// Manager 约束管理器
type Manager struct {
	constraints []Constraint
	mu          sync.RWMutex
	logger      *logger.SolverLogger
}

// NewManager 创建约束管理器
func NewManager() *Manager {
	return &Manager{
		constraints: make([]Constraint, 0),
		logger:      logger.NewSolverLogger(),
	}
}

// Register 注册约束
func (m *Manager) Register(c Constraint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 同类型约束只保留一个
	for i, existing := range m.constraints {
		if existing.Type() == c.Type() {
			m.constraints[i] = c
			return
		}
	}

	m.constraints = append(m.constraints, c)

	// 按类别和权重排序：硬约束在前，权重高的在前
	sort.Slice(m.constraints, func(i, j int) bool {
		ci, cj := m.constraints[i], m.constraints[j]
		if ci.Category() != cj.Category() {
			return ci.Category() == CategoryHard
		}
		return ci.Weight() > cj.Weight()
	})
}

// Unregister 注销约束
func (m *Manager) Unregister(t Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.constraints {
		if c.Type() == t {
			m.constraints = append(m.constraints[:i], m.constraints[i+1:]...)
			return
		}
	}
}

// GetConstraint 获取约束
func (m *Manager) GetConstraint(t Type) Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.constraints {
		if c.Type() == t {
			return c
		}
	}
	return nil
}

// GetAll 获取所有约束
func (m *Manager) GetAll() []Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Constraint, len(m.constraints))
	copy(result, m.constraints)
	return result
}

// GetByCategory 按类别获取约束
func (m *Manager) GetByCategory(cat Category) []Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Constraint
	for _, c := range m.constraints {
		if c.Category() == cat {
			result = append(result, c)
		}
	}
	return result
}

// Evaluate 对排班矩阵评估所有约束
func (m *Manager) Evaluate(ctx *Context) *Result {
	m.mu.RLock()
	constraints := make([]Constraint, len(m.constraints))
	copy(constraints, m.constraints)
	m.mu.RUnlock()

	result := &Result{
		IsValid:        true,
		TotalPenalty:   0,
		HardViolations: make([]ViolationDetail, 0),
		SoftViolations: make([]ViolationDetail, 0),
	}

	for _, c := range constraints {
		valid, penalty, details := c.Evaluate(ctx)
		result.TotalPenalty += penalty

		if valid {
			continue
		}
		for _, d := range details {
			if c.Category() == CategoryHard {
				result.IsValid = false
				result.HardViolations = append(result.HardViolations, d)
			} else {
				result.SoftViolations = append(result.SoftViolations, d)
			}
		}
	}

	return result
}

// Penalty 计算排班矩阵的总惩罚值
// 硬约束违反按其权重计入，使局部搜索在修复阶段也有明确梯度
func (m *Manager) Penalty(ctx *Context) int {
	return m.Evaluate(ctx).TotalPenalty
}

// HardValid 仅检查硬约束是否全部满足
func (m *Manager) HardValid(ctx *Context) bool {
	for _, c := range m.GetByCategory(CategoryHard) {
		if valid, _, _ := c.Evaluate(ctx); !valid {
			return false
		}
	}
	return true
}

// ViolatedHardFamilies 返回被违反的硬约束族名称
// 用于 NoFeasibleSolution 错误的上下文提示
func (m *Manager) ViolatedHardFamilies(ctx *Context) []string {
	var families []string
	for _, c := range m.GetByCategory(CategoryHard) {
		if valid, _, _ := c.Evaluate(ctx); !valid {
			families = append(families, c.Name())
			m.logger.HardViolation(c.Name(), "求解结束后仍未满足")
		}
	}
	return families
}

// Clear 清除所有约束
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = make([]Constraint, 0)
}

// Count 返回约束数量
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.constraints)
}

// Summary 返回约束摘要
func (m *Manager) Summary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hard := 0
	soft := 0
	for _, c := range m.constraints {
		if c.Category() == CategoryHard {
			hard++
		} else {
			soft++
		}
	}

	return map[string]interface{}{
		"total": len(m.constraints),
		"hard":  hard,
		"soft":  soft,
	}
}
