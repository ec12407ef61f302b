// Package constraint 定义约束接口和管理器
package constraint

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// Type 约束类型标识
type Type string

const (
	// 硬约束类型
	TypeCoverage    Type = "coverage"      // 每人每天恰好一个班次
	TypeZeroBan     Type = "zero_ban"      // 最低人数为0的禁排班次
	TypeActivity    Type = "activity"      // 活动需求下限
	TypeConsecutive Type = "consecutive"   // 最大连续工作天数（可配置硬/软）

	// 软约束类型
	TypeMinStaff       Type = "min_staff"       // 每日最低人数
	TypeRestTarget     Type = "rest_target"     // 休息天数目标
	TypeNightToDay     Type = "night_to_day"    // 晚转早禁排
	TypeRestRequest    Type = "rest_request"    // 指定休息日
	TypeRefusedShift   Type = "refused_shift"   // 拒绝班次
	TypeReducedShift   Type = "reduced_shift"   // 少排班次
	TypeDailyBalance   Type = "daily_balance"   // 单班次每日人数均衡
	TypePeriodBalance  Type = "period_balance"  // 员工间分配均衡
)

// Category 约束类别
type Category string

const (
	CategoryHard Category = "hard" // 硬约束（必须满足）
	CategorySoft Category = "soft" // 软约束（尽量满足）
)

// Constraint 约束接口
type Constraint interface {
	// Name 返回约束名称
	Name() string

	// Type 返回约束类型
	Type() Type

	// Category 返回约束类别
	Category() Category

	// Weight 返回惩罚权重
	Weight() int

	// Evaluate 对当前排班矩阵求值
	// 返回：是否满足、惩罚值、违反详情
	Evaluate(ctx *Context) (valid bool, penalty int, details []ViolationDetail)
}

// ViolationDetail 约束违反详情
type ViolationDetail struct {
	ConstraintType Type   `json:"constraint_type"`
	ConstraintName string `json:"constraint_name"`
	Employee       string `json:"employee,omitempty"`
	Day            int    `json:"day"` // -1 表示不特定于某天
	Message        string `json:"message"`
	Severity       string `json:"severity"` // error/warning
	Penalty        int    `json:"penalty"`
	Measured       int    `json:"measured"`
	Expected       int    `json:"expected"`
}

// Unassigned 矩阵中尚未分配的单元格取值
const Unassigned = -1

// Context 求解上下文
// Matrix[e][d] 为员工 e 第 d 天的班次编号——即布尔变量网格
// x[e,d,s] 的稠密编码，"每人每天恰好一个班次"由表示法本身保证。
// 矩阵是求解期间唯一的可变状态，归属于单次求解调用。
type Context struct {
	Problem *model.Problem
	Matrix  [][]int
}

// NewContext 创建求解上下文，矩阵初始为全部未分配
func NewContext(p *model.Problem) *Context {
	matrix := make([][]int, p.NumEmployees())
	for e := range matrix {
		row := make([]int, p.NumDays())
		for d := range row {
			row[d] = Unassigned
		}
		matrix[e] = row
	}
	return &Context{Problem: p, Matrix: matrix}
}

// Clone 深拷贝上下文（问题定义共享，矩阵独立）
func (c *Context) Clone() *Context {
	matrix := make([][]int, len(c.Matrix))
	for e, row := range c.Matrix {
		cp := make([]int, len(row))
		copy(cp, row)
		matrix[e] = cp
	}
	return &Context{Problem: c.Problem, Matrix: matrix}
}

// Assigned 判断单元格是否已分配
func (c *Context) Assigned(e, d int) bool {
	return c.Matrix[e][d] != Unassigned
}

// IsWork 判断员工某天是否上工作班次
func (c *Context) IsWork(e, d int) bool {
	s := c.Matrix[e][d]
	return s != Unassigned && !c.Problem.Catalog.IsRest(s)
}

// IsRest 判断员工某天是否休息
func (c *Context) IsRest(e, d int) bool {
	return c.Matrix[e][d] == c.Problem.Catalog.RestIndex()
}

// CountByDayShift 统计某天安排在某班次的人数
func (c *Context) CountByDayShift(day, shiftIdx int) int {
	count := 0
	for e := range c.Matrix {
		if c.Matrix[e][day] == shiftIdx {
			count++
		}
	}
	return count
}

// RestCount 统计员工在周期内的休息天数
func (c *Context) RestCount(e int) int {
	count := 0
	for d := range c.Matrix[e] {
		if c.IsRest(e, d) {
			count++
		}
	}
	return count
}

// EmployeeShiftCount 统计员工在周期内某班次的分配次数
func (c *Context) EmployeeShiftCount(e, shiftIdx int) int {
	count := 0
	for d := range c.Matrix[e] {
		if c.Matrix[e][d] == shiftIdx {
			count++
		}
	}
	return count
}

// WorkDayCount 统计员工在周期内的工作天数
func (c *Context) WorkDayCount(e int) int {
	count := 0
	for d := range c.Matrix[e] {
		if c.IsWork(e, d) {
			count++
		}
	}
	return count
}

// WorkRuns 返回员工的连续工作段长度列表（按出现顺序）
func (c *Context) WorkRuns(e int) []int {
	var runs []int
	run := 0
	for d := range c.Matrix[e] {
		if c.IsWork(e, d) {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, run)
			run = 0
		}
	}
	if run > 0 {
		runs = append(runs, run)
	}
	return runs
}

// Result 约束评估结果
type Result struct {
	IsValid        bool              `json:"is_valid"`
	TotalPenalty   int               `json:"total_penalty"`
	HardViolations []ViolationDetail `json:"hard_violations"`
	SoftViolations []ViolationDetail `json:"soft_violations"`
}
