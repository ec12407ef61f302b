// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/errors"
)

// Problem 一次求解的完整问题定义
// 经 NewProblem 校验后不可变；求解器不修改其中任何字段。
// 求解期间唯一的可变状态是上下文中的排班矩阵，求解结束后即丢弃。
type Problem struct {
	Employees []*Employee
	Catalog   *ShiftCatalog
	Horizon   *Horizon

	// MinStaff 各工作班次的每日最低在岗人数
	// 取值 0 的语义由 ZeroPolicy 决定（默认为绝对禁排）
	MinStaff map[string]int

	RestTarget     RestTarget
	MaxConsecutive int // 最大连续工作天数，0 表示不限制

	ZeroPolicy        ZeroMinimumPolicy
	ConsecutivePolicy ConsecutivePolicy

	NightToDay NightToDayRule
	Activities []ActivityDemand

	// 均衡容差：超出容差的极差才开始计罚
	DailyTolerance  int // 单班次每日人数波动容差
	PeriodTolerance int // 单班次周期内人均分配差距容差
}

// NewProblem 创建并校验问题定义
// 校验失败返回配置错误（CodeInvalidConfig / CodeInvalidTimeRange），
// 不进行任何求解尝试
func NewProblem(employees []*Employee, catalog *ShiftCatalog, horizon *Horizon) (*Problem, error) {
	if len(employees) == 0 {
		return nil, errors.InvalidConfig("员工名单不能为空")
	}
	if catalog == nil {
		return nil, errors.InvalidConfig("缺少班次目录")
	}
	if horizon == nil {
		return nil, errors.InvalidConfig("缺少排班周期")
	}

	seen := make(map[string]bool, len(employees))
	for _, e := range employees {
		if e.Name == "" {
			return nil, errors.InvalidConfig("员工名不能为空")
		}
		if seen[e.Name] {
			return nil, errors.InvalidConfig("员工名重复: " + e.Name)
		}
		seen[e.Name] = true
	}

	return &Problem{
		Employees:         employees,
		Catalog:           catalog,
		Horizon:           horizon,
		MinStaff:          make(map[string]int),
		RestTarget:        RestTargetCount(0),
		ZeroPolicy:        ZeroMeansBan,
		ConsecutivePolicy: ConsecutiveSoft,
	}, nil
}

// Validate 校验派生配置（在全部字段填充后调用）
func (p *Problem) Validate() error {
	for name := range p.MinStaff {
		idx, ok := p.Catalog.IndexOf(name)
		if !ok {
			return errors.InvalidConfig("最低人数配置引用了未知班次: " + name)
		}
		if p.Catalog.IsRest(idx) {
			return errors.InvalidConfig("休息班次不能配置最低人数: " + name)
		}
	}

	for _, a := range p.Activities {
		if !p.Horizon.Contains(a.Day) {
			return errors.InvalidConfig(fmt.Sprintf("活动需求的天编号超出周期: %d", a.Day))
		}
		idx, ok := p.Catalog.IndexOf(a.Shift)
		if !ok {
			return errors.InvalidConfig("活动需求引用了未知班次: " + a.Shift)
		}
		if p.Catalog.IsRest(idx) {
			return errors.InvalidConfig("活动需求不能指向休息班次: " + a.Shift)
		}
		if a.MinCount < 0 {
			return errors.InvalidConfig(fmt.Sprintf("活动需求人数不能为负: %d", a.MinCount))
		}
	}

	if p.NightToDay.Enabled {
		if _, ok := p.Catalog.IndexOf(p.NightToDay.NightShift); !ok {
			return errors.InvalidConfig("晚转早规则引用了未知晚班: " + p.NightToDay.NightShift)
		}
		if _, ok := p.Catalog.IndexOf(p.NightToDay.DayShift); !ok {
			return errors.InvalidConfig("晚转早规则引用了未知早班: " + p.NightToDay.DayShift)
		}
	}

	target := p.RestTarget.Days(p.Horizon.NumDays)
	if target < 0 || target > p.Horizon.NumDays {
		return errors.InvalidConfig(fmt.Sprintf("休息目标 %d 超出周期天数 %d", target, p.Horizon.NumDays))
	}

	if p.MaxConsecutive < 0 {
		return errors.InvalidConfig("最大连续工作天数不能为负")
	}
	if p.DailyTolerance < 0 || p.PeriodTolerance < 0 {
		return errors.InvalidConfig("均衡容差不能为负")
	}

	return nil
}

// NumEmployees 员工数
func (p *Problem) NumEmployees() int { return len(p.Employees) }

// NumDays 周期天数
func (p *Problem) NumDays() int { return p.Horizon.NumDays }

// NumShifts 班次数（含休息班次）
func (p *Problem) NumShifts() int { return p.Catalog.Count() }

// RestTargetDays 周期内的目标休息天数
func (p *Problem) RestTargetDays() int {
	return p.RestTarget.Days(p.Horizon.NumDays)
}

// IsBanned 判断某工作班次是否被禁排（最低人数为 0 且策略为禁排）
func (p *Problem) IsBanned(shiftName string) bool {
	if p.ZeroPolicy != ZeroMeansBan {
		return false
	}
	min, ok := p.MinStaff[shiftName]
	return ok && min == 0
}

// BannedIndexes 返回所有被禁排的班次编号
func (p *Problem) BannedIndexes() []int {
	var banned []int
	for _, s := range p.Catalog.WorkIndexes() {
		if p.IsBanned(p.Catalog.Name(s)) {
			banned = append(banned, s)
		}
	}
	return banned
}

// ActivityFloor 返回 (day, shiftIdx) 上的活动需求下限，无则为 0
// 同一 (day, shift) 上的多条活动取最大值
func (p *Problem) ActivityFloor(day, shiftIdx int) int {
	floor := 0
	for _, a := range p.Activities {
		if a.Day != day {
			continue
		}
		if idx, ok := p.Catalog.IndexOf(a.Shift); ok && idx == shiftIdx && a.MinCount > floor {
			floor = a.MinCount
		}
	}
	return floor
}

// HasActivityOn 判断某天是否存在活动需求
func (p *Problem) HasActivityOn(day int) bool {
	for _, a := range p.Activities {
		if a.Day == day && a.MinCount > 0 {
			return true
		}
	}
	return false
}
