// Package objective 定义惩罚权重层级表
// 所有软规则的惩罚按严格递减的权重合并为单一目标值，
// 高层级的一次违反恒比任意低层级违反的总和更昂贵——
// 即"大权重模拟字典序"的近似，并非真正的多目标优化。
package objective

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/errors"
)

// Tier 规则层级
type Tier string

const (
	TierActivityShortfall Tier = "activity_shortfall" // 活动需求缺口（默认为硬约束，权重仅用于修复阶段）
	TierDailyVolume       Tier = "daily_volume"       // 单班次每日人数波动超容差
	TierConsecutiveRun    Tier = "consecutive_run"    // 连续工作窗口违反
	TierMinStaffShortage  Tier = "min_staff_shortage" // 每日最低人数缺口
	TierRestDeviation     Tier = "rest_deviation"     // 休息天数偏离目标
	TierNightToDay        Tier = "night_to_day"       // 晚转早相邻违反
	TierRefusedShift      Tier = "refused_shift"      // 拒绝班次被安排
	TierPeriodFairness    Tier = "period_fairness"    // 员工间分配差距超容差
	TierReducedShift      Tier = "reduced_shift"      // 少排班次的安排次数
)

// Order 返回层级的严格优先序（高优先在前）
func Order() []Tier {
	return []Tier{
		TierActivityShortfall,
		TierDailyVolume,
		TierConsecutiveRun,
		TierMinStaffShortage,
		TierRestDeviation,
		TierNightToDay,
		TierRefusedShift,
		TierPeriodFairness,
		TierReducedShift,
	}
}

// Weights 层级到权重的映射
type Weights map[Tier]int

// Default 返回默认权重表
// 相邻层级固定相差 10 倍：低一层级累计 10 次以上违反才抵得上
// 高一层级的 1 次。超大规模输入仍可能出现层级渗漏，属于该模式
// 的固有近似，必要时可经 Merge 进一步拉大间隔。
func Default() Weights {
	return Weights{
		TierActivityShortfall: 100000000,
		TierDailyVolume:       10000000,
		TierConsecutiveRun:    1000000,
		TierMinStaffShortage:  100000,
		TierRestDeviation:     10000,
		TierNightToDay:        1000,
		TierRefusedShift:      100,
		TierPeriodFairness:    10,
		TierReducedShift:      1,
	}
}

// Get 返回某层级的权重，缺失时回退到默认表
func (w Weights) Get(t Tier) int {
	if v, ok := w[t]; ok {
		return v
	}
	return Default()[t]
}

// Merge 用覆盖值生成新权重表，未覆盖的层级保持不变
func (w Weights) Merge(overrides map[Tier]int) Weights {
	merged := make(Weights, len(w))
	for t, v := range w {
		merged[t] = v
	}
	for t, v := range overrides {
		merged[t] = v
	}
	return merged
}

// Validate 校验权重表沿优先序严格递减且均为正数
func (w Weights) Validate() error {
	prev := 0
	for i, t := range Order() {
		v := w.Get(t)
		if v <= 0 {
			return errors.InvalidConfig(fmt.Sprintf("权重必须为正数: %s=%d", t, v))
		}
		if i > 0 && v >= prev {
			return errors.InvalidConfig(fmt.Sprintf("权重必须沿优先序严格递减: %s=%d 不小于上一层级 %d", t, v, prev))
		}
		prev = v
	}
	return nil
}
