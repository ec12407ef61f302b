// Package model 定义排班引擎的核心数据模型
package model

// ActivityDemand 活动/事件临时需求
// 表示某天某班次的最低在岗人数激增（如促销活动）。
// 活动需求是最高优先级的硬性规则，可以压倒休息目标与晚转早等软规则。
type ActivityDemand struct {
	Day      int    `json:"day"`       // 0 起始的天编号
	Shift    string `json:"shift"`     // 工作班次名
	MinCount int    `json:"min_count"` // 最低在岗人数
}

// ZeroMinimumPolicy 最低人数为 0 时的语义
type ZeroMinimumPolicy string

const (
	// ZeroMeansBan 最低人数为 0 表示绝对禁排（默认，多数变体采用）
	ZeroMeansBan ZeroMinimumPolicy = "ban"
	// ZeroMeansNoLimit 最低人数为 0 表示无要求
	ZeroMeansNoLimit ZeroMinimumPolicy = "no_limit"
)

// ConsecutivePolicy 最大连续工作天数规则的执行方式
type ConsecutivePolicy string

const (
	// ConsecutiveSoft 以重惩罚的软约束执行（默认，便于审计报告违反程度）
	ConsecutiveSoft ConsecutivePolicy = "soft"
	// ConsecutiveHard 以硬约束执行，违反即无可行解
	ConsecutiveHard ConsecutivePolicy = "hard"
)

// NightToDayRule 晚转早禁排规则
// 员工在第 d 天上晚班后，第 d+1 天不得上早班；
// 第 0 天的边界用上期最后班次（Request.PrevShift）代入检查
type NightToDayRule struct {
	Enabled    bool   `json:"enabled"`
	NightShift string `json:"night_shift"`
	DayShift   string `json:"day_shift"`
}

// RestTarget 休息目标
// 显式天数，或按"每工作 WorkPer 天休 RestPer 天"的比例推导
type RestTarget struct {
	Mode    string `json:"mode"` // count / ratio
	Count   int    `json:"count,omitempty"`
	RestPer int    `json:"rest_per,omitempty"`
	WorkPer int    `json:"work_per,omitempty"`
}

// RestTargetCount 显式休息天数目标
func RestTargetCount(n int) RestTarget {
	return RestTarget{Mode: "count", Count: n}
}

// RestTargetRatio 比例休息目标，如 1 休 6 工、2 休 5 工
func RestTargetRatio(restPer, workPer int) RestTarget {
	return RestTarget{Mode: "ratio", RestPer: restPer, WorkPer: workPer}
}

// Days 计算周期内的目标休息天数
// 比例模式按 numDays * rest/(rest+work) 四舍五入
func (t RestTarget) Days(numDays int) int {
	if t.Mode == "ratio" {
		total := t.RestPer + t.WorkPer
		if total <= 0 {
			return 0
		}
		return (numDays*t.RestPer + total/2) / total
	}
	return t.Count
}
