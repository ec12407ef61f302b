// Package audit 排班结果审计引擎
// 从最终矩阵独立重推每条规则是否成立，不信任求解器的任何内部记账。
package audit

// Category 审计类别
type Category string

const (
	CategoryCoverage       Category = "coverage"        // 每人每天一个班次
	CategoryActivity       Category = "activity"        // 活动需求缺口
	CategoryZeroBan        Category = "zero_ban"        // 禁排班次违反
	CategoryMinStaff       Category = "min_staff"       // 每日最低人数缺口
	CategoryRestTarget     Category = "rest_target"     // 休息天数偏离
	CategoryRestRequest    Category = "rest_request"    // 指定休息日未休
	CategoryConsecutive    Category = "consecutive"     // 连续工作超限
	CategoryNightToDay     Category = "night_to_day"    // 晚转早违反
	CategoryRefusedShift   Category = "refused_shift"   // 拒绝班次被安排
	CategoryReducedShift   Category = "reduced_shift"   // 少排班次统计
	CategoryDailyBalance   Category = "daily_balance"   // 每日人数波动
	CategoryPeriodBalance  Category = "period_balance"  // 员工间分配差距
)

// 常见归因
const (
	CauseActivityDemand       = "活动需求占用了人手"
	CauseInsufficientStaffing = "在岗人数要求超过可用人手"
)

// Finding 审计结论
// 每条结论要么通过（附实测值），要么违反（附实测与期望值，
// 可推导时附归因）
type Finding struct {
	Category Category `json:"category"`
	Passed   bool     `json:"passed"`
	Employee string   `json:"employee,omitempty"`
	Day      int      `json:"day"` // 0 起始，-1 表示不特定于某天
	Measured int      `json:"measured"`
	Expected int      `json:"expected"`
	Message  string   `json:"message"`
	Cause    string   `json:"cause,omitempty"`
}

// Report 审计报告：按类别有序的结论列表
type Report struct {
	Findings []Finding `json:"findings"`
}

// Failed 返回所有违反结论
func (r *Report) Failed() []Finding {
	var failed []Finding
	for _, f := range r.Findings {
		if !f.Passed {
			failed = append(failed, f)
		}
	}
	return failed
}

// CountByCategory 按类别统计违反数
func (r *Report) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, f := range r.Findings {
		if !f.Passed {
			counts[f.Category]++
		}
	}
	return counts
}

// AllPassed 是否全部通过
func (r *Report) AllPassed() bool {
	for _, f := range r.Findings {
		if !f.Passed {
			return false
		}
	}
	return true
}
