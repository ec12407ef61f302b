// Package constraints 规则库目录
// 面向前端配置界面的只读元数据：每条规则的硬/软属性、所属层级
// 与可调参数。引擎实际装配规则在 pkg/scheduler/constraint/builtin。
package constraints

// ConstraintParam 规则参数定义
type ConstraintParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, string, bool, array
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// ConstraintDefinition 规则定义
type ConstraintDefinition struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Type        string            `json:"type"`           // hard 硬约束, soft 软约束, policy 由策略决定
	Tier        string            `json:"tier,omitempty"` // 软约束所属权重层级
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Params      []ConstraintParam `json:"params"`
}

// LibraryResponse 规则库响应
type LibraryResponse struct {
	Library []ConstraintDefinition `json:"library"`
}

// GetLibrary 获取完整的规则库
func GetLibrary() []ConstraintDefinition {
	return []ConstraintDefinition{
		// =====================================================
		// 硬约束
		// =====================================================
		{
			Name:        "coverage",
			DisplayName: "每人每天一个班次",
			Type:        "hard",
			Category:    "结构保障",
			Description: "排班周期内每名员工每天恰好被安排一个班次（含休息）。",
			Params:      []ConstraintParam{},
		},
		{
			Name:        "zero_ban",
			DisplayName: "禁排班次",
			Type:        "hard",
			Category:    "人数要求",
			Description: "每日最低人数设为 0 的班次默认视为整期禁排，任何一天都不得有人被安排。",
			Params: []ConstraintParam{
				{Name: "zero_means_no_limit", Type: "bool", Description: "0 改为解释成不设下限", Default: "false"},
			},
		},
		{
			Name:        "activity_demand",
			DisplayName: "活动需求下限",
			Type:        "hard",
			Category:    "人数要求",
			Description: "指定日期的指定班次必须达到活动要求的在岗人数，优先级高于一切日常偏好。",
			Params: []ConstraintParam{
				{Name: "day", Type: "int", Description: "活动日期（周期内第几天）", Min: "1"},
				{Name: "shift", Type: "string", Description: "活动占用的班次"},
				{Name: "min_count", Type: "int", Description: "最少在岗人数", Min: "1"},
			},
		},
		{
			Name:        "max_consecutive_days",
			DisplayName: "最大连续工作天数",
			Type:        "policy",
			Tier:        "consecutive_run",
			Category:    "休息保障",
			Description: "限制连续工作天数，按策略作为硬约束或高权重软约束执行。",
			Params: []ConstraintParam{
				{Name: "max_days", Type: "int", Description: "最大连续天数", Default: "6", Min: "1", Max: "14"},
				{Name: "hard", Type: "bool", Description: "是否提升为硬约束", Default: "false"},
			},
		},

		// =====================================================
		// 软约束（按权重层级从高到低）
		// =====================================================
		{
			Name:        "daily_balance",
			DisplayName: "每日人数均衡",
			Type:        "soft",
			Tier:        "daily_volume",
			Category:    "公平性",
			Description: "同一工作班次在各天的在岗人数极差不超过容差。",
			Params: []ConstraintParam{
				{Name: "tolerance", Type: "int", Description: "允许的极差", Default: "1", Min: "0", Max: "10"},
			},
		},
		{
			Name:        "min_staff",
			DisplayName: "每日最低人数",
			Type:        "soft",
			Tier:        "min_staff_shortage",
			Category:    "人数要求",
			Description: "各工作班次每天应达到配置的最低在岗人数，缺口按人数计罚。",
			Params: []ConstraintParam{
				{Name: "min_count", Type: "int", Description: "最低人数", Default: "1", Min: "0", Max: "50"},
			},
		},
		{
			Name:        "rest_target",
			DisplayName: "休息天数目标",
			Type:        "soft",
			Tier:        "rest_deviation",
			Category:    "休息保障",
			Description: "每名员工的休息天数应尽量等于目标值，偏差按天计罚。",
			Params: []ConstraintParam{
				{Name: "mode", Type: "string", Description: "count 按天数 / ratio 按比例", Default: "count"},
				{Name: "count", Type: "int", Description: "目标休息天数", Default: "2", Min: "0"},
			},
		},
		{
			Name:        "rest_request",
			DisplayName: "指定休息日",
			Type:        "soft",
			Tier:        "rest_deviation",
			Category:    "个性化需求",
			Description: "员工指定的休息日应尽量安排休息，每个未满足的指定日计一次违反。",
			Params: []ConstraintParam{
				{Name: "days", Type: "array", Description: "逗号分隔的日期列表（支持全角逗号）"},
			},
		},
		{
			Name:        "night_to_day",
			DisplayName: "晚转早禁止",
			Type:        "soft",
			Tier:        "night_to_day",
			Category:    "休息保障",
			Description: "晚班次日不接早班，含上一周期最后一天到本周期首日的边界。",
			Params: []ConstraintParam{
				{Name: "night_shift", Type: "string", Description: "晚班名称", Default: "晚班"},
				{Name: "day_shift", Type: "string", Description: "早班名称", Default: "早班"},
			},
		},
		{
			Name:        "refused_shift",
			DisplayName: "拒绝班次",
			Type:        "soft",
			Tier:        "refused_shift",
			Category:    "个性化需求",
			Description: "员工声明拒绝的班次应尽量不安排，每次安排计一次违反。",
			Params: []ConstraintParam{
				{Name: "shift", Type: "string", Description: "拒绝的班次"},
			},
		},
		{
			Name:        "period_balance",
			DisplayName: "员工间分配均衡",
			Type:        "soft",
			Tier:        "period_fairness",
			Category:    "公平性",
			Description: "整个周期内同一班次在员工之间的分配次数极差不超过容差。",
			Params: []ConstraintParam{
				{Name: "tolerance", Type: "int", Description: "允许的极差", Default: "1", Min: "0", Max: "10"},
			},
		},
		{
			Name:        "reduced_shift",
			DisplayName: "少排班次",
			Type:        "soft",
			Tier:        "reduced_shift",
			Category:    "个性化需求",
			Description: "员工希望少上的班次按实际安排次数计罚，是权重最低的微调项。",
			Params: []ConstraintParam{
				{Name: "shift", Type: "string", Description: "希望少上的班次"},
			},
		},
	}
}

// GetDefinition 按名称查找规则定义
func GetDefinition(name string) (ConstraintDefinition, bool) {
	for _, def := range GetLibrary() {
		if def.Name == name {
			return def, true
		}
	}
	return ConstraintDefinition{}, false
}
