// Package model 定义排班引擎的核心数据模型
package model

import (
	"strconv"
	"strings"
)

// Employee 员工
// 员工名在名单内必须唯一，一次求解期间不可变
type Employee struct {
	Name    string  `json:"name"`
	Request Request `json:"request"`
}

// Request 员工个性化需求
type Request struct {
	// PrevShift 上一排班周期最后一天所上的班次名
	// 仅用于第0天的晚转早边界检查，空表示未知
	PrevShift string `json:"prev_shift,omitempty"`

	// RestDays 指定休息日（0 起始的天编号，已校验在周期内）
	RestDays []int `json:"rest_days,omitempty"`

	// RefusedShift 拒绝班次（最多一个工作班次，强烈不希望安排）
	RefusedShift string `json:"refused_shift,omitempty"`

	// ReducedShift 少排班次（最多一个工作班次，尽量少安排）
	ReducedShift string `json:"reduced_shift,omitempty"`
}

// HasRestDay 判断是否指定了某天休息
func (r *Request) HasRestDay(day int) bool {
	for _, d := range r.RestDays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseDayList 解析自由文本的天数列表
// 输入为 1 起始的天编号，逗号分隔（兼容全角逗号），输出为去重后的
// 0 起始编号。非数字或超出 [1, numDays] 的条目静默丢弃——这是刻意
// 保留的用户输入宽容策略，不是错误。
func ParseDayList(text string, numDays int) []int {
	text = strings.ReplaceAll(text, "，", ",")

	var days []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		d := n - 1
		if d < 0 || d >= numDays || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days
}
