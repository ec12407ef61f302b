// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
)

const dateLayout = "2006-01-02"

// 中文星期名
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "周日",
	time.Monday:    "周一",
	time.Tuesday:   "周二",
	time.Wednesday: "周三",
	time.Thursday:  "周四",
	time.Friday:    "周五",
	time.Saturday:  "周六",
}

// Horizon 排班周期
// 以 0..NumDays-1 的连续天编号覆盖 [StartDate, EndDate]，
// 每天附带仅用于展示的标签（日期+星期）
type Horizon struct {
	StartDate time.Time `json:"start_date"`
	NumDays   int       `json:"num_days"`
}

// NewHorizonFromRange 从日期范围创建排班周期
// end < start 为致命配置错误
func NewHorizonFromRange(startDate, endDate string) (*Horizon, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTimeRange, "开始日期格式无效: "+startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTimeRange, "结束日期格式无效: "+endDate)
	}
	if end.Before(start) {
		return nil, errors.New(errors.CodeInvalidTimeRange,
			fmt.Sprintf("结束日期 %s 早于开始日期 %s", endDate, startDate))
	}

	days := int(end.Sub(start).Hours()/24) + 1
	return &Horizon{StartDate: start, NumDays: days}, nil
}

// NewHorizonFromDays 从开始日期和天数创建排班周期
func NewHorizonFromDays(startDate string, numDays int) (*Horizon, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidTimeRange, "开始日期格式无效: "+startDate)
	}
	if numDays <= 0 {
		return nil, errors.New(errors.CodeInvalidTimeRange,
			fmt.Sprintf("排班天数必须为正数: %d", numDays))
	}
	return &Horizon{StartDate: start, NumDays: numDays}, nil
}

// Date 返回某天的日期
func (h *Horizon) Date(day int) time.Time {
	return h.StartDate.AddDate(0, 0, day)
}

// DateString 返回某天的日期字符串 (YYYY-MM-DD)
func (h *Horizon) DateString(day int) string {
	return h.Date(day).Format(dateLayout)
}

// Label 返回某天的展示标签，如 "01-15 周三"
func (h *Horizon) Label(day int) string {
	d := h.Date(day)
	return fmt.Sprintf("%s %s", d.Format("01-02"), weekdayNames[d.Weekday()])
}

// Labels 返回所有天的展示标签
func (h *Horizon) Labels() []string {
	labels := make([]string, h.NumDays)
	for d := 0; d < h.NumDays; d++ {
		labels[d] = h.Label(d)
	}
	return labels
}

// Contains 判断天编号是否在周期内
func (h *Horizon) Contains(day int) bool {
	return day >= 0 && day < h.NumDays
}
