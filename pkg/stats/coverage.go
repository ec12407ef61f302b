// Package stats 提供排班统计分析功能
package stats

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// CoverageMetrics 覆盖率指标
type CoverageMetrics struct {
	// 整体满足情况
	TotalRequirements     int     `json:"total_requirements"`     // (天, 班次) 人数要求总数
	SatisfiedRequirements int     `json:"satisfied_requirements"` // 已满足的要求数
	OverallCoverage       float64 `json:"overall_coverage"`       // 整体满足率 (%)
	DemandSatisfaction    float64 `json:"demand_satisfaction"`    // 需求满足度（按人次加权）

	// 按日期统计
	DailyCoverage []DayCoverage `json:"daily_coverage"`

	// 按班次统计
	ShiftCoverage map[string]float64 `json:"shift_coverage"` // 各班次的满足率 (%)

	// 问题识别
	Understaffed []UnderstaffedSlot `json:"understaffed"` // 人手不足的 (天, 班次)
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Day          int     `json:"day"` // 0 起始
	Label        string  `json:"label"`
	Requirements int     `json:"requirements"`
	Satisfied    int     `json:"satisfied"`
	CoverageRate float64 `json:"coverage_rate"`
	StaffOnDuty  int     `json:"staff_on_duty"` // 当天在岗总人数
}

// UnderstaffedSlot 人手不足的 (天, 班次)
type UnderstaffedSlot struct {
	Day      int    `json:"day"`
	Shift    string `json:"shift"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Shortage int    `json:"shortage"`
}

// CoverageAnalyzer 覆盖率分析器
// 以每日最低人数和活动需求两者的较大值作为每个 (天, 班次) 的要求
type CoverageAnalyzer struct{}

// NewCoverageAnalyzer 创建覆盖率分析器
func NewCoverageAnalyzer() *CoverageAnalyzer {
	return &CoverageAnalyzer{}
}

// Analyze 分析覆盖率
func (c *CoverageAnalyzer) Analyze(p *model.Problem, matrix [][]int) *CoverageMetrics {
	metrics := &CoverageMetrics{
		ShiftCoverage: make(map[string]float64),
	}
	if p.NumDays() == 0 {
		metrics.OverallCoverage = 100
		metrics.DemandSatisfaction = 100
		return metrics
	}

	restIdx := p.Catalog.RestIndex()
	labels := p.Horizon.Labels()

	shiftTotals := make(map[string]int)
	shiftSatisfied := make(map[string]int)
	totalRequired := 0
	totalFilled := 0

	for d := 0; d < p.NumDays(); d++ {
		day := DayCoverage{Day: d, Label: labels[d]}

		for e := range p.Employees {
			if matrix[e][d] != restIdx {
				day.StaffOnDuty++
			}
		}

		for _, s := range p.Catalog.WorkIndexes() {
			name := p.Catalog.Name(s)
			required := p.MinStaff[name]
			if floor := p.ActivityFloor(d, s); floor > required {
				required = floor
			}
			if required <= 0 {
				continue
			}

			assigned := 0
			for e := range p.Employees {
				if matrix[e][d] == s {
					assigned++
				}
			}

			metrics.TotalRequirements++
			day.Requirements++
			shiftTotals[name]++
			totalRequired += required
			if assigned >= required {
				metrics.SatisfiedRequirements++
				day.Satisfied++
				shiftSatisfied[name]++
				totalFilled += required
			} else {
				totalFilled += assigned
				metrics.Understaffed = append(metrics.Understaffed, UnderstaffedSlot{
					Day:      d,
					Shift:    name,
					Required: required,
					Assigned: assigned,
					Shortage: required - assigned,
				})
			}
		}

		if day.Requirements > 0 {
			day.CoverageRate = float64(day.Satisfied) / float64(day.Requirements) * 100
		} else {
			day.CoverageRate = 100
		}
		metrics.DailyCoverage = append(metrics.DailyCoverage, day)
	}

	if metrics.TotalRequirements > 0 {
		metrics.OverallCoverage = float64(metrics.SatisfiedRequirements) / float64(metrics.TotalRequirements) * 100
	} else {
		metrics.OverallCoverage = 100
	}
	if totalRequired > 0 {
		metrics.DemandSatisfaction = float64(totalFilled) / float64(totalRequired) * 100
	} else {
		metrics.DemandSatisfaction = 100
	}

	for name, total := range shiftTotals {
		if total > 0 {
			metrics.ShiftCoverage[name] = float64(shiftSatisfied[name]) / float64(total) * 100
		}
	}

	return metrics
}
