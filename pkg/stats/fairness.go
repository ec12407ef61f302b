// Package stats 提供排班统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/zhipai/zhipai/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	// 工作量公平性
	WorkloadGini     float64 `json:"workload_gini"`     // 工作天数基尼系数 (0=完全公平, 1=完全不公平)
	WorkloadVariance float64 `json:"workload_variance"` // 工作天数方差
	WorkloadStdDev   float64 `json:"workload_std_dev"`  // 工作天数标准差
	AvgWorkDays      float64 `json:"avg_work_days"`     // 人均工作天数
	MaxWorkDays      int     `json:"max_work_days"`     // 最大工作天数
	MinWorkDays      int     `json:"min_work_days"`     // 最小工作天数
	WorkDaysRange    int     `json:"work_days_range"`   // 工作天数极差

	// 班次分配公平性
	ShiftDistribution map[string]float64 `json:"shift_distribution"` // 各班次占总分配的百分比
	ShiftGini         map[string]float64 `json:"shift_gini"`         // 各班次分配的基尼系数
	NightShiftGini    float64            `json:"night_shift_gini"`   // 夜班分配基尼系数（晚转早规则启用时）

	// 员工级别统计
	EmployeeStats []EmployeeStat `json:"employee_stats"`

	// 综合评分
	OverallFairnessScore float64 `json:"overall_fairness_score"` // 综合公平性评分 (0-100)
}

// EmployeeStat 员工统计
type EmployeeStat struct {
	EmployeeName string         `json:"employee_name"`
	WorkDays     int            `json:"work_days"`
	RestDays     int            `json:"rest_days"`
	ShiftCount   map[string]int `json:"shift_count"`
	Deviation    float64        `json:"deviation"` // 与平均工作天数的偏差百分比
}

// FairnessAnalyzer 公平性分析器
type FairnessAnalyzer struct{}

// NewFairnessAnalyzer 创建公平性分析器
func NewFairnessAnalyzer() *FairnessAnalyzer {
	return &FairnessAnalyzer{}
}

// Analyze 分析排班公平性
func (f *FairnessAnalyzer) Analyze(p *model.Problem, matrix [][]int) *FairnessMetrics {
	if p.NumEmployees() == 0 || p.NumDays() == 0 {
		return &FairnessMetrics{
			ShiftDistribution:    make(map[string]float64),
			ShiftGini:            make(map[string]float64),
			OverallFairnessScore: 100,
		}
	}

	restIdx := p.Catalog.RestIndex()

	// 统计每个员工的数据
	employeeStats := make([]EmployeeStat, 0, p.NumEmployees())
	workDays := make([]float64, 0, p.NumEmployees())
	for e, emp := range p.Employees {
		stat := EmployeeStat{
			EmployeeName: emp.Name,
			ShiftCount:   make(map[string]int),
		}
		for d := 0; d < p.NumDays(); d++ {
			s := matrix[e][d]
			stat.ShiftCount[p.Catalog.Name(s)]++
			if s == restIdx {
				stat.RestDays++
			} else {
				stat.WorkDays++
			}
		}
		employeeStats = append(employeeStats, stat)
		workDays = append(workDays, float64(stat.WorkDays))
	}

	// 基本统计量
	avg := mean(workDays)
	variance := varianceOf(workDays, avg)
	stdDev := math.Sqrt(variance)
	maxW, minW := rangeOf(workDays)

	for i := range employeeStats {
		if avg > 0 {
			employeeStats[i].Deviation = (float64(employeeStats[i].WorkDays) - avg) / avg * 100
		}
	}
	sort.Slice(employeeStats, func(i, j int) bool {
		if employeeStats[i].WorkDays != employeeStats[j].WorkDays {
			return employeeStats[i].WorkDays > employeeStats[j].WorkDays
		}
		return employeeStats[i].EmployeeName < employeeStats[j].EmployeeName
	})

	workloadGini := gini(workDays)

	// 各班次分配的分布与基尼系数
	shiftDist := make(map[string]float64)
	shiftGini := make(map[string]float64)
	totalAssignments := 0
	perShiftCounts := make(map[string][]float64)
	for _, s := range p.Catalog.WorkIndexes() {
		name := p.Catalog.Name(s)
		counts := make([]float64, p.NumEmployees())
		for e := range p.Employees {
			for d := 0; d < p.NumDays(); d++ {
				if matrix[e][d] == s {
					counts[e]++
				}
			}
		}
		perShiftCounts[name] = counts
		for _, c := range counts {
			shiftDist[name] += c
			totalAssignments += int(c)
		}
	}
	for name, counts := range perShiftCounts {
		shiftGini[name] = gini(counts)
		if totalAssignments > 0 {
			shiftDist[name] = shiftDist[name] / float64(totalAssignments) * 100
		}
	}

	nightGini := 0.0
	if p.NightToDay.Enabled {
		if counts, ok := perShiftCounts[p.NightToDay.NightShift]; ok {
			nightGini = gini(counts)
		}
	}

	score := overallScore(workloadGini, nightGini, stdDev, avg)

	return &FairnessMetrics{
		WorkloadGini:         workloadGini,
		WorkloadVariance:     variance,
		WorkloadStdDev:       stdDev,
		AvgWorkDays:          avg,
		MaxWorkDays:          int(maxW),
		MinWorkDays:          int(minW),
		WorkDaysRange:        int(maxW - minW),
		ShiftDistribution:    shiftDist,
		ShiftGini:            shiftGini,
		NightShiftGini:       nightGini,
		EmployeeStats:        employeeStats,
		OverallFairnessScore: score,
	}
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// varianceOf 计算方差
func varianceOf(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// rangeOf 计算极值
func rangeOf(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)
	return math.Max(0, math.Min(1, g))
}

// overallScore 计算综合公平性评分
func overallScore(workloadGini, nightGini, stdDev, avg float64) float64 {
	const (
		workloadWeight = 0.5
		nightWeight    = 0.3
		stdDevWeight   = 0.2
	)

	// 基尼系数转换为分数 (0=100分, 1=0分)
	workloadScore := (1 - workloadGini) * 100
	nightScore := (1 - nightGini) * 100

	// 变异系数越低分数越高
	cvScore := 100.0
	if avg > 0 {
		cv := stdDev / avg
		cvScore = math.Max(0, 100-cv*200)
	}

	score := workloadWeight*workloadScore +
		nightWeight*nightScore +
		stdDevWeight*cvScore

	return math.Max(0, math.Min(100, score))
}

// CompareSchedules 比较两个排班方案的公平性
func (f *FairnessAnalyzer) CompareSchedules(p *model.Problem, matrix1, matrix2 [][]int) map[string]float64 {
	m1 := f.Analyze(p, matrix1)
	m2 := f.Analyze(p, matrix2)

	return map[string]float64{
		"workload_gini_diff":      m2.WorkloadGini - m1.WorkloadGini,
		"night_gini_diff":         m2.NightShiftGini - m1.NightShiftGini,
		"overall_score_diff":      m2.OverallFairnessScore - m1.OverallFairnessScore,
		"schedule1_overall_score": m1.OverallFairnessScore,
		"schedule2_overall_score": m2.OverallFairnessScore,
	}
}
