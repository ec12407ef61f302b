package stats

import (
	"math"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

// newStatsProblem 构造 3 人 6 天的问题定义
// 班次编号：0=早班 1=晚班 2=休
func newStatsProblem(t *testing.T) *model.Problem {
	t.Helper()
	catalog, err := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-01", 6)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	p, err := model.NewProblem([]*model.Employee{
		{Name: "张三"}, {Name: "李四"}, {Name: "王五"},
	}, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	return p
}

func fillMatrix(numEmployees, numDays, fill int) [][]int {
	m := make([][]int, numEmployees)
	for e := range m {
		row := make([]int, numDays)
		for d := range row {
			row[d] = fill
		}
		m[e] = row
	}
	return m
}

func TestFairnessAnalyzer_EqualWorkload(t *testing.T) {
	p := newStatsProblem(t)
	// 全员 6 天早班，工作量完全一致
	matrix := fillMatrix(3, 6, 0)

	m := NewFairnessAnalyzer().Analyze(p, matrix)

	if m.WorkloadGini != 0 {
		t.Errorf("WorkloadGini = %f, 期望 0", m.WorkloadGini)
	}
	if m.WorkloadVariance != 0 {
		t.Errorf("WorkloadVariance = %f, 期望 0", m.WorkloadVariance)
	}
	if m.AvgWorkDays != 6 || m.MaxWorkDays != 6 || m.MinWorkDays != 6 {
		t.Errorf("工作天数统计 = %f/%d/%d, 期望 6/6/6", m.AvgWorkDays, m.MaxWorkDays, m.MinWorkDays)
	}
	if m.WorkDaysRange != 0 {
		t.Errorf("WorkDaysRange = %d, 期望 0", m.WorkDaysRange)
	}
	if m.OverallFairnessScore != 100 {
		t.Errorf("OverallFairnessScore = %f, 期望 100", m.OverallFairnessScore)
	}
	if m.ShiftDistribution["早班"] != 100 {
		t.Errorf("早班分配占比 = %f, 期望 100", m.ShiftDistribution["早班"])
	}
}

func TestFairnessAnalyzer_SkewedWorkload(t *testing.T) {
	p := newStatsProblem(t)
	// 张三全勤，王五全休
	matrix := fillMatrix(3, 6, 0)
	for d := 0; d < 6; d++ {
		matrix[2][d] = 2
	}
	matrix[1][0] = 2

	m := NewFairnessAnalyzer().Analyze(p, matrix)

	if m.WorkloadGini <= 0 {
		t.Errorf("WorkloadGini = %f, 倾斜分配应大于 0", m.WorkloadGini)
	}
	if m.MaxWorkDays != 6 || m.MinWorkDays != 0 {
		t.Errorf("Max/Min = %d/%d, 期望 6/0", m.MaxWorkDays, m.MinWorkDays)
	}
	if m.WorkDaysRange != 6 {
		t.Errorf("WorkDaysRange = %d, 期望 6", m.WorkDaysRange)
	}
	if m.OverallFairnessScore >= 100 {
		t.Errorf("OverallFairnessScore = %f, 倾斜分配不应满分", m.OverallFairnessScore)
	}

	// 员工统计按工作天数降序
	if m.EmployeeStats[0].EmployeeName != "张三" || m.EmployeeStats[0].WorkDays != 6 {
		t.Errorf("EmployeeStats[0] = %+v, 期望张三 6 天", m.EmployeeStats[0])
	}
	if m.EmployeeStats[2].EmployeeName != "王五" || m.EmployeeStats[2].RestDays != 6 {
		t.Errorf("EmployeeStats[2] = %+v, 期望王五休 6 天", m.EmployeeStats[2])
	}
}

func TestFairnessAnalyzer_NightShiftGini(t *testing.T) {
	p := newStatsProblem(t)
	p.NightToDay = model.NightToDayRule{Enabled: true, NightShift: "晚班", DayShift: "早班"}

	// 晚班全部压给张三
	matrix := fillMatrix(3, 6, 0)
	for d := 0; d < 6; d++ {
		matrix[0][d] = 1
	}

	m := NewFairnessAnalyzer().Analyze(p, matrix)
	if m.NightShiftGini <= 0 {
		t.Errorf("NightShiftGini = %f, 集中分配应大于 0", m.NightShiftGini)
	}
	if g, ok := m.ShiftGini["晚班"]; !ok || math.Abs(g-m.NightShiftGini) > 1e-9 {
		t.Errorf("ShiftGini[晚班] = %f, 应与 NightShiftGini %f 一致", g, m.NightShiftGini)
	}
}

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"空列表", nil, 0},
		{"完全均等", []float64{4, 4, 4, 4}, 0},
		{"全为零", []float64{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gini(tt.values); got != tt.want {
				t.Errorf("gini(%v) = %f, 期望 %f", tt.values, got, tt.want)
			}
		})
	}

	t.Run("集中分配高于分散分配", func(t *testing.T) {
		concentrated := gini([]float64{12, 0, 0, 0})
		spread := gini([]float64{4, 3, 3, 2})
		if concentrated <= spread {
			t.Errorf("集中 %f 应大于分散 %f", concentrated, spread)
		}
	})
}

func TestCompareSchedules(t *testing.T) {
	p := newStatsProblem(t)

	fair := fillMatrix(3, 6, 0)
	skewed := fillMatrix(3, 6, 0)
	for d := 0; d < 6; d++ {
		skewed[2][d] = 2
	}

	diff := NewFairnessAnalyzer().CompareSchedules(p, fair, skewed)
	if diff["workload_gini_diff"] <= 0 {
		t.Errorf("workload_gini_diff = %f, 第二方案更不公平应为正", diff["workload_gini_diff"])
	}
	if diff["overall_score_diff"] >= 0 {
		t.Errorf("overall_score_diff = %f, 第二方案评分应更低", diff["overall_score_diff"])
	}
}
