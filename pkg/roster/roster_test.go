package roster

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// newRosterContext 构造 2 人 3 天的上下文
// 班次编号：0=早班 1=晚班 2=休
func newRosterContext(t *testing.T) *constraint.Context {
	t.Helper()
	catalog, err := model.NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := model.NewHorizonFromDays("2026-03-02", 3)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	p, err := model.NewProblem([]*model.Employee{{Name: "张三"}, {Name: "李四"}}, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	return constraint.NewContext(p)
}

func TestMaterialize(t *testing.T) {
	ctx := newRosterContext(t)
	ctx.Problem.NightToDay = model.NightToDayRule{Enabled: true, NightShift: "晚班", DayShift: "早班"}
	// 张三: 早 晚 休；李四: 晚 休 早
	ctx.Matrix[0] = []int{0, 1, 2}
	ctx.Matrix[1] = []int{1, 2, 0}

	table, err := Materialize(ctx)
	if err != nil {
		t.Fatalf("物化排班表失败: %v", err)
	}

	t.Run("天标签", func(t *testing.T) {
		if len(table.DayLabels) != 3 {
			t.Fatalf("天标签数 = %d, 期望 3", len(table.DayLabels))
		}
		if table.DayLabels[0] != "03-02 周一" {
			t.Errorf("DayLabels[0] = %s, 期望 03-02 周一", table.DayLabels[0])
		}
	})

	t.Run("员工行", func(t *testing.T) {
		if len(table.Rows) != 2 {
			t.Fatalf("员工行数 = %d, 期望 2", len(table.Rows))
		}
		row := table.Rows[0]
		if row.Employee != "张三" {
			t.Errorf("Employee = %s, 期望 张三", row.Employee)
		}
		if row.Cells[0].Shift != "早班" || row.Cells[2].Shift != "休" {
			t.Errorf("单元格班次错误: %+v", row.Cells)
		}
		if !row.Cells[2].IsRest || row.Cells[0].IsRest {
			t.Error("休息标记错误")
		}
		if !row.Cells[1].IsNight || row.Cells[0].IsNight {
			t.Error("晚班标记错误")
		}
		if row.WorkDays != 2 || row.RestDays != 1 {
			t.Errorf("WorkDays/RestDays = %d/%d, 期望 2/1", row.WorkDays, row.RestDays)
		}
		if row.ShiftCount["早班"] != 1 || row.ShiftCount["晚班"] != 1 || row.ShiftCount["休"] != 1 {
			t.Errorf("ShiftCount = %v", row.ShiftCount)
		}
	})

	t.Run("脚注汇总", func(t *testing.T) {
		if len(table.Footer) != 2 {
			t.Fatalf("脚注行数 = %d, 期望 2（休息班次不计）", len(table.Footer))
		}
		early := table.Footer[0]
		if early.Shift != "早班" {
			t.Errorf("脚注班次 = %s, 期望 早班", early.Shift)
		}
		want := []int{1, 0, 1}
		for d, n := range want {
			if early.Counts[d] != n {
				t.Errorf("早班第 %d 天人数 = %d, 期望 %d", d+1, early.Counts[d], n)
			}
		}
		if early.Total != 2 {
			t.Errorf("早班合计 = %d, 期望 2", early.Total)
		}
	})
}

func TestMaterialize_InvalidCell(t *testing.T) {
	tests := []struct {
		name  string
		value int
	}{
		{"未分配单元格", constraint.Unassigned},
		{"越界班次编号", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newRosterContext(t)
			ctx.Matrix[0] = []int{0, tt.value, 2}
			ctx.Matrix[1] = []int{1, 2, 0}

			_, err := Materialize(ctx)
			if err == nil {
				t.Fatal("应返回内部一致性错误")
			}
			if !errors.Is(err, errors.CodeInternalInconsistency) {
				t.Errorf("错误码 = %v, 期望 INTERNAL_INCONSISTENCY", errors.GetCode(err))
			}
		})
	}
}
