// Package roster 将求解后的矩阵物化为排班表
// 输出是与任何导出格式无关的纯结构化表格：
// 行为员工 + 汇总脚注行，列为天标签 + 汇总列。
// 样式、文件上传、Excel 导出等展示关注点都是本表的下游消费者。
package roster

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// Cell 排班表单元格
// IsRest/IsNight 仅为下游着色提示，不参与任何计算
type Cell struct {
	Shift   string `json:"shift"`
	IsRest  bool   `json:"is_rest,omitempty"`
	IsNight bool   `json:"is_night,omitempty"`
}

// Row 员工行
type Row struct {
	Employee   string         `json:"employee"`
	Cells      []Cell         `json:"cells"`
	ShiftCount map[string]int `json:"shift_count"` // 各班次分配次数
	RestDays   int            `json:"rest_days"`
	WorkDays   int            `json:"work_days"`
}

// FooterRow 汇总脚注行：某班次的每日在岗人数
type FooterRow struct {
	Shift  string `json:"shift"`
	Counts []int  `json:"counts"`
	Total  int    `json:"total"`
}

// Table 排班表
type Table struct {
	DayLabels []string    `json:"day_labels"`
	Rows      []Row       `json:"rows"`
	Footer    []FooterRow `json:"footer"`
}

// Materialize 从求解上下文物化排班表
// 矩阵的稠密编码保证"至多一个班次"，这里守卫另一半：
// 未分配或越界的单元格是内部一致性错误，绝不静默取默认值。
func Materialize(ctx *constraint.Context) (*Table, error) {
	p := ctx.Problem
	numShifts := p.NumShifts()
	nightShift := ""
	if p.NightToDay.Enabled {
		nightShift = p.NightToDay.NightShift
	}

	table := &Table{
		DayLabels: p.Horizon.Labels(),
		Rows:      make([]Row, 0, p.NumEmployees()),
	}

	for e, emp := range p.Employees {
		row := Row{
			Employee:   emp.Name,
			Cells:      make([]Cell, p.NumDays()),
			ShiftCount: make(map[string]int),
		}
		for d := 0; d < p.NumDays(); d++ {
			s := ctx.Matrix[e][d]
			if s < 0 || s >= numShifts {
				return nil, errors.InternalInconsistency(
					fmt.Sprintf("员工 %s 第 %d 天的班次编号无效: %d", emp.Name, d+1, s))
			}
			name := p.Catalog.Name(s)
			row.Cells[d] = Cell{
				Shift:   name,
				IsRest:  p.Catalog.IsRest(s),
				IsNight: nightShift != "" && name == nightShift,
			}
			row.ShiftCount[name]++
			if p.Catalog.IsRest(s) {
				row.RestDays++
			} else {
				row.WorkDays++
			}
		}
		table.Rows = append(table.Rows, row)
	}

	// 脚注：各工作班次的每日在岗人数
	for _, s := range p.Catalog.WorkIndexes() {
		footer := FooterRow{
			Shift:  p.Catalog.Name(s),
			Counts: make([]int, p.NumDays()),
		}
		for d := 0; d < p.NumDays(); d++ {
			count := ctx.CountByDayShift(d, s)
			footer.Counts[d] = count
			footer.Total += count
		}
		table.Footer = append(table.Footer, footer)
	}

	return table, nil
}
