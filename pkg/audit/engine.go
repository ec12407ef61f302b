// Package audit 排班结果审计引擎
package audit

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
)

// Engine 审计引擎
// 只读取问题定义和最终矩阵两份输入，全部指标在此独立重算——
// 指定休息日、连续天数、晚转早等正是求解端容易出差一和重复
// 计数的地方，以矩阵重算为准。对同一矩阵重复运行产生完全相同
// 的报告。
type Engine struct {
	p       *model.Problem
	matrix  [][]int
	restIdx int
	log     *logger.SolverLogger
}

// NewEngine 创建审计引擎
func NewEngine(p *model.Problem, matrix [][]int) *Engine {
	return &Engine{
		p:       p,
		matrix:  matrix,
		restIdx: p.Catalog.RestIndex(),
		log:     logger.NewSolverLogger(),
	}
}

// Run 执行审计，返回按类别有序的报告
func Run(p *model.Problem, matrix [][]int) *Report {
	return NewEngine(p, matrix).Run()
}

// Run 执行审计
func (a *Engine) Run() *Report {
	report := &Report{}
	report.Findings = append(report.Findings, a.auditCoverage()...)
	report.Findings = append(report.Findings, a.auditActivity()...)
	report.Findings = append(report.Findings, a.auditZeroBan()...)
	report.Findings = append(report.Findings, a.auditMinStaff()...)
	report.Findings = append(report.Findings, a.auditRestTarget()...)
	report.Findings = append(report.Findings, a.auditRestRequests()...)
	report.Findings = append(report.Findings, a.auditConsecutive()...)
	report.Findings = append(report.Findings, a.auditNightToDay()...)
	report.Findings = append(report.Findings, a.auditRefused()...)
	report.Findings = append(report.Findings, a.auditReduced()...)
	report.Findings = append(report.Findings, a.auditDailyBalance()...)
	report.Findings = append(report.Findings, a.auditPeriodBalance()...)
	return report
}

// countOn 某天安排在某班次的人数
func (a *Engine) countOn(day, shiftIdx int) int {
	count := 0
	for e := range a.matrix {
		if a.matrix[e][day] == shiftIdx {
			count++
		}
	}
	return count
}

// isWork 员工某天是否上工作班次
func (a *Engine) isWork(e, d int) bool {
	s := a.matrix[e][d]
	return s >= 0 && s != a.restIdx
}

// auditCoverage 每人每天恰好一个班次
func (a *Engine) auditCoverage() []Finding {
	missing := 0
	for e := range a.matrix {
		for d := range a.matrix[e] {
			s := a.matrix[e][d]
			if s < 0 || s >= a.p.NumShifts() {
				missing++
			}
		}
	}
	if missing > 0 {
		return []Finding{{
			Category: CategoryCoverage, Passed: false, Day: -1,
			Measured: missing, Expected: 0,
			Message:  fmt.Sprintf("%d 个单元格没有有效班次", missing),
		}}
	}
	return []Finding{{
		Category: CategoryCoverage, Passed: true, Day: -1,
		Measured: a.p.NumEmployees() * a.p.NumDays(),
		Expected: a.p.NumEmployees() * a.p.NumDays(),
		Message:  "每人每天恰好一个班次",
	}}
}

// auditActivity 活动需求下限
func (a *Engine) auditActivity() []Finding {
	var findings []Finding
	for _, act := range a.p.Activities {
		s, ok := a.p.Catalog.IndexOf(act.Shift)
		if !ok {
			continue
		}
		count := a.countOn(act.Day, s)
		if count >= act.MinCount {
			findings = append(findings, Finding{
				Category: CategoryActivity, Passed: true, Day: act.Day,
				Measured: count, Expected: act.MinCount,
				Message: fmt.Sprintf("第 %d 天活动需求 %s≥%d 满足（实际 %d 人）",
					act.Day+1, act.Shift, act.MinCount, count),
			})
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryActivity, Passed: false, Day: act.Day,
			Measured: count, Expected: act.MinCount,
			Message: fmt.Sprintf("第 %d 天活动需求 %s 需要 %d 人，实际 %d 人",
				act.Day+1, act.Shift, act.MinCount, count),
			Cause: CauseInsufficientStaffing,
		})
	}
	return findings
}

// auditZeroBan 禁排班次
func (a *Engine) auditZeroBan() []Finding {
	var findings []Finding
	for _, s := range a.p.BannedIndexes() {
		name := a.p.Catalog.Name(s)
		total := 0
		firstDay := -1
		for d := 0; d < a.p.NumDays(); d++ {
			if count := a.countOn(d, s); count > 0 {
				total += count
				if firstDay == -1 {
					firstDay = d
				}
			}
		}
		if total == 0 {
			findings = append(findings, Finding{
				Category: CategoryZeroBan, Passed: true, Day: -1,
				Measured: 0, Expected: 0,
				Message: fmt.Sprintf("禁排班次 %s 全程无人被安排", name),
			})
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryZeroBan, Passed: false, Day: firstDay,
			Measured: total, Expected: 0,
			Message: fmt.Sprintf("禁排班次 %s 共被安排 %d 人次", name, total),
		})
	}
	return findings
}

// auditMinStaff 每日最低人数
func (a *Engine) auditMinStaff() []Finding {
	var findings []Finding
	for _, s := range a.p.Catalog.WorkIndexes() {
		name := a.p.Catalog.Name(s)
		min, ok := a.p.MinStaff[name]
		if !ok || min <= 0 {
			continue
		}
		shortDays := 0
		worst := 0
		worstDay := -1
		for d := 0; d < a.p.NumDays(); d++ {
			count := a.countOn(d, s)
			if count >= min {
				continue
			}
			shortDays++
			if min-count > worst {
				worst = min - count
				worstDay = d
			}
		}
		if shortDays == 0 {
			findings = append(findings, Finding{
				Category: CategoryMinStaff, Passed: true, Day: -1,
				Measured: min, Expected: min,
				Message: fmt.Sprintf("班次 %s 每日最低 %d 人全程满足", name, min),
			})
			continue
		}
		f := Finding{
			Category: CategoryMinStaff, Passed: false, Day: worstDay,
			Measured: min - worst, Expected: min,
			Message: fmt.Sprintf("班次 %s 有 %d 天低于最低 %d 人（最差第 %d 天仅 %d 人）",
				name, shortDays, min, worstDay+1, min-worst),
		}
		if a.p.HasActivityOn(worstDay) {
			f.Cause = CauseActivityDemand
		}
		findings = append(findings, f)
	}
	return findings
}

// auditRestTarget 休息天数目标
func (a *Engine) auditRestTarget() []Finding {
	var findings []Finding
	target := a.p.RestTargetDays()
	for e, emp := range a.p.Employees {
		actual := 0
		for d := 0; d < a.p.NumDays(); d++ {
			if a.matrix[e][d] == a.restIdx {
				actual++
			}
		}
		if actual == target {
			findings = append(findings, Finding{
				Category: CategoryRestTarget, Passed: true, Day: -1,
				Employee: emp.Name, Measured: actual, Expected: target,
				Message: fmt.Sprintf("员工 %s 休息 %d 天，达成目标", emp.Name, actual),
			})
			continue
		}
		f := Finding{
			Category: CategoryRestTarget, Passed: false, Day: -1,
			Employee: emp.Name, Measured: actual, Expected: target,
			Message: fmt.Sprintf("员工 %s 休息 %d 天，目标 %d 天", emp.Name, actual, target),
		}
		// 少休且工作日撞上活动需求时归因于活动
		if actual < target {
			for d := 0; d < a.p.NumDays(); d++ {
				if a.isWork(e, d) && a.p.HasActivityOn(d) {
					f.Cause = CauseActivityDemand
					break
				}
			}
		}
		findings = append(findings, f)
	}
	return findings
}

// auditRestRequests 指定休息日
// 每个未休到的指定日恰好记一条违反——既不漏报也不重复计数
func (a *Engine) auditRestRequests() []Finding {
	var findings []Finding
	for e, emp := range a.p.Employees {
		if len(emp.Request.RestDays) == 0 {
			continue
		}
		honored := 0
		for _, d := range emp.Request.RestDays {
			if !a.p.Horizon.Contains(d) {
				continue
			}
			if a.matrix[e][d] == a.restIdx {
				honored++
				continue
			}
			f := Finding{
				Category: CategoryRestRequest, Passed: false, Day: d,
				Employee: emp.Name, Measured: 0, Expected: 1,
				Message: fmt.Sprintf("员工 %s 指定第 %d 天休息，实际被安排 %s",
					emp.Name, d+1, a.p.Catalog.Name(a.matrix[e][d])),
			}
			if a.p.HasActivityOn(d) {
				f.Cause = CauseActivityDemand
			}
			findings = append(findings, f)
		}
		if honored == len(emp.Request.RestDays) {
			findings = append(findings, Finding{
				Category: CategoryRestRequest, Passed: true, Day: -1,
				Employee: emp.Name, Measured: honored, Expected: honored,
				Message: fmt.Sprintf("员工 %s 的 %d 个指定休息日全部满足", emp.Name, honored),
			})
		}
	}
	return findings
}

// auditConsecutive 连续工作超限
// 以连续工作段为单位报告，避免滑动窗口的重叠重复计数；
// 周期短于窗口时规则空满足，任意长度的段都接受
func (a *Engine) auditConsecutive() []Finding {
	max := a.p.MaxConsecutive
	if max <= 0 {
		return nil
	}
	if a.p.NumDays() < max+1 {
		return []Finding{{
			Category: CategoryConsecutive, Passed: true, Day: -1,
			Measured: a.p.NumDays(), Expected: max,
			Message: fmt.Sprintf("周期仅 %d 天，短于窗口 %d 天，规则空满足", a.p.NumDays(), max+1),
		}}
	}

	var findings []Finding
	for e, emp := range a.p.Employees {
		longest := 0
		run := 0
		runStart := -1
		overflowStart := -1
		for d := 0; d <= a.p.NumDays(); d++ {
			working := d < a.p.NumDays() && a.isWork(e, d)
			if working {
				if run == 0 {
					runStart = d
				}
				run++
				if run > longest {
					longest = run
				}
				if run > max && overflowStart == -1 {
					overflowStart = runStart
				}
				continue
			}
			run = 0
		}
		if longest <= max {
			findings = append(findings, Finding{
				Category: CategoryConsecutive, Passed: true, Day: -1,
				Employee: emp.Name, Measured: longest, Expected: max,
				Message: fmt.Sprintf("员工 %s 最长连续工作 %d 天，未超上限 %d 天", emp.Name, longest, max),
			})
			continue
		}
		f := Finding{
			Category: CategoryConsecutive, Passed: false, Day: overflowStart,
			Employee: emp.Name, Measured: longest, Expected: max,
			Message: fmt.Sprintf("员工 %s 自第 %d 天起连续工作 %d 天，超过上限 %d 天",
				emp.Name, overflowStart+1, longest, max),
		}
		for d := overflowStart; d < a.p.NumDays() && a.isWork(e, d); d++ {
			if a.p.HasActivityOn(d) {
				f.Cause = CauseActivityDemand
				break
			}
		}
		findings = append(findings, f)
	}
	return findings
}

// auditNightToDay 晚转早
func (a *Engine) auditNightToDay() []Finding {
	rule := a.p.NightToDay
	if !rule.Enabled {
		return nil
	}
	nightIdx, okN := a.p.Catalog.IndexOf(rule.NightShift)
	dayIdx, okD := a.p.Catalog.IndexOf(rule.DayShift)
	if !okN || !okD {
		return nil
	}

	var findings []Finding
	total := 0
	for e, emp := range a.p.Employees {
		if emp.Request.PrevShift == rule.NightShift && a.matrix[e][0] == dayIdx {
			total++
			findings = append(findings, Finding{
				Category: CategoryNightToDay, Passed: false, Day: 0,
				Employee: emp.Name, Measured: 1, Expected: 0,
				Message: fmt.Sprintf("员工 %s 上期最后一天 %s 后第 1 天被安排 %s",
					emp.Name, rule.NightShift, rule.DayShift),
			})
		}
		for d := 0; d+1 < a.p.NumDays(); d++ {
			if a.matrix[e][d] == nightIdx && a.matrix[e][d+1] == dayIdx {
				total++
				findings = append(findings, Finding{
					Category: CategoryNightToDay, Passed: false, Day: d + 1,
					Employee: emp.Name, Measured: 1, Expected: 0,
					Message: fmt.Sprintf("员工 %s 第 %d 天 %s 后第 %d 天被安排 %s",
						emp.Name, d+1, rule.NightShift, d+2, rule.DayShift),
				})
			}
		}
	}
	if total == 0 {
		return []Finding{{
			Category: CategoryNightToDay, Passed: true, Day: -1,
			Measured: 0, Expected: 0,
			Message: "无晚转早安排",
		}}
	}
	return findings
}

// auditRefused 拒绝班次
func (a *Engine) auditRefused() []Finding {
	var findings []Finding
	for e, emp := range a.p.Employees {
		if emp.Request.RefusedShift == "" {
			continue
		}
		s, ok := a.p.Catalog.IndexOf(emp.Request.RefusedShift)
		if !ok || a.p.Catalog.IsRest(s) {
			continue
		}
		count := 0
		for d := 0; d < a.p.NumDays(); d++ {
			if a.matrix[e][d] == s {
				count++
			}
		}
		if count == 0 {
			findings = append(findings, Finding{
				Category: CategoryRefusedShift, Passed: true, Day: -1,
				Employee: emp.Name, Measured: 0, Expected: 0,
				Message: fmt.Sprintf("员工 %s 的拒绝班次 %s 未被安排", emp.Name, emp.Request.RefusedShift),
			})
			continue
		}
		f := Finding{
			Category: CategoryRefusedShift, Passed: false, Day: -1,
			Employee: emp.Name, Measured: count, Expected: 0,
			Message: fmt.Sprintf("员工 %s 拒绝班次 %s 仍被安排 %d 次",
				emp.Name, emp.Request.RefusedShift, count),
		}
		if a.refusalForced(s) {
			f.Cause = CauseInsufficientStaffing
		}
		findings = append(findings, f)
	}
	return findings
}

// refusalForced 判断拒绝班次违反是否由人手不足所迫：
// 该班次的每日在岗要求超过了未拒绝该班次的员工数
func (a *Engine) refusalForced(shiftIdx int) bool {
	name := a.p.Catalog.Name(shiftIdx)
	nonRefusers := 0
	for _, emp := range a.p.Employees {
		if emp.Request.RefusedShift != name {
			nonRefusers++
		}
	}
	required := a.p.MinStaff[name]
	for d := 0; d < a.p.NumDays(); d++ {
		if floor := a.p.ActivityFloor(d, shiftIdx); floor > required {
			required = floor
		}
	}
	return required > nonRefusers
}

// auditReduced 少排班次
// 信息性结论：只报告实测次数，0 次才算完全满足偏好
func (a *Engine) auditReduced() []Finding {
	var findings []Finding
	for e, emp := range a.p.Employees {
		if emp.Request.ReducedShift == "" {
			continue
		}
		s, ok := a.p.Catalog.IndexOf(emp.Request.ReducedShift)
		if !ok || a.p.Catalog.IsRest(s) {
			continue
		}
		count := 0
		for d := 0; d < a.p.NumDays(); d++ {
			if a.matrix[e][d] == s {
				count++
			}
		}
		findings = append(findings, Finding{
			Category: CategoryReducedShift, Passed: count == 0, Day: -1,
			Employee: emp.Name, Measured: count, Expected: 0,
			Message: fmt.Sprintf("员工 %s 希望少上的 %s 被安排 %d 次",
				emp.Name, emp.Request.ReducedShift, count),
		})
	}
	return findings
}

// auditDailyBalance 单班次每日人数波动
func (a *Engine) auditDailyBalance() []Finding {
	var findings []Finding
	for _, s := range a.p.Catalog.WorkIndexes() {
		name := a.p.Catalog.Name(s)
		if a.p.IsBanned(name) {
			continue
		}
		min, max := -1, 0
		for d := 0; d < a.p.NumDays(); d++ {
			count := a.countOn(d, s)
			if min == -1 || count < min {
				min = count
			}
			if count > max {
				max = count
			}
		}
		spread := max - min
		if spread <= a.p.DailyTolerance {
			findings = append(findings, Finding{
				Category: CategoryDailyBalance, Passed: true, Day: -1,
				Measured: spread, Expected: a.p.DailyTolerance,
				Message: fmt.Sprintf("班次 %s 每日人数极差 %d，在容差 %d 内", name, spread, a.p.DailyTolerance),
			})
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryDailyBalance, Passed: false, Day: -1,
			Measured: spread, Expected: a.p.DailyTolerance,
			Message: fmt.Sprintf("班次 %s 每日人数极差 %d，超出容差 %d", name, spread, a.p.DailyTolerance),
		})
	}
	return findings
}

// auditPeriodBalance 员工间分配差距
func (a *Engine) auditPeriodBalance() []Finding {
	var findings []Finding
	for _, s := range a.p.Catalog.WorkIndexes() {
		name := a.p.Catalog.Name(s)
		if a.p.IsBanned(name) {
			continue
		}
		min, max := -1, 0
		for e := range a.p.Employees {
			count := 0
			for d := 0; d < a.p.NumDays(); d++ {
				if a.matrix[e][d] == s {
					count++
				}
			}
			if min == -1 || count < min {
				min = count
			}
			if count > max {
				max = count
			}
		}
		spread := max - min
		if spread <= a.p.PeriodTolerance {
			findings = append(findings, Finding{
				Category: CategoryPeriodBalance, Passed: true, Day: -1,
				Measured: spread, Expected: a.p.PeriodTolerance,
				Message: fmt.Sprintf("班次 %s 员工间分配极差 %d，在容差 %d 内", name, spread, a.p.PeriodTolerance),
			})
			continue
		}
		findings = append(findings, Finding{
			Category: CategoryPeriodBalance, Passed: false, Day: -1,
			Measured: spread, Expected: a.p.PeriodTolerance,
			Message: fmt.Sprintf("班次 %s 员工间分配极差 %d，超出容差 %d", name, spread, a.p.PeriodTolerance),
		})
	}
	return findings
}
