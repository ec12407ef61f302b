// Package solver 提供排班求解器
package solver

import (
	"fmt"
	"sort"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// preCheck 求解前的结构性不可行检测
// 这里只拦截算术上必然冲突的硬约束组合，其余交给搜索
func preCheck(p *model.Problem) error {
	numEmp := p.NumEmployees()

	for _, a := range p.Activities {
		if a.MinCount == 0 {
			continue
		}
		if p.IsBanned(a.Shift) {
			return errors.NoFeasibleSolution(
				fmt.Sprintf("活动需求指向被禁排的班次 %s（第 %d 天）", a.Shift, a.Day+1),
				[]string{"禁排班次", "活动需求下限"},
			)
		}
		if a.MinCount > numEmp {
			return errors.NoFeasibleSolution(
				fmt.Sprintf("第 %d 天活动需求 %s 需要 %d 人，超过员工总数 %d", a.Day+1, a.Shift, a.MinCount, numEmp),
				[]string{"活动需求下限", "每人每天一个班次"},
			)
		}
	}

	// 同一天各班次活动下限之和不能超过员工总数
	for d := 0; d < p.NumDays(); d++ {
		total := 0
		for s := 0; s < p.NumShifts(); s++ {
			total += p.ActivityFloor(d, s)
		}
		if total > numEmp {
			return errors.NoFeasibleSolution(
				fmt.Sprintf("第 %d 天各活动需求合计 %d 人，超过员工总数 %d", d+1, total, numEmp),
				[]string{"活动需求下限", "每人每天一个班次"},
			)
		}
	}

	return nil
}

// candidate 贪心阶段的候选员工打分
type candidate struct {
	emp  int
	cost int
}

// greedyInitial 贪心构造初始解
// 全员先置为休息，再按优先级填充活动需求与每日最低人数，
// 最后把超出休息目标的员工补排到人数最少的班次上。
// 构造只追求一个较好的起点，精修交给局部搜索。
func greedyInitial(p *model.Problem) *constraint.Context {
	ctx := constraint.NewContext(p)
	restIdx := p.Catalog.RestIndex()
	for e := range ctx.Matrix {
		for d := range ctx.Matrix[e] {
			ctx.Matrix[e][d] = restIdx
		}
	}

	target := p.RestTargetDays()

	// 逐天填充需求
	for d := 0; d < p.NumDays(); d++ {
		type need struct {
			shift    int
			count    int
			required bool // 活动需求必须满足
		}
		var needs []need
		for _, s := range p.Catalog.WorkIndexes() {
			name := p.Catalog.Name(s)
			if p.IsBanned(name) {
				continue
			}
			floor := p.ActivityFloor(d, s)
			min := p.MinStaff[name]
			n := min
			if floor > n {
				n = floor
			}
			if n > 0 {
				needs = append(needs, need{shift: s, count: n, required: floor > 0})
			}
		}
		// 活动需求优先，其次人数多的需求
		sort.Slice(needs, func(i, j int) bool {
			if needs[i].required != needs[j].required {
				return needs[i].required
			}
			return needs[i].count > needs[j].count
		})

		for _, n := range needs {
			cands := rankCandidates(ctx, d, n.shift, target)
			assigned := 0
			for _, c := range cands {
				if assigned >= n.count {
					break
				}
				if ctx.Matrix[c.emp][d] != restIdx {
					continue // 当天已有工作班次
				}
				ctx.Matrix[c.emp][d] = n.shift
				assigned++
			}
		}
	}

	// 休息天数超出目标的员工补排工作班次
	topUpWork(ctx, target)

	return ctx
}

// rankCandidates 对 (天, 班次) 的候选员工按代价升序排序
// 代价综合了工作量公平、个性化需求与相邻规则，
// 代价高的员工只有在人手不足时才会被选中
func rankCandidates(ctx *constraint.Context, day, shiftIdx, restTarget int) []candidate {
	p := ctx.Problem
	shiftName := p.Catalog.Name(shiftIdx)
	restIdx := p.Catalog.RestIndex()

	var cands []candidate
	for e, emp := range p.Employees {
		if ctx.Matrix[e][day] != restIdx {
			continue
		}
		cost := ctx.WorkDayCount(e)

		if emp.Request.HasRestDay(day) {
			cost += 500
		}
		if emp.Request.RefusedShift == shiftName {
			cost += 1000
		}
		if emp.Request.ReducedShift == shiftName {
			cost += 50
		}
		// 休息余量不足的员工少排
		if restLeft := ctx.RestCount(e) - restTarget; restLeft <= 0 {
			cost += 200
		}
		// 晚转早
		if p.NightToDay.Enabled && shiftName == p.NightToDay.DayShift {
			prevNight := false
			if day == 0 {
				prevNight = emp.Request.PrevShift == p.NightToDay.NightShift
			} else if idx, ok := p.Catalog.IndexOf(p.NightToDay.NightShift); ok {
				prevNight = ctx.Matrix[e][day-1] == idx
			}
			if prevNight {
				cost += 100
			}
		}
		// 连续工作天数
		if p.MaxConsecutive > 0 && runEndingAt(ctx, e, day-1) >= p.MaxConsecutive {
			cost += 300
		}

		cands = append(cands, candidate{emp: e, cost: cost})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].cost != cands[j].cost {
			return cands[i].cost < cands[j].cost
		}
		return cands[i].emp < cands[j].emp
	})
	return cands
}

// runEndingAt 员工截止到第 day 天（含）的连续工作天数
func runEndingAt(ctx *constraint.Context, e, day int) int {
	run := 0
	for d := day; d >= 0; d-- {
		if !ctx.IsWork(e, d) {
			break
		}
		run++
	}
	return run
}

// topUpWork 把休息天数超出目标的员工补排到人数最少的可用班次
func topUpWork(ctx *constraint.Context, restTarget int) {
	p := ctx.Problem
	restIdx := p.Catalog.RestIndex()

	for e, emp := range p.Employees {
		for ctx.RestCount(e) > restTarget {
			// 选一个未被指定休息的休息日
			day := -1
			for d := 0; d < p.NumDays(); d++ {
				if ctx.Matrix[e][d] == restIdx && !emp.Request.HasRestDay(d) {
					day = d
					break
				}
			}
			if day == -1 {
				break // 全是指定休息日，保留偏差给软约束报告
			}

			// 选当天人数最少的非禁排、非拒绝班次
			best, bestCount := -1, 0
			for _, s := range p.Catalog.WorkIndexes() {
				name := p.Catalog.Name(s)
				if p.IsBanned(name) || emp.Request.RefusedShift == name {
					continue
				}
				count := ctx.CountByDayShift(day, s)
				if best == -1 || count < bestCount {
					best, bestCount = s, count
				}
			}
			if best == -1 {
				break // 无可用工作班次
			}
			ctx.Matrix[e][day] = best
		}
	}
}
