// Package solver 提供排班求解器
package solver

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// AnnealingSolver 贪心构造 + 模拟退火局部搜索求解器
// 单次有界尝试：在墙钟预算内接受找到的最优可行解；
// 预算耗尽仍有硬约束违反时报告无可行解，不重试。
type AnnealingSolver struct {
	manager *constraint.Manager
	opts    *Options
	logger  *logger.SolverLogger
	rng     *rand.Rand
}

// NewAnnealingSolver 创建退火求解器
func NewAnnealingSolver(cm *constraint.Manager, opts *Options) *AnnealingSolver {
	if opts == nil {
		opts = DefaultOptions()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &AnnealingSolver{
		manager: cm,
		opts:    opts,
		logger:  logger.NewSolverLogger(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Name 返回求解器名称
func (s *AnnealingSolver) Name() string {
	return "AnnealingSolver"
}

// Solve 求解排班
func (s *AnnealingSolver) Solve(ctx context.Context, p *model.Problem) (*Result, error) {
	start := time.Now()

	if err := preCheck(p); err != nil {
		return nil, err
	}

	current := greedyInitial(p)
	currentPenalty := s.manager.Penalty(current)

	best := current.Clone()
	bestPenalty := currentPenalty

	stats := &Statistics{InitialPenalty: currentPenalty}
	tabu := newTabuList(s.opts.TabuSize)
	temperature := s.opts.InitialTemp
	noImprovement := 0

	for i := 0; i < s.opts.MaxIterations; i++ {
		select {
		case <-ctx.Done():
			stats.TimedOut = true
			return s.finish(best, bestPenalty, stats, start)
		default:
		}
		if time.Since(start) > s.opts.TimeBudget {
			stats.TimedOut = true
			break
		}
		stats.Iterations++

		// 生成并评估邻域
		var bestNeighbor *constraint.Context
		bestNeighborPenalty := 0
		for n := 0; n < s.opts.NeighborhoodSize; n++ {
			neighbor := s.mutate(current)
			if neighbor == nil {
				continue
			}
			penalty := s.manager.Penalty(neighbor)
			if bestNeighbor == nil || penalty < bestNeighborPenalty {
				bestNeighbor = neighbor
				bestNeighborPenalty = penalty
			}
		}
		if bestNeighbor == nil {
			continue
		}

		key := hashMatrix(bestNeighbor.Matrix)
		inTabu := tabu.contains(key)

		// 模拟退火接受准则
		accept := false
		if bestNeighborPenalty < currentPenalty {
			accept = true
		} else if !inTabu {
			delta := float64(bestNeighborPenalty - currentPenalty)
			if s.rng.Float64() < boltzmannProbability(delta, temperature) {
				accept = true
			}
		}

		if accept {
			current = bestNeighbor
			currentPenalty = bestNeighborPenalty
			tabu.add(key)

			if currentPenalty < bestPenalty {
				best = current.Clone()
				bestPenalty = currentPenalty
				stats.Improvements++
				noImprovement = 0
			} else {
				noImprovement++
			}
		} else {
			noImprovement++
		}

		if s.opts.PlateauThreshold > 0 && noImprovement >= s.opts.PlateauThreshold {
			break
		}

		temperature *= s.opts.CoolingRate
	}

	return s.finish(best, bestPenalty, stats, start)
}

// finish 评估最终解并组装结果
func (s *AnnealingSolver) finish(best *constraint.Context, bestPenalty int, stats *Statistics, start time.Time) (*Result, error) {
	stats.FinalPenalty = bestPenalty

	evalResult := s.manager.Evaluate(best)
	result := &Result{
		Context:          best,
		ConstraintResult: evalResult,
		Statistics:       stats,
		Duration:         time.Since(start),
		Success:          evalResult.IsValid,
	}

	if !evalResult.IsValid {
		families := s.manager.ViolatedHardFamilies(best)
		result.Message = fmt.Sprintf("存在 %d 个硬约束违反", len(evalResult.HardViolations))
		return result, errors.NoFeasibleSolution(
			"在时间预算内未找到满足全部硬约束的排班", families)
	}

	result.Message = fmt.Sprintf("求解成功，总惩罚 %d", bestPenalty)
	return result, nil
}

// mutate 生成一个邻域解
// 移动类型按权重随机选取，绝不生成被禁排的班次
func (s *AnnealingSolver) mutate(current *constraint.Context) *constraint.Context {
	p := current.Problem
	roll := s.rng.Float64()
	switch {
	case roll < 0.40:
		return s.moveFlip(current, p)
	case roll < 0.70:
		return s.moveSwapEmployees(current, p)
	case roll < 0.90:
		return s.moveSwapDays(current, p)
	default:
		return s.moveRestShift(current, p)
	}
}

// moveFlip 改变一个单元格的班次
func (s *AnnealingSolver) moveFlip(current *constraint.Context, p *model.Problem) *constraint.Context {
	e := s.rng.Intn(p.NumEmployees())
	d := s.rng.Intn(p.NumDays())

	allowed := s.allowedShifts(p, current.Matrix[e][d])
	if len(allowed) == 0 {
		return nil
	}
	neighbor := current.Clone()
	neighbor.Matrix[e][d] = allowed[s.rng.Intn(len(allowed))]
	return neighbor
}

// moveSwapEmployees 交换同一天两名员工的班次
func (s *AnnealingSolver) moveSwapEmployees(current *constraint.Context, p *model.Problem) *constraint.Context {
	if p.NumEmployees() < 2 {
		return nil
	}
	d := s.rng.Intn(p.NumDays())
	e1 := s.rng.Intn(p.NumEmployees())
	e2 := s.rng.Intn(p.NumEmployees())
	if e1 == e2 || current.Matrix[e1][d] == current.Matrix[e2][d] {
		return nil
	}
	neighbor := current.Clone()
	neighbor.Matrix[e1][d], neighbor.Matrix[e2][d] = neighbor.Matrix[e2][d], neighbor.Matrix[e1][d]
	return neighbor
}

// moveSwapDays 交换一名员工两天的班次
func (s *AnnealingSolver) moveSwapDays(current *constraint.Context, p *model.Problem) *constraint.Context {
	if p.NumDays() < 2 {
		return nil
	}
	e := s.rng.Intn(p.NumEmployees())
	d1 := s.rng.Intn(p.NumDays())
	d2 := s.rng.Intn(p.NumDays())
	if d1 == d2 || current.Matrix[e][d1] == current.Matrix[e][d2] {
		return nil
	}
	neighbor := current.Clone()
	neighbor.Matrix[e][d1], neighbor.Matrix[e][d2] = neighbor.Matrix[e][d2], neighbor.Matrix[e][d1]
	return neighbor
}

// moveRestShift 把一名员工的休息日挪到另一天
func (s *AnnealingSolver) moveRestShift(current *constraint.Context, p *model.Problem) *constraint.Context {
	e := s.rng.Intn(p.NumEmployees())

	var restDays, workDays []int
	for d := 0; d < p.NumDays(); d++ {
		if current.IsRest(e, d) {
			restDays = append(restDays, d)
		} else if current.IsWork(e, d) {
			workDays = append(workDays, d)
		}
	}
	if len(restDays) == 0 || len(workDays) == 0 {
		return nil
	}
	rd := restDays[s.rng.Intn(len(restDays))]
	wd := workDays[s.rng.Intn(len(workDays))]

	neighbor := current.Clone()
	neighbor.Matrix[e][rd], neighbor.Matrix[e][wd] = neighbor.Matrix[e][wd], neighbor.Matrix[e][rd]
	return neighbor
}

// allowedShifts 返回可替换到的班次编号（排除当前值与禁排班次）
func (s *AnnealingSolver) allowedShifts(p *model.Problem, currentShift int) []int {
	var allowed []int
	for i := 0; i < p.NumShifts(); i++ {
		if i == currentShift {
			continue
		}
		if !p.Catalog.IsRest(i) && p.IsBanned(p.Catalog.Name(i)) {
			continue
		}
		allowed = append(allowed, i)
	}
	return allowed
}

// boltzmannProbability 模拟退火接受概率
func boltzmannProbability(delta, temperature float64) float64 {
	if delta <= 0 {
		return 1.0
	}
	if temperature <= 0 {
		return 0.0
	}
	return math.Exp(-delta / temperature)
}

// hashMatrix 计算排班矩阵的 FNV-1a 哈希
func hashMatrix(matrix [][]int) uint64 {
	h := fnv.New64a()
	var buf [1]byte
	for _, row := range matrix {
		for _, v := range row {
			buf[0] = byte(v + 1)
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// tabuList 禁忌表（uint64 哈希为键）
type tabuList struct {
	items   map[uint64]struct{}
	order   []uint64
	maxSize int
}

// newTabuList 创建禁忌表
func newTabuList(size int) *tabuList {
	return &tabuList{
		items:   make(map[uint64]struct{}),
		order:   make([]uint64, 0, size),
		maxSize: size,
	}
}

// add 添加到禁忌表
func (t *tabuList) add(key uint64) {
	if _, exists := t.items[key]; exists {
		return
	}
	if len(t.order) >= t.maxSize {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.items, oldest)
	}
	t.items[key] = struct{}{}
	t.order = append(t.order, key)
}

// contains 检查是否在禁忌表中
func (t *tabuList) contains(key uint64) bool {
	_, exists := t.items[key]
	return exists
}
