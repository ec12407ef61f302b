// Package scheduler 排班求解引擎的对外入口
// 串起完整流水线：输入校验 -> 约束装配 -> 求解 -> 排班表物化 ->
// 独立审计 -> 统计分析。
package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/pkg/audit"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/roster"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint/builtin"
	"github.com/zhipai/zhipai/pkg/scheduler/objective"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
	"github.com/zhipai/zhipai/pkg/stats"
)

// Outcome 一次求解的完整产出
type Outcome struct {
	SolveID  string                 `json:"solve_id"`
	Table    *roster.Table          `json:"table"`
	Audit    *audit.Report          `json:"audit"`
	Fairness *stats.FairnessMetrics `json:"fairness"`
	Coverage *stats.CoverageMetrics `json:"coverage"`
	Penalty  int                    `json:"penalty"`
	Duration time.Duration          `json:"duration"`
	TimedOut bool                   `json:"timed_out"`
}

// Engine 排班引擎
type Engine struct {
	weights objective.Weights
	opts    *solver.Options
	log     *logger.SolverLogger
}

// Option 引擎配置项
type Option func(*Engine)

// WithWeights 覆盖默认权重表（按层级合并）
func WithWeights(overrides map[objective.Tier]int) Option {
	return func(e *Engine) {
		e.weights = e.weights.Merge(overrides)
	}
}

// WithSolverOptions 覆盖求解器参数
func WithSolverOptions(opts *solver.Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// NewEngine 创建排班引擎
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		weights: objective.Default(),
		opts:    solver.DefaultOptions(),
		log:     logger.NewSolverLogger(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Solve 执行一次完整求解
// 硬约束不可满足时返回无可行解错误，其余失败返回对应的配置或
// 一致性错误。成功时产出的审计报告由独立引擎从最终矩阵重算。
func (e *Engine) Solve(ctx context.Context, p *model.Problem) (*Outcome, error) {
	solveID := uuid.New().String()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := e.weights.Validate(); err != nil {
		return nil, err
	}

	e.log.StartSolve(solveID, p.NumEmployees(), p.NumDays(), p.NumShifts())

	manager := constraint.NewManager()
	builtin.RegisterAll(manager, p, e.weights)

	s := solver.NewAnnealingSolver(manager, e.opts)
	result, err := s.Solve(ctx, p)
	if err != nil {
		if result != nil && !result.Success {
			e.log.Infeasible(solveID, nil)
		}
		return nil, err
	}

	table, err := roster.Materialize(result.Context)
	if err != nil {
		return nil, err
	}

	report := audit.Run(p, result.Context.Matrix)
	e.log.AuditComplete(solveID, len(report.Findings), len(report.Failed()))

	fairness := stats.NewFairnessAnalyzer().Analyze(p, result.Context.Matrix)
	coverage := stats.NewCoverageAnalyzer().Analyze(p, result.Context.Matrix)

	e.log.SolveComplete(solveID, result.Duration, result.Statistics.FinalPenalty, result.Statistics.Iterations)

	return &Outcome{
		SolveID:  solveID,
		Table:    table,
		Audit:    report,
		Fairness: fairness,
		Coverage: coverage,
		Penalty:  result.Statistics.FinalPenalty,
		Duration: result.Duration,
		TimedOut: result.Statistics.TimedOut,
	}, nil
}
