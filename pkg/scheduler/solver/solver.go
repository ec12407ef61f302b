// Package solver 提供排班求解器
package solver

import (
	"context"
	"time"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// Solver 求解器接口
type Solver interface {
	// Solve 在时间预算内求解排班矩阵
	Solve(ctx context.Context, p *model.Problem) (*Result, error)

	// Name 返回求解器名称
	Name() string
}

// Options 求解选项
type Options struct {
	TimeBudget       time.Duration `json:"time_budget"`        // 墙钟时间预算
	MaxIterations    int           `json:"max_iterations"`     // 最大迭代次数
	InitialTemp      float64       `json:"initial_temp"`       // 模拟退火初始温度
	CoolingRate      float64       `json:"cooling_rate"`       // 冷却速率
	TabuSize         int           `json:"tabu_size"`          // 禁忌表大小
	NeighborhoodSize int           `json:"neighborhood_size"`  // 邻域大小
	PlateauThreshold int           `json:"plateau_threshold"`  // 平台期阈值（无改进迭代次数）
	Seed             int64         `json:"seed,omitempty"`     // 随机种子，0 表示按时间取
}

// DefaultOptions 默认求解选项
// 时间预算沿用原型的 15 秒；一次有界尝试，不重试
func DefaultOptions() *Options {
	return &Options{
		TimeBudget:       15 * time.Second,
		MaxIterations:    200000,
		InitialTemp:      100.0,
		CoolingRate:      0.999,
		TabuSize:         200,
		NeighborhoodSize: 12,
		PlateauThreshold: 20000,
	}
}

// Statistics 求解统计
type Statistics struct {
	Iterations     int  `json:"iterations"`
	Improvements   int  `json:"improvements"`
	InitialPenalty int  `json:"initial_penalty"`
	FinalPenalty   int  `json:"final_penalty"`
	TimedOut       bool `json:"timed_out"`
}

// Result 求解结果
type Result struct {
	Context          *constraint.Context `json:"-"`
	ConstraintResult *constraint.Result  `json:"constraint_result"`
	Statistics       *Statistics         `json:"statistics"`
	Duration         time.Duration       `json:"duration"`
	Success          bool                `json:"success"`
	Message          string              `json:"message,omitempty"`
}
