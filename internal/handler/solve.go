// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/zhipai/zhipai/internal/metrics"
	"github.com/zhipai/zhipai/pkg/audit"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler"
	"github.com/zhipai/zhipai/pkg/scheduler/objective"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
)

// SolveHandler 排班求解处理器
type SolveHandler struct {
	defaultBudget time.Duration
	defaultSeed   int64
}

// NewSolveHandler 创建排班求解处理器
func NewSolveHandler(defaultBudget time.Duration, defaultSeed int64) *SolveHandler {
	if defaultBudget <= 0 {
		defaultBudget = 15 * time.Second
	}
	return &SolveHandler{defaultBudget: defaultBudget, defaultSeed: defaultSeed}
}

// SolveRequest 求解请求
type SolveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	NumDays   int    `json:"num_days,omitempty"` // 与 end_date 二选一

	Shifts     []string `json:"shifts"`
	RestMarker string   `json:"rest_marker,omitempty"` // 默认"休"

	Employees []EmployeeInput `json:"employees"`

	MinStaff   map[string]int   `json:"min_staff,omitempty"`
	RestTarget *RestTargetInput `json:"rest_target,omitempty"`

	MaxConsecutive   int  `json:"max_consecutive,omitempty"`
	ConsecutiveHard  bool `json:"consecutive_hard,omitempty"`
	ZeroMeansNoLimit bool `json:"zero_means_no_limit,omitempty"`

	NightToDay *NightToDayInput `json:"night_to_day,omitempty"`
	Activities []ActivityInput  `json:"activities,omitempty"`

	DailyTolerance  int `json:"daily_tolerance,omitempty"`
	PeriodTolerance int `json:"period_tolerance,omitempty"`

	Weights map[string]int `json:"weights,omitempty"` // 层级名 -> 权重覆盖
	Options *SolveOptions  `json:"options,omitempty"`
}

// EmployeeInput 员工输入
// rest_days 为 1 起始的自由文本（支持全角逗号），无效条目静默丢弃
type EmployeeInput struct {
	Name         string `json:"name"`
	PrevShift    string `json:"prev_shift,omitempty"`
	RestDays     string `json:"rest_days,omitempty"`
	RefusedShift string `json:"refused_shift,omitempty"`
	ReducedShift string `json:"reduced_shift,omitempty"`
}

// RestTargetInput 休息目标输入
type RestTargetInput struct {
	Mode    string `json:"mode,omitempty"` // count / ratio
	Count   int    `json:"count,omitempty"`
	RestPer int    `json:"rest_per,omitempty"`
	WorkPer int    `json:"work_per,omitempty"`
}

// NightToDayInput 晚转早规则输入
type NightToDayInput struct {
	NightShift string `json:"night_shift"`
	DayShift   string `json:"day_shift"`
}

// ActivityInput 活动需求输入（day 为 1 起始）
type ActivityInput struct {
	Day      int    `json:"day"`
	Shift    string `json:"shift"`
	MinCount int    `json:"min_count"`
}

// SolveOptions 求解选项
type SolveOptions struct {
	TimeBudgetSeconds int   `json:"time_budget_seconds,omitempty"`
	MaxIterations     int   `json:"max_iterations,omitempty"`
	Seed              int64 `json:"seed,omitempty"`
}

// Solve 执行排班求解
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	problem, err := BuildProblem(&req)
	if err != nil {
		respondError(w, err)
		return
	}

	opts := solver.DefaultOptions()
	opts.TimeBudget = h.defaultBudget
	opts.Seed = h.defaultSeed
	if req.Options != nil {
		if req.Options.TimeBudgetSeconds > 0 {
			opts.TimeBudget = time.Duration(req.Options.TimeBudgetSeconds) * time.Second
		}
		if req.Options.MaxIterations > 0 {
			opts.MaxIterations = req.Options.MaxIterations
		}
		if req.Options.Seed != 0 {
			opts.Seed = req.Options.Seed
		}
	}

	engineOpts := []scheduler.Option{scheduler.WithSolverOptions(opts)}
	if len(req.Weights) > 0 {
		overrides := make(map[objective.Tier]int, len(req.Weights))
		for name, v := range req.Weights {
			overrides[objective.Tier(name)] = v
		}
		engineOpts = append(engineOpts, scheduler.WithWeights(overrides))
	}

	// 墙钟预算之外再留物化与审计的余量
	solveCtx, cancel := context.WithTimeout(r.Context(), opts.TimeBudget+5*time.Second)
	defer cancel()

	start := time.Now()
	outcome, err := scheduler.NewEngine(engineOpts...).Solve(solveCtx, problem)
	if err != nil {
		metrics.RecordSolve(false, time.Since(start), 0)
		if errors.Is(err, errors.CodeNoFeasibleSolution) {
			metrics.RecordInfeasible(hardFamilies(err))
		}
		respondError(w, err)
		return
	}

	metrics.RecordSolve(true, outcome.Duration, outcome.Penalty)
	recordAuditMetrics(outcome.Audit)
	metrics.SetFairnessGini("workload", outcome.Fairness.WorkloadGini)
	metrics.SetCoverageRate(outcome.Coverage.OverallCoverage)

	respondJSON(w, http.StatusOK, outcome)
}

// hardFamilies 从无可行解错误中提取违反的硬规则族
func hardFamilies(err error) []string {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return nil
	}
	raw, ok := appErr.Fields["hard_families"]
	if !ok {
		return nil
	}
	families, _ := raw.([]string)
	return families
}

// recordAuditMetrics 把审计违反计入指标
func recordAuditMetrics(report *audit.Report) {
	counts := report.CountByCategory()
	if len(counts) == 0 {
		return
	}
	byName := make(map[string]int, len(counts))
	for category, n := range counts {
		byName[string(category)] = n
	}
	metrics.RecordAuditFindings(byName)
}

// BuildProblem 把求解请求装配为问题定义
func BuildProblem(req *SolveRequest) (*model.Problem, error) {
	catalog, err := model.NewShiftCatalog(req.Shifts, req.RestMarker)
	if err != nil {
		return nil, err
	}

	var horizon *model.Horizon
	switch {
	case req.EndDate != "":
		horizon, err = model.NewHorizonFromRange(req.StartDate, req.EndDate)
	case req.NumDays > 0:
		horizon, err = model.NewHorizonFromDays(req.StartDate, req.NumDays)
	default:
		return nil, errors.New(errors.CodeInvalidTimeRange, "必须提供 end_date 或 num_days")
	}
	if err != nil {
		return nil, err
	}

	employees := make([]*model.Employee, 0, len(req.Employees))
	for _, e := range req.Employees {
		employees = append(employees, &model.Employee{
			Name: e.Name,
			Request: model.Request{
				PrevShift:    e.PrevShift,
				RestDays:     model.ParseDayList(e.RestDays, horizon.NumDays),
				RefusedShift: e.RefusedShift,
				ReducedShift: e.ReducedShift,
			},
		})
	}

	problem, err := model.NewProblem(employees, catalog, horizon)
	if err != nil {
		return nil, err
	}

	for name, min := range req.MinStaff {
		problem.MinStaff[name] = min
	}
	if req.RestTarget != nil {
		if req.RestTarget.Mode == "ratio" {
			problem.RestTarget = model.RestTargetRatio(req.RestTarget.RestPer, req.RestTarget.WorkPer)
		} else {
			problem.RestTarget = model.RestTargetCount(req.RestTarget.Count)
		}
	}
	problem.MaxConsecutive = req.MaxConsecutive
	if req.ConsecutiveHard {
		problem.ConsecutivePolicy = model.ConsecutiveHard
	}
	if req.ZeroMeansNoLimit {
		problem.ZeroPolicy = model.ZeroMeansNoLimit
	}
	if req.NightToDay != nil {
		problem.NightToDay = model.NightToDayRule{
			Enabled:    true,
			NightShift: req.NightToDay.NightShift,
			DayShift:   req.NightToDay.DayShift,
		}
	}
	for _, a := range req.Activities {
		problem.Activities = append(problem.Activities, model.ActivityDemand{
			Day:      a.Day - 1,
			Shift:    a.Shift,
			MinCount: a.MinCount,
		})
	}
	problem.DailyTolerance = req.DailyTolerance
	problem.PeriodTolerance = req.PeriodTolerance

	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return problem, nil
}
