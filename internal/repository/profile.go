// Package repository 提供数据访问层
// 只持久化排班方案（输入配置），求解产出的排班表不落库，
// 每次由引擎按需重新求解。
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/pkg/model"
)

// Profile 排班方案：一份可复用的完整求解输入
type Profile struct {
	model.BaseModel
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Employees   []ProfileEmployee `json:"employees"`
	Shifts      []string          `json:"shifts"`     // 班次目录，含休息标记
	MinStaff    map[string]int    `json:"min_staff"`  // 各班次每日最低人数
	Rules       model.JSONMap     `json:"rules"`      // 周期、休息目标、策略与权重覆盖
	Activities  []ProfileActivity `json:"activities"` // 活动需求
}

// ProfileEmployee 方案中的员工及其个性化需求
type ProfileEmployee struct {
	Name         string `json:"name"`
	PrevShift    string `json:"prev_shift,omitempty"`
	RestDays     string `json:"rest_days,omitempty"` // 原始文本，求解前再解析
	RefusedShift string `json:"refused_shift,omitempty"`
	ReducedShift string `json:"reduced_shift,omitempty"`
}

// ProfileActivity 方案中的活动需求
type ProfileActivity struct {
	Day      int    `json:"day"`
	Shift    string `json:"shift"`
	MinCount int    `json:"min_count"`
}

// ProfileRepository 排班方案仓储
type ProfileRepository struct {
	db DB
}

// NewProfileRepository 创建排班方案仓储
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create 创建排班方案
func (r *ProfileRepository) Create(ctx context.Context, p *Profile) error {
	if p.ID == uuid.Nil {
		p.BaseModel = model.NewBaseModel()
	} else {
		now := time.Now()
		p.CreatedAt = now
		p.UpdatedAt = now
	}

	employees, err := json.Marshal(p.Employees)
	if err != nil {
		return fmt.Errorf("序列化员工列表失败: %w", err)
	}
	shifts, _ := json.Marshal(p.Shifts)
	minStaff, _ := json.Marshal(p.MinStaff)
	rules, _ := json.Marshal(p.Rules)
	activities, _ := json.Marshal(p.Activities)

	query := `
		INSERT INTO profiles (
			id, name, description, employees, shifts, min_staff, rules, activities,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, employees, shifts, minStaff, rules, activities,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建排班方案失败: %w", err)
	}

	return nil
}

// GetByID 根据ID获取排班方案
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	query := `
		SELECT id, name, description, employees, shifts, min_staff, rules, activities,
			created_at, updated_at
		FROM profiles
		WHERE id = $1 AND deleted_at IS NULL
	`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, id))
}

// GetByName 根据名称获取排班方案
func (r *ProfileRepository) GetByName(ctx context.Context, name string) (*Profile, error) {
	query := `
		SELECT id, name, description, employees, shifts, min_staff, rules, activities,
			created_at, updated_at
		FROM profiles
		WHERE name = $1 AND deleted_at IS NULL
	`

	return r.scanProfile(r.db.QueryRowContext(ctx, query, name))
}

// scanProfile 扫描单行排班方案
func (r *ProfileRepository) scanProfile(row Scanner) (*Profile, error) {
	p := &Profile{}
	var employees, shifts, minStaff, rules, activities []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &employees, &shifts, &minStaff, &rules, &activities,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询排班方案失败: %w", err)
	}

	json.Unmarshal(employees, &p.Employees)
	json.Unmarshal(shifts, &p.Shifts)
	json.Unmarshal(minStaff, &p.MinStaff)
	json.Unmarshal(rules, &p.Rules)
	json.Unmarshal(activities, &p.Activities)

	return p, nil
}

// Update 更新排班方案
func (r *ProfileRepository) Update(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()

	employees, err := json.Marshal(p.Employees)
	if err != nil {
		return fmt.Errorf("序列化员工列表失败: %w", err)
	}
	shifts, _ := json.Marshal(p.Shifts)
	minStaff, _ := json.Marshal(p.MinStaff)
	rules, _ := json.Marshal(p.Rules)
	activities, _ := json.Marshal(p.Activities)

	query := `
		UPDATE profiles SET
			name = $2, description = $3, employees = $4, shifts = $5,
			min_staff = $6, rules = $7, activities = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, employees, shifts, minStaff, rules, activities, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("更新排班方案失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("排班方案不存在")
	}

	return nil
}

// Delete 软删除排班方案
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE profiles SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("删除排班方案失败: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("排班方案不存在")
	}

	return nil
}

// List 查询排班方案列表
func (r *ProfileRepository) List(ctx context.Context, filter ListFilter) ([]*Profile, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	conditions = append(conditions, "deleted_at IS NULL")

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	// 查询总数
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM profiles WHERE %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("查询总数失败: %w", err)
	}

	// 查询列表
	query := fmt.Sprintf(`
		SELECT id, name, description, employees, shifts, min_staff, rules, activities,
			created_at, updated_at
		FROM profiles
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("查询列表失败: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}

	return profiles, total, nil
}
