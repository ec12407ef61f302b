// Package database 提供排班方案库的 PostgreSQL 连接管理
// 方案库只保存求解输入（见 internal/repository），
// 连接不可用时引擎本身不受影响。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/zhipai/zhipai/internal/config"
	"github.com/zhipai/zhipai/internal/metrics"
	"github.com/zhipai/zhipai/pkg/logger"

	_ "github.com/lib/pq" // PostgreSQL 驱动
)

// slowQueryThreshold 慢查询告警阈值
// 方案行携带员工与规则的 JSONB 载荷，正常读写应在几十毫秒内完成
const slowQueryThreshold = 200 * time.Millisecond

// schemaStatements 方案库表结构，启动时幂等执行
// 字段与 repository.Profile 的列一一对应
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		employees JSONB NOT NULL DEFAULT '[]',
		shifts JSONB NOT NULL DEFAULT '[]',
		min_staff JSONB NOT NULL DEFAULT '{}',
		rules JSONB NOT NULL DEFAULT '{}',
		activities JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ
	)`,
	// 软删除后名称可复用
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_name
		ON profiles (name) WHERE deleted_at IS NULL`,
	// 列表按最近更新排序
	`CREATE INDEX IF NOT EXISTS idx_profiles_updated_at
		ON profiles (updated_at DESC)`,
}

// DB 方案库连接封装
type DB struct {
	*sql.DB
	cfg *config.DatabaseConfig
}

// New 创建方案库连接
func New(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开方案库连接失败: %w", err)
	}

	// 配置连接池
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("方案库连接测试失败: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("方案库连接成功")

	return &DB{DB: db, cfg: cfg}, nil
}

// EnsureSchema 建立方案库表结构（幂等）
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("初始化方案库表结构失败: %w", err)
		}
	}
	logger.Info().Msg("方案库表结构就绪")
	return nil
}

// Close 关闭方案库连接
func (db *DB) Close() error {
	if db.DB != nil {
		logger.Info().Msg("关闭方案库连接")
		return db.DB.Close()
	}
	return nil
}

// Health 健康检查，顺带上报连接池指标
func (db *DB) Health(ctx context.Context) error {
	stats := db.DB.Stats()
	metrics.SetDBConnections(stats.InUse, stats.Idle)
	return db.PingContext(ctx)
}

// Transaction 执行事务
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开始事务失败: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("事务回滚失败: %v (原始错误: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("事务提交失败: %w", err)
	}

	return nil
}

// Stats 返回连接池统计信息
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// ExecContext 执行SQL语句
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	logSlowQuery(query, time.Since(start))
	return result, err
}

// QueryContext 执行查询
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	logSlowQuery(query, time.Since(start))
	return rows, err
}

// QueryRowContext 执行单行查询
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

// logSlowQuery 记录超过阈值的查询
func logSlowQuery(query string, duration time.Duration) {
	if duration <= slowQueryThreshold {
		return
	}
	logger.Warn().
		Str("query", truncateQuery(query)).
		Dur("duration", duration).
		Msg("方案库慢查询")
}

// truncateQuery 截断长查询
func truncateQuery(query string) string {
	if len(query) > 200 {
		return query[:200] + "..."
	}
	return query
}
