package database

import (
	"strings"
	"testing"
)

func TestSchemaStatements(t *testing.T) {
	ddl := strings.Join(schemaStatements, "\n")

	// 表结构必须覆盖仓储层扫描的全部列
	columns := []string{
		"id", "name", "description", "employees", "shifts",
		"min_staff", "rules", "activities",
		"created_at", "updated_at", "deleted_at",
	}
	for _, col := range columns {
		if !strings.Contains(ddl, col) {
			t.Errorf("表结构缺少字段 %s", col)
		}
	}

	// 软删除后名称可复用
	if !strings.Contains(ddl, "WHERE deleted_at IS NULL") {
		t.Error("名称唯一索引应排除已删除的方案")
	}

	for _, stmt := range schemaStatements {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("建表语句应幂等: %s", stmt)
		}
	}
}

func TestTruncateQuery(t *testing.T) {
	short := "SELECT 1"
	if got := truncateQuery(short); got != short {
		t.Errorf("truncateQuery() = %q, 期望原样返回", got)
	}

	long := strings.Repeat("x", 300)
	got := truncateQuery(long)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("长查询应截断为 200 字符加省略号, 实际长度 %d", len(got))
	}
}
