// Package model 定义排班引擎的核心数据模型
package model

import (
	"strings"

	"github.com/zhipai/zhipai/pkg/errors"
)

// DefaultRestMarker 默认的休息班次识别字符
const DefaultRestMarker = "休"

// ShiftCatalog 班次目录
// 班次按输入顺序编号，其中恰好一个为休息班次（名称包含识别字符）。
// 其余班次均为工作班次。目录一经创建即不可变。
type ShiftCatalog struct {
	names      []string
	restIdx    int
	restMarker string
}

// NewShiftCatalog 创建班次目录
// 目录必须至少包含一个休息班次和一个工作班次
func NewShiftCatalog(names []string, restMarker string) (*ShiftCatalog, error) {
	if restMarker == "" {
		restMarker = DefaultRestMarker
	}

	var cleaned []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			cleaned = append(cleaned, n)
		}
	}

	restIdx := -1
	for i, n := range cleaned {
		if strings.Contains(n, restMarker) {
			restIdx = i
			break
		}
	}
	if restIdx == -1 {
		return nil, errors.InvalidConfig("班次中必须包含休息班次（名称含'" + restMarker + "'）")
	}
	if len(cleaned) < 2 {
		return nil, errors.InvalidConfig("班次中必须至少包含一个工作班次")
	}

	// 班次名必须唯一，否则矩阵列无法区分
	seen := make(map[string]bool, len(cleaned))
	for _, n := range cleaned {
		if seen[n] {
			return nil, errors.InvalidConfig("班次名称重复: " + n)
		}
		seen[n] = true
	}

	return &ShiftCatalog{names: cleaned, restIdx: restIdx, restMarker: restMarker}, nil
}

// Count 返回班次总数（含休息班次）
func (c *ShiftCatalog) Count() int {
	return len(c.names)
}

// Names 返回班次名称列表
func (c *ShiftCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Name 返回指定编号的班次名称
func (c *ShiftCatalog) Name(idx int) string {
	if idx < 0 || idx >= len(c.names) {
		return ""
	}
	return c.names[idx]
}

// RestIndex 返回休息班次的编号
func (c *ShiftCatalog) RestIndex() int {
	return c.restIdx
}

// RestName 返回休息班次的名称
func (c *ShiftCatalog) RestName() string {
	return c.names[c.restIdx]
}

// IsRest 判断编号是否为休息班次
func (c *ShiftCatalog) IsRest(idx int) bool {
	return idx == c.restIdx
}

// IndexOf 根据名称查找班次编号
func (c *ShiftCatalog) IndexOf(name string) (int, bool) {
	for i, n := range c.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// WorkIndexes 返回所有工作班次的编号
func (c *ShiftCatalog) WorkIndexes() []int {
	out := make([]int, 0, len(c.names)-1)
	for i := range c.names {
		if i != c.restIdx {
			out = append(out, i)
		}
	}
	return out
}
