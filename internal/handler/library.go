// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/zhipai/zhipai/internal/constraints"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/scheduler/objective"
)

// LibraryHandler 规则库处理器
type LibraryHandler struct{}

// NewLibraryHandler 创建规则库处理器
func NewLibraryHandler() *LibraryHandler {
	return &LibraryHandler{}
}

// Library 返回规则库目录
func (h *LibraryHandler) Library(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}
	respondJSON(w, http.StatusOK, constraints.LibraryResponse{Library: constraints.GetLibrary()})
}

// Weights 返回默认权重层级表
func (h *LibraryHandler) Weights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	defaults := objective.Default()
	tiers := make([]map[string]interface{}, 0, len(objective.Order()))
	for _, t := range objective.Order() {
		tiers = append(tiers, map[string]interface{}{
			"tier":   t,
			"weight": defaults.Get(t),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"tiers": tiers})
}
