// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/internal/repository"
	"github.com/zhipai/zhipai/pkg/errors"
)

// ProfileHandler 排班方案处理器
type ProfileHandler struct {
	repo *repository.ProfileRepository
}

// NewProfileHandler 创建排班方案处理器
func NewProfileHandler(repo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{repo: repo}
}

// Handle 根据方法与路径分发
// 路由形如 /api/v1/profiles 与 /api/v1/profiles/{id}
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/profiles")
	id = strings.Trim(id, "/")

	switch {
	case r.Method == http.MethodPost && id == "":
		h.create(w, r)
	case r.Method == http.MethodGet && id == "":
		h.list(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, id)
	case r.Method == http.MethodPut:
		h.update(w, r, id)
	case r.Method == http.MethodDelete:
		h.delete(w, r, id)
	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "不支持的方法"))
	}
}

// create 创建排班方案
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var profile repository.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if profile.Name == "" {
		respondError(w, errors.InvalidInput("name", "方案名不能为空"))
		return
	}

	if err := h.repo.Create(r.Context(), &profile); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存排班方案失败"))
		return
	}
	respondJSON(w, http.StatusCreated, profile)
}

// get 查询单个排班方案
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		respondError(w, errors.InvalidInput("id", "无效的方案ID格式"))
		return
	}

	profile, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询排班方案失败"))
		return
	}
	if profile == nil {
		respondError(w, errors.New(errors.CodeNotFound, "排班方案不存在"))
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// list 查询排班方案列表
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := repository.DefaultListFilter()
	filter.Search = r.URL.Query().Get("search")
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset >= 0 {
		filter.Offset = offset
	}

	profiles, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询排班方案失败"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"total":    total,
	})
}

// update 更新排班方案
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		respondError(w, errors.InvalidInput("id", "无效的方案ID格式"))
		return
	}

	var profile repository.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	profile.ID = id

	if err := h.repo.Update(r.Context(), &profile); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "更新排班方案失败"))
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// delete 删除排班方案
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		respondError(w, errors.InvalidInput("id", "无效的方案ID格式"))
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "删除排班方案失败"))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
