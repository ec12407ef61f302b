package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestSolveHandler() *SolveHandler {
	return NewSolveHandler(2*time.Second, 42)
}

// postSolve 向求解端点发起请求并返回响应
func postSolve(t *testing.T, h *SolveHandler, req *SolveRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Solve(rec, httpReq)
	return rec
}

// decodeErrorBody 解析错误响应体
func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析错误响应失败: %v", err)
	}
	return body
}

func TestSolveHandler_MethodGuard(t *testing.T) {
	h := newTestSolveHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/solve", nil)
	rec := httptest.NewRecorder()
	h.Solve(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, 期望 %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeErrorBody(t, rec)
	if body["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v, 期望 INVALID_INPUT", body["code"])
	}
}

func TestSolveHandler_InvalidJSON(t *testing.T) {
	h := newTestSolveHandler()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(`{"start_date": `))
	rec := httptest.NewRecorder()
	h.Solve(rec, httpReq)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, 期望 %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeErrorBody(t, rec)
	if body["error"] != true {
		t.Error("响应应标记为错误")
	}
	if body["code"] != "INVALID_INPUT" {
		t.Errorf("code = %v, 期望 INVALID_INPUT", body["code"])
	}
}

func TestSolveHandler_InvalidConfig(t *testing.T) {
	h := newTestSolveHandler()
	req := baseRequest()
	req.MinStaff = map[string]int{"中班": 1} // 班次目录中不存在

	rec := postSolve(t, h, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("状态码 = %d, 期望 %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeErrorBody(t, rec)
	if body["code"] != "INVALID_CONFIG" {
		t.Errorf("code = %v, 期望 INVALID_CONFIG", body["code"])
	}
}

func TestSolveHandler_Infeasible(t *testing.T) {
	h := newTestSolveHandler()
	req := baseRequest()
	req.Activities = []ActivityInput{{Day: 1, Shift: "早班", MinCount: 99}} // 远超 3 名员工

	rec := postSolve(t, h, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("状态码 = %d, 期望 %d", rec.Code, http.StatusUnprocessableEntity)
	}
	body := decodeErrorBody(t, rec)
	if body["code"] != "NO_FEASIBLE_SOLUTION" {
		t.Errorf("code = %v, 期望 NO_FEASIBLE_SOLUTION", body["code"])
	}
}

func TestSolveHandler_Success(t *testing.T) {
	h := newTestSolveHandler()
	req := baseRequest()
	req.MinStaff = map[string]int{"早班": 1}
	req.RestTarget = &RestTargetInput{Count: 2}
	req.Options = &SolveOptions{Seed: 42, MaxIterations: 5000}

	rec := postSolve(t, h, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 %d, 响应: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		SolveID string `json:"solve_id"`
		Table   struct {
			DayLabels []string `json:"day_labels"`
			Rows      []struct {
				Employee string `json:"employee"`
			} `json:"rows"`
		} `json:"table"`
		Audit struct {
			Findings []struct {
				Category string `json:"category"`
				Passed   bool   `json:"passed"`
			} `json:"findings"`
		} `json:"audit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析成功响应失败: %v", err)
	}

	if resp.SolveID == "" {
		t.Error("solve_id 不应为空")
	}
	if len(resp.Table.Rows) != 3 {
		t.Errorf("排班表行数 = %d, 期望 3", len(resp.Table.Rows))
	}
	if len(resp.Table.DayLabels) != 7 {
		t.Errorf("天标签数 = %d, 期望 7", len(resp.Table.DayLabels))
	}
	if len(resp.Audit.Findings) == 0 {
		t.Error("审计报告不应为空")
	}
}
