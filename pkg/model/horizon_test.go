package model

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/errors"
)

func TestNewHorizonFromRange(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantDays  int
		expectErr bool
	}{
		{"单日", "2026-03-01", "2026-03-01", 1, false},
		{"一周", "2026-03-01", "2026-03-07", 7, false},
		{"跨月", "2026-02-27", "2026-03-02", 4, false},
		{"结束早于开始", "2026-03-07", "2026-03-01", 0, true},
		{"格式错误", "2026/03/01", "2026-03-07", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHorizonFromRange(tt.start, tt.end)
			if tt.expectErr {
				if err == nil {
					t.Fatal("应返回时间范围错误")
				}
				if !errors.Is(err, errors.CodeInvalidTimeRange) {
					t.Errorf("错误码 = %v, 期望 INVALID_TIME_RANGE", errors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("创建排班周期失败: %v", err)
			}
			if h.NumDays != tt.wantDays {
				t.Errorf("NumDays = %d, 期望 %d", h.NumDays, tt.wantDays)
			}
		})
	}
}

func TestNewHorizonFromDays(t *testing.T) {
	if _, err := NewHorizonFromDays("2026-03-01", 0); err == nil {
		t.Error("天数为 0 应返回错误")
	}
	if _, err := NewHorizonFromDays("bad-date", 7); err == nil {
		t.Error("非法日期应返回错误")
	}

	h, err := NewHorizonFromDays("2026-03-01", 7)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	if h.NumDays != 7 {
		t.Errorf("NumDays = %d, 期望 7", h.NumDays)
	}
	if h.DateString(6) != "2026-03-07" {
		t.Errorf("DateString(6) = %s, 期望 2026-03-07", h.DateString(6))
	}
}

func TestHorizon_Labels(t *testing.T) {
	// 2026-03-02 是周一
	h, err := NewHorizonFromDays("2026-03-02", 3)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}

	labels := h.Labels()
	expected := []string{"03-02 周一", "03-03 周二", "03-04 周三"}
	for i, want := range expected {
		if labels[i] != want {
			t.Errorf("Label(%d) = %s, 期望 %s", i, labels[i], want)
		}
	}

	if !h.Contains(0) || !h.Contains(2) || h.Contains(3) || h.Contains(-1) {
		t.Error("Contains 边界判定错误")
	}
}
