package model

import "testing"

func TestRestTarget_Days(t *testing.T) {
	tests := []struct {
		name    string
		target  RestTarget
		numDays int
		want    int
	}{
		{"显式天数", RestTargetCount(2), 7, 2},
		{"做六休一", RestTargetRatio(1, 6), 7, 1},
		{"做五休二", RestTargetRatio(2, 5), 7, 2},
		{"做五休二跨两周", RestTargetRatio(2, 5), 14, 4},
		{"比例四舍五入", RestTargetRatio(1, 6), 10, 1},
		{"比例分母为零", RestTargetRatio(0, 0), 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Days(tt.numDays); got != tt.want {
				t.Errorf("Days(%d) = %d, 期望 %d", tt.numDays, got, tt.want)
			}
		})
	}
}
