package model

import "testing"

func newTestProblem(t *testing.T) *Problem {
	t.Helper()
	catalog, err := NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	if err != nil {
		t.Fatalf("创建班次目录失败: %v", err)
	}
	horizon, err := NewHorizonFromDays("2026-03-01", 7)
	if err != nil {
		t.Fatalf("创建排班周期失败: %v", err)
	}
	employees := []*Employee{
		{Name: "张三"},
		{Name: "李四"},
		{Name: "王五"},
	}
	p, err := NewProblem(employees, catalog, horizon)
	if err != nil {
		t.Fatalf("创建问题定义失败: %v", err)
	}
	return p
}

func TestNewProblem(t *testing.T) {
	catalog, _ := NewShiftCatalog([]string{"早班", "晚班", "休"}, "")
	horizon, _ := NewHorizonFromDays("2026-03-01", 7)

	if _, err := NewProblem(nil, catalog, horizon); err == nil {
		t.Error("空员工名单应返回错误")
	}

	dup := []*Employee{{Name: "张三"}, {Name: "张三"}}
	if _, err := NewProblem(dup, catalog, horizon); err == nil {
		t.Error("重复员工名应返回错误")
	}

	blank := []*Employee{{Name: ""}}
	if _, err := NewProblem(blank, catalog, horizon); err == nil {
		t.Error("空员工名应返回错误")
	}
}

func TestProblem_Validate(t *testing.T) {
	t.Run("未知班次的最低人数", func(t *testing.T) {
		p := newTestProblem(t)
		p.MinStaff["中班"] = 1
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("休息班次的最低人数", func(t *testing.T) {
		p := newTestProblem(t)
		p.MinStaff["休"] = 1
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("活动需求越界", func(t *testing.T) {
		p := newTestProblem(t)
		p.Activities = []ActivityDemand{{Day: 10, Shift: "早班", MinCount: 1}}
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("活动需求指向休息班次", func(t *testing.T) {
		p := newTestProblem(t)
		p.Activities = []ActivityDemand{{Day: 1, Shift: "休", MinCount: 1}}
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("晚转早引用未知班次", func(t *testing.T) {
		p := newTestProblem(t)
		p.NightToDay = NightToDayRule{Enabled: true, NightShift: "大夜班", DayShift: "早班"}
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("休息目标超出周期", func(t *testing.T) {
		p := newTestProblem(t)
		p.RestTarget = RestTargetCount(8)
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("负容差", func(t *testing.T) {
		p := newTestProblem(t)
		p.DailyTolerance = -1
		if err := p.Validate(); err == nil {
			t.Error("应返回配置错误")
		}
	})

	t.Run("合法配置", func(t *testing.T) {
		p := newTestProblem(t)
		p.MinStaff["早班"] = 1
		p.RestTarget = RestTargetCount(2)
		p.Activities = []ActivityDemand{{Day: 3, Shift: "晚班", MinCount: 2}}
		p.NightToDay = NightToDayRule{Enabled: true, NightShift: "晚班", DayShift: "早班"}
		if err := p.Validate(); err != nil {
			t.Errorf("合法配置不应报错: %v", err)
		}
	})
}

func TestProblem_Banned(t *testing.T) {
	p := newTestProblem(t)
	p.MinStaff["晚班"] = 0

	if !p.IsBanned("晚班") {
		t.Error("最低人数为 0 默认应禁排")
	}
	if p.IsBanned("早班") {
		t.Error("未配置的班次不应被禁排")
	}

	banned := p.BannedIndexes()
	if len(banned) != 1 || banned[0] != 1 {
		t.Errorf("BannedIndexes() = %v, 期望 [1]", banned)
	}

	p.ZeroPolicy = ZeroMeansNoLimit
	if p.IsBanned("晚班") {
		t.Error("策略为不设下限时不应禁排")
	}
}

func TestProblem_ActivityFloor(t *testing.T) {
	p := newTestProblem(t)
	p.Activities = []ActivityDemand{
		{Day: 2, Shift: "早班", MinCount: 2},
		{Day: 2, Shift: "早班", MinCount: 3}, // 同一格取最大
		{Day: 4, Shift: "晚班", MinCount: 1},
	}

	early, _ := p.Catalog.IndexOf("早班")
	late, _ := p.Catalog.IndexOf("晚班")

	if got := p.ActivityFloor(2, early); got != 3 {
		t.Errorf("ActivityFloor(2, 早班) = %d, 期望 3", got)
	}
	if got := p.ActivityFloor(4, late); got != 1 {
		t.Errorf("ActivityFloor(4, 晚班) = %d, 期望 1", got)
	}
	if got := p.ActivityFloor(0, early); got != 0 {
		t.Errorf("ActivityFloor(0, 早班) = %d, 期望 0", got)
	}

	if !p.HasActivityOn(2) || p.HasActivityOn(3) {
		t.Error("HasActivityOn 判定错误")
	}
}
