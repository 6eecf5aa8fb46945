package engine

import (
	"reflect"
	"testing"

	"rfqplan/internal/model"
)

func testRates() model.RateTable {
	return model.RateTable{
		model.LevelSenior:   {"HCC": 80, "BCC": 65},
		model.LevelStandard: {"HCC": 60, "BCC": 50},
	}
}

func testAllocations() []*model.Allocation {
	return []*model.Allocation{
		{
			ID: "a1", Name: "Max Mueller",
			Level: model.LevelSenior, Location: "HCC",
			Role: "Technical Lead", Feature: "Architecture",
			StartDate: "2024-01-01", EndDate: "2024-02-29",
			FTEPercentage: 100,
		},
		{
			ID: "a2", Name: "Ahmed Hassan",
			Level: model.LevelStandard, Location: "BCC",
			Role: "Software Developer", Feature: model.FeatureOther, CustomFeature: "Bootloader",
			StartDate: "2024-01-01", EndDate: "2024-03-31",
			FTEPercentage: 50,
		},
	}
}

// TestAggregate 测试汇总计算
func TestAggregate(t *testing.T) {
	m := Aggregate(testAllocations(), testRates())

	// a1: 2×160 = 320h, 320×80 = 25600
	// a2: 3×80 = 240h, 240×50 = 12000
	if m.TotalHours != 560 {
		t.Errorf("TotalHours = %d, want 560", m.TotalHours)
	}
	if !floatEquals(m.TotalCost, 37600) {
		t.Errorf("TotalCost = %v, want 37600", m.TotalCost)
	}
	if m.TeamSize != 2 {
		t.Errorf("TeamSize = %d, want 2", m.TeamSize)
	}
	if m.AllocationsCount != 2 {
		t.Errorf("AllocationsCount = %d, want 2", m.AllocationsCount)
	}
	if !floatEquals(m.AverageHoursPerPerson, 280) {
		t.Errorf("AverageHoursPerPerson = %v, want 280", m.AverageHoursPerPerson)
	}

	if b := m.ByLocation["HCC"]; b == nil || !floatEquals(b.Hours, 320) || !floatEquals(b.Cost, 25600) {
		t.Errorf("ByLocation[HCC] = %+v, want {320 25600}", b)
	}
	if b := m.ByLevel[model.LevelStandard]; b == nil || !floatEquals(b.Hours, 240) {
		t.Errorf("ByLevel[Standard] = %+v, want hours 240", b)
	}
	// Other → 自定义功能域名称
	if b := m.ByFeature["Bootloader"]; b == nil || !floatEquals(b.Cost, 12000) {
		t.Errorf("ByFeature[Bootloader] = %+v, want cost 12000", b)
	}
	if _, ok := m.ByFeature[model.FeatureOther]; ok {
		t.Error("ByFeature contains raw Other key, want resolved custom name")
	}
	if b := m.ByPerson["Max Mueller"]; b == nil || !floatEquals(b.Hours, 320) {
		t.Errorf("ByPerson[Max Mueller] = %+v, want hours 320", b)
	}
}

// TestAggregateIdempotent 测试幂等：相同输入重复调用结果一致
func TestAggregateIdempotent(t *testing.T) {
	allocations := testAllocations()
	rates := testRates()

	first := Aggregate(allocations, rates)
	second := Aggregate(allocations, rates)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Aggregate produced different results:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

// TestAggregateEmpty 测试空输入
func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil, testRates())
	if m.TotalHours != 0 || m.TotalCost != 0 || m.TeamSize != 0 {
		t.Errorf("empty aggregate = %+v, want zeros", m)
	}
	if m.AverageHoursPerPerson != 0 || m.AverageCostPerHour != 0 {
		t.Error("averages on empty input must be 0, not NaN")
	}
}

// TestFeatureGroups 测试功能域分组
func TestFeatureGroups(t *testing.T) {
	groups := FeatureGroups(testAllocations())
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if len(groups["Architecture"]) != 1 || len(groups["Bootloader"]) != 1 {
		t.Errorf("unexpected groups: %v", groups)
	}
}

// TestYearlyData 测试年度分摊
func TestYearlyData(t *testing.T) {
	rfq := &model.Rfq{
		CreatedDate: "2024-01-01",
		Deadline:    "2025-06-30",
		Allocations: []*model.Allocation{
			{
				ID: "a1", Name: "Max Mueller",
				Level: model.LevelSenior, Location: "HCC",
				Feature:   "Architecture",
				StartDate: "2024-11-01", EndDate: "2025-02-28",
				FTEPercentage: 100,
			},
		},
	}

	yearly := YearlyData(rfq, testRates())
	if len(yearly) != 2 {
		t.Fatalf("years = %d, want 2", len(yearly))
	}

	// 2024: 11、12 两个月 → 320h；2025: 1、2 两个月 → 320h
	if !floatEquals(yearly[2024].TotalHours, 320) {
		t.Errorf("2024 hours = %v, want 320", yearly[2024].TotalHours)
	}
	if !floatEquals(yearly[2025].TotalHours, 320) {
		t.Errorf("2025 hours = %v, want 320", yearly[2025].TotalHours)
	}
	if !floatEquals(yearly[2024].TotalCost, 320*80) {
		t.Errorf("2024 cost = %v, want %v", yearly[2024].TotalCost, 320*80.0)
	}
	if yearly[2024].ResourceCount != 1 || yearly[2025].ResourceCount != 1 {
		t.Errorf("resource counts = %d/%d, want 1/1",
			yearly[2024].ResourceCount, yearly[2025].ResourceCount)
	}
}

// TestYearlyDataOutsideProjectRange 测试超出项目范围的月份被丢弃
func TestYearlyDataOutsideProjectRange(t *testing.T) {
	rfq := &model.Rfq{
		CreatedDate: "2024-01-01",
		Deadline:    "2024-12-31",
		Allocations: []*model.Allocation{
			{
				ID: "a1", Name: "P", Level: model.LevelSenior, Location: "HCC",
				StartDate: "2024-11-01", EndDate: "2025-03-31",
				FTEPercentage: 100,
			},
		},
	}

	yearly := YearlyData(rfq, testRates())
	if len(yearly) != 1 {
		t.Fatalf("years = %d, want 1", len(yearly))
	}
	if !floatEquals(yearly[2024].TotalHours, 320) {
		t.Errorf("2024 hours = %v, want 320 (2025 months dropped)", yearly[2024].TotalHours)
	}
}

// TestTimeline 测试时间线明细
func TestTimeline(t *testing.T) {
	allocations := []*model.Allocation{
		{
			ID:        "a1",
			StartDate: "2024-01-01", EndDate: "2024-02-29",
			FTEPercentage: 100,
			MonthlyFTE:    map[string]int{"2024-02": 50},
		},
	}

	view := Timeline(allocations)
	if len(view) != 2 {
		t.Fatalf("entries = %d, want 2", len(view))
	}
	if view[0].Key != "2024-01" || view[0].FTE != 100 || view[0].Overridden {
		t.Errorf("entry 0 = %+v", view[0])
	}
	if view[1].Key != "2024-02" || view[1].FTE != 50 || !view[1].Overridden {
		t.Errorf("entry 1 = %+v", view[1])
	}
	if !floatEquals(view[1].Hours, 80) {
		t.Errorf("entry 1 hours = %v, want 80", view[1].Hours)
	}
}
