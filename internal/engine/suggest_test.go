package engine

import (
	"testing"

	"rfqplan/internal/model"
)

// TestSuggestionsConsolidation 测试角色合并建议
func TestSuggestionsConsolidation(t *testing.T) {
	rates := testRates()
	allocations := []*model.Allocation{
		// 同一角色两条小分配：合计 160h < 320h
		{ID: "a1", Name: "A", Role: "Test Lead", Level: model.LevelSenior, Location: "BCC",
			StartDate: "2024-01-01", EndDate: "2024-01-31", FTEPercentage: 50},
		{ID: "a2", Name: "B", Role: "Test Lead", Level: model.LevelSenior, Location: "BCC",
			StartDate: "2024-02-01", EndDate: "2024-02-29", FTEPercentage: 50},
		// 单条大分配：不触发
		{ID: "a3", Name: "C", Role: "Software Developer", Level: model.LevelStandard, Location: "BCC",
			StartDate: "2024-01-01", EndDate: "2024-12-31", FTEPercentage: 100},
	}

	suggestions := Suggestions(allocations, rates)

	var consolidation *Suggestion
	for i := range suggestions {
		if suggestions[i].Type == "consolidation" {
			consolidation = &suggestions[i]
		}
	}
	if consolidation == nil {
		t.Fatal("expected a consolidation suggestion")
	}
	if consolidation.Role != "Test Lead" {
		t.Errorf("role = %q, want Test Lead", consolidation.Role)
	}
	if len(consolidation.Allocations) != 2 {
		t.Errorf("allocations = %v, want 2 ids", consolidation.Allocations)
	}
}

// TestSuggestionsConsolidationThreshold 测试 320h 阈值边界
func TestSuggestionsConsolidationThreshold(t *testing.T) {
	rates := testRates()
	// 两条合计正好 320h：不建议合并
	allocations := []*model.Allocation{
		{ID: "a1", Name: "A", Role: "Test Lead", Level: model.LevelSenior, Location: "BCC",
			StartDate: "2024-01-01", EndDate: "2024-01-31", FTEPercentage: 100},
		{ID: "a2", Name: "B", Role: "Test Lead", Level: model.LevelSenior, Location: "BCC",
			StartDate: "2024-02-01", EndDate: "2024-02-29", FTEPercentage: 100},
	}

	for _, s := range Suggestions(allocations, rates) {
		if s.Type == "consolidation" {
			t.Errorf("320h total should not trigger consolidation, got %+v", s)
		}
	}
}

// TestSuggestionsCostSkew 测试成本地点倾斜建议
func TestSuggestionsCostSkew(t *testing.T) {
	rates := testRates()
	allocations := []*model.Allocation{
		// HCC 成本 320×80 = 25600，占比远超 70%
		{ID: "a1", Name: "A", Role: "Architect", Level: model.LevelSenior, Location: "HCC",
			StartDate: "2024-01-01", EndDate: "2024-02-29", FTEPercentage: 100},
		{ID: "a2", Name: "B", Role: "Software Developer", Level: model.LevelStandard, Location: "BCC",
			StartDate: "2024-01-01", EndDate: "2024-01-31", FTEPercentage: 25},
	}

	var skew *Suggestion
	for _, s := range Suggestions(allocations, rates) {
		if s.Type == "cost_optimization" {
			skew = &s
			break
		}
	}
	if skew == nil {
		t.Fatal("expected a cost_optimization suggestion")
	}
	if skew.Location != "HCC" {
		t.Errorf("location = %q, want HCC", skew.Location)
	}
}

// TestSuggestionsBalancedPlanQuiet 测试均衡计划不产生建议
func TestSuggestionsBalancedPlanQuiet(t *testing.T) {
	rates := testRates()
	allocations := []*model.Allocation{
		{ID: "a1", Name: "A", Role: "Architect", Level: model.LevelSenior, Location: "HCC",
			StartDate: "2024-01-01", EndDate: "2024-06-30", FTEPercentage: 100},
		{ID: "a2", Name: "B", Role: "Software Developer", Level: model.LevelSenior, Location: "BCC",
			StartDate: "2024-01-01", EndDate: "2024-06-30", FTEPercentage: 100},
	}

	if suggestions := Suggestions(allocations, rates); len(suggestions) != 0 {
		t.Errorf("balanced plan produced suggestions: %+v", suggestions)
	}
}

// TestSuggestionsEmptyPlan 测试空计划
func TestSuggestionsEmptyPlan(t *testing.T) {
	if suggestions := Suggestions(nil, testRates()); len(suggestions) != 0 {
		t.Errorf("empty plan produced suggestions: %+v", suggestions)
	}
}
