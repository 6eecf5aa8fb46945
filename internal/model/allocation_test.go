package model

import (
	"strings"
	"testing"
)

func validAllocation() *Allocation {
	return &Allocation{
		ID: "a_1", RfqID: "r_1", Name: "Max Mueller",
		Level: LevelStandard, Location: "HCC",
		Role: "Software Developer", Feature: "Integration",
		AllocationType: AllocationSpecificPeriod,
		StartDate:      "2024-01-01", EndDate: "2024-06-30",
		FTEPercentage: 100,
	}
}

// TestValidate 编辑边界校验
func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(a *Allocation)
		wantErr string
	}{
		{"合法分配", func(a *Allocation) {}, ""},
		{"空名字是占位行", func(a *Allocation) { a.Name = "" }, ""},
		{"缺开始日期", func(a *Allocation) { a.StartDate = "" }, "start date is required"},
		{"缺结束日期", func(a *Allocation) { a.EndDate = "" }, "end date is required"},
		{"日期格式错误", func(a *Allocation) { a.StartDate = "01/01/2024" }, "YYYY-MM-DD"},
		{"日期颠倒", func(a *Allocation) { a.StartDate, a.EndDate = a.EndDate, a.StartDate }, "before end date"},
		{"FTE 为负", func(a *Allocation) { a.FTEPercentage = -1 }, "between 0 and 100"},
		{"FTE 超 100", func(a *Allocation) { a.FTEPercentage = 101 }, "between 0 and 100"},
		{"单月覆盖超界", func(a *Allocation) { a.MonthlyFTE = map[string]int{"2024-02": 130} }, "2024-02"},
		{"Other 缺自定义名", func(a *Allocation) { a.Feature = FeatureOther }, "custom feature"},
		{"Other 带自定义名", func(a *Allocation) { a.Feature = FeatureOther; a.CustomFeature = "Bootloader" }, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := validAllocation()
			c.mutate(a)
			err := a.Validate()
			if c.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error = %v, want containing %q", err, c.wantErr)
			}
		})
	}
}

// TestFeatureName Other 时取自定义名称
func TestFeatureName(t *testing.T) {
	a := validAllocation()
	if a.FeatureName() != "Integration" {
		t.Errorf("feature name = %q", a.FeatureName())
	}

	a.Feature = FeatureOther
	a.CustomFeature = "Bootloader"
	if a.FeatureName() != "Bootloader" {
		t.Errorf("feature name = %q, want Bootloader", a.FeatureName())
	}
}

// TestInheritDates Whole Project 跟随 RFQ 日期
func TestInheritDates(t *testing.T) {
	rfq := &Rfq{CreatedDate: "2024-01-01", Deadline: "2025-06-30"}

	a := validAllocation()
	a.AllocationType = AllocationWholeProject
	a.InheritDates(rfq)
	if a.StartDate != "2024-01-01" || a.EndDate != "2025-06-30" {
		t.Errorf("dates not inherited: %s .. %s", a.StartDate, a.EndDate)
	}

	// Specific Period 保留显式日期
	b := validAllocation()
	b.InheritDates(rfq)
	if b.StartDate != "2024-01-01" || b.EndDate != "2024-06-30" {
		t.Errorf("specific period dates changed: %s .. %s", b.StartDate, b.EndDate)
	}

	// nil RFQ 不动
	c := validAllocation()
	c.AllocationType = AllocationWholeProject
	c.InheritDates(nil)
	if c.StartDate != "2024-01-01" {
		t.Errorf("nil rfq changed dates: %s", c.StartDate)
	}
}

// TestEditable 仅 Planning / Rejected 可编辑
func TestEditable(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{StatusPlanning, true},
		{StatusRejected, true},
		{StatusSubmitted, false},
		{StatusApproved, false},
	}
	for _, c := range cases {
		rfq := &Rfq{Status: c.status}
		if rfq.Editable() != c.want {
			t.Errorf("Editable(%s) = %v, want %v", c.status, rfq.Editable(), c.want)
		}
	}
}
