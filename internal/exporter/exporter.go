package exporter

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"rfqplan/internal/engine"
	"rfqplan/internal/model"
)

// Exporter 报价工作簿导出器
//
// 从零生成工作簿：概览、分配明细、年度分摊、成本与收入四张表。
type Exporter struct {
	settings *model.Settings
}

// NewExporter 创建导出器
func NewExporter(settings *model.Settings) *Exporter {
	return &Exporter{settings: settings}
}

// Export 导出单个 RFQ 的报价工作簿
func (e *Exporter) Export(rfq *model.Rfq) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.writeOverviewSheet(f, rfq); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeAllocationsSheet(f, rfq); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeYearlySheet(f, rfq); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeAnalysisSheet(f, rfq); err != nil {
		_ = f.Close()
		return nil, err
	}

	// 默认 Sheet1 替换为概览
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) writeOverviewSheet(f *excelize.File, rfq *model.Rfq) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	metrics := engine.Aggregate(rfq.Allocations, e.settings.EngineerRates)

	rows := [][]any{
		{"RFQ", rfq.Name},
		{"Status", rfq.Status},
		{"Start Date", rfq.CreatedDate},
		{"Deadline", rfq.Deadline},
		{},
		{"Total Hours", metrics.TotalHours},
		{"Total Cost (EUR)", metrics.TotalCost},
		{"Team Size", metrics.TeamSize},
		{"Allocations", metrics.AllocationsCount},
		{"Avg Hours / Person", metrics.AverageHoursPerPerson},
		{"Avg Cost / Hour (EUR)", metrics.AverageCostPerHour},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "B", 24)
}

func (e *Exporter) writeAllocationsSheet(f *excelize.File, rfq *model.Rfq) error {
	const sheet = "Allocations"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{
		"Name", "Level", "Location", "Role", "Feature",
		"Type", "Start", "End", "FTE %", "Hours", "Cost (EUR)",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, a := range rfq.Allocations {
		row := []any{
			a.Name, a.Level, a.Location, a.Role, a.FeatureName(),
			a.AllocationType, a.StartDate, a.EndDate, a.FTEPercentage,
			engine.HoursFor(a), engine.CostFor(a, e.settings.EngineerRates),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "K", 18)
}

func (e *Exporter) writeYearlySheet(f *excelize.File, rfq *model.Rfq) error {
	const sheet = "Yearly"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{"Year", "Hours", "Cost (EUR)", "Resources"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	yearly := engine.YearlyData(rfq, e.settings.EngineerRates)
	years := make([]int, 0, len(yearly))
	for year := range yearly {
		years = append(years, year)
	}
	sort.Ints(years)

	for i, year := range years {
		yd := yearly[year]
		row := []any{year, yd.TotalHours, yd.TotalCost, yd.ResourceCount}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "D", 14)
}

func (e *Exporter) writeAnalysisSheet(f *excelize.File, rfq *model.Rfq) error {
	const sheet = "Cost & Profit"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	cmp := engine.CompareModels(rfq.Allocations, e.settings, engine.AnalysisOptions{})

	rows := [][]any{
		{"Time & Material"},
		{"Revenue (EUR)", cmp.TM.TotalRevenue},
		{"Cost (EUR)", cmp.TM.TotalCost},
		{"Profit (EUR)", cmp.TM.Profit},
		{"Margin (%)", cmp.TM.Margin},
		{},
		{"Work Package"},
		{"Story Points", cmp.WP.EstimatedStoryPoints},
		{"Tickets (S/M/L)", fmt.Sprintf("%d / %d / %d", cmp.WP.Tickets.Small, cmp.WP.Tickets.Medium, cmp.WP.Tickets.Large)},
		{"Risk Adjusted Cost (EUR)", cmp.WP.RiskAdjustedCost},
		{"Revenue (EUR)", cmp.WP.TotalRevenue},
		{"Profit (EUR)", cmp.WP.Profit},
		{"Margin (%)", cmp.WP.Margin},
		{},
		{"Recommendation", cmp.Statement},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "B", 26)
}
