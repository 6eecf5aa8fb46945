package engine

import "rfqplan/internal/model"

// CostFor 一条分配的成本：总工时 × 费率
// 费率表缺失 (level, location) 时按 0 计：单条配置缺口不应阻塞整个计划的展示
func CostFor(a *model.Allocation, rates model.RateTable) float64 {
	rate := rates.Rate(a.Level, a.Location)
	return float64(HoursFor(a)) * rate
}

// TotalHours 全部分配的总工时
func TotalHours(allocations []*model.Allocation) int {
	total := 0
	for _, a := range allocations {
		total += HoursFor(a)
	}
	return total
}

// TotalCost 全部分配的总成本
func TotalCost(allocations []*model.Allocation, rates model.RateTable) float64 {
	var total float64
	for _, a := range allocations {
		total += CostFor(a, rates)
	}
	return total
}
