package engine

import (
	"math"

	"rfqplan/internal/model"
)

// HoursPerMonth 每日历月工时常量
//
// 统一采用 160h/月 的平面模型（原型中个别视图按 22 工作日 × 8h 估算，
// 两者未对齐；计算口径固定为 160 平面值）。
const HoursPerMonth = 160.0

// EffectiveFTE 某月的有效 FTE：单月覆盖优先，否则回落到默认值
func EffectiveFTE(a *model.Allocation, monthKey string) int {
	if fte, ok := a.MonthlyFTE[monthKey]; ok {
		return fte
	}
	return a.FTEPercentage
}

// HoursFor 一条分配的总工时
// 逐月累加 (FTE/100)×160，最后一次性四舍五入，避免逐月取整累积误差
func HoursFor(a *model.Allocation) int {
	months := MonthsBetween(a.StartDate, a.EndDate)
	if len(months) == 0 {
		return 0
	}

	var total float64
	for _, m := range months {
		fte := EffectiveFTE(a, m.Key)
		total += float64(fte) / 100 * HoursPerMonth
	}

	return int(math.Round(total))
}

// MonthlyHours 一条分配逐月的工时贡献（未取整，供月度/年度视图分摊）
func MonthlyHours(a *model.Allocation) map[string]float64 {
	hours := make(map[string]float64)
	for _, m := range MonthsBetween(a.StartDate, a.EndDate) {
		fte := EffectiveFTE(a, m.Key)
		hours[m.Key] = float64(fte) / 100 * HoursPerMonth
	}
	return hours
}
