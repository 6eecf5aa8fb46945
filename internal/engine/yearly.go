package engine

import (
	"strings"

	"rfqplan/internal/model"
)

// YearData 单一年份的投入汇总
type YearData struct {
	TotalHours    float64               `json:"totalHours"`
	TotalCost     float64               `json:"totalCost"`
	ResourceCount int                   `json:"resourceCount"` // 该年有投入的人数
	ByLocation    map[string]*Breakdown `json:"byLocation"`
	ByLevel       map[string]*Breakdown `json:"byLevel"`
	ByFeature     map[string]*Breakdown `json:"byFeature"`
	ByPerson      map[string]*Breakdown `json:"byPerson"`
}

// YearlyData 按年份分摊的投入视图
//
// 跨年的分配按月粒度分摊到各年份，而非整体记在开始年；
// 使用项目日期范围确定年份轴，分配中超出范围的月份丢弃。
func YearlyData(rfq *model.Rfq, rates model.RateTable) map[int]*YearData {
	years := YearsBetween(rfq.CreatedDate, rfq.Deadline)
	yearly := make(map[int]*YearData, len(years))
	for _, year := range years {
		yearly[year] = &YearData{
			ByLocation: make(map[string]*Breakdown),
			ByLevel:    make(map[string]*Breakdown),
			ByFeature:  make(map[string]*Breakdown),
			ByPerson:   make(map[string]*Breakdown),
		}
	}

	for _, a := range rfq.Allocations {
		rate := rates.Rate(a.Level, a.Location)
		for _, m := range MonthsBetween(a.StartDate, a.EndDate) {
			yd, ok := yearly[m.Year]
			if !ok {
				continue
			}

			monthHours := float64(EffectiveFTE(a, m.Key)) / 100 * HoursPerMonth
			monthCost := monthHours * rate

			yd.TotalHours += monthHours
			yd.TotalCost += monthCost
			accumulate(yd.ByLocation, a.Location, monthHours, monthCost)
			accumulate(yd.ByLevel, a.Level, monthHours, monthCost)
			accumulate(yd.ByFeature, a.FeatureName(), monthHours, monthCost)
			if name := personKey(a); name != "" {
				accumulate(yd.ByPerson, name, monthHours, monthCost)
			}
		}
	}

	// 每年的人数：该年内至少有一个月投入的去重人员
	for year, yd := range yearly {
		seen := make(map[string]bool)
		for _, a := range rfq.Allocations {
			name := strings.TrimSpace(a.Name)
			if name == "" || seen[name] {
				continue
			}
			for _, m := range MonthsBetween(a.StartDate, a.EndDate) {
				if m.Year == year {
					seen[name] = true
					break
				}
			}
		}
		yd.ResourceCount = len(seen)
	}

	return yearly
}

// MonthlyFTEView 时间线视图数据：逐月的有效 FTE 与工时
type MonthlyFTEView struct {
	AllocationID string  `json:"allocationId"`
	Key          string  `json:"key"`
	FTE          int     `json:"fte"`
	Hours        float64 `json:"hours"`
	Overridden   bool    `json:"overridden"` // 该月是否有单月覆盖
}

// Timeline 全部分配的逐月投入明细
func Timeline(allocations []*model.Allocation) []MonthlyFTEView {
	var view []MonthlyFTEView
	for _, a := range allocations {
		for _, m := range MonthsBetween(a.StartDate, a.EndDate) {
			_, overridden := a.MonthlyFTE[m.Key]
			fte := EffectiveFTE(a, m.Key)
			view = append(view, MonthlyFTEView{
				AllocationID: a.ID,
				Key:          m.Key,
				FTE:          fte,
				Hours:        float64(fte) / 100 * HoursPerMonth,
				Overridden:   overridden,
			})
		}
	}
	return view
}
