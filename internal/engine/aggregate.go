package engine

import (
	"strings"

	"rfqplan/internal/model"
)

// Breakdown 某一维度下的工时/成本累加器
type Breakdown struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

// Metrics 项目级汇总指标与各维度拆分
type Metrics struct {
	TotalHours            int     `json:"totalHours"`
	TotalCost             float64 `json:"totalCost"`
	TeamSize              int     `json:"teamSize"`
	AllocationsCount      int     `json:"allocationsCount"`
	AverageHoursPerPerson float64 `json:"averageHoursPerPerson"`
	AverageCostPerHour    float64 `json:"averageCostPerHour"`

	ByLocation map[string]*Breakdown `json:"byLocation"`
	ByLevel    map[string]*Breakdown `json:"byLevel"`
	ByFeature  map[string]*Breakdown `json:"byFeature"`
	ByPerson   map[string]*Breakdown `json:"byPerson"`
}

// Aggregate 对全部分配做一次完整汇总
//
// 每条分配的工时/成本只计算一次，再累加到各维度。
// 纯函数：相同输入必得到相同输出，数值结果不依赖 map 迭代顺序。
func Aggregate(allocations []*model.Allocation, rates model.RateTable) *Metrics {
	m := &Metrics{
		AllocationsCount: len(allocations),
		ByLocation:       make(map[string]*Breakdown),
		ByLevel:          make(map[string]*Breakdown),
		ByFeature:        make(map[string]*Breakdown),
		ByPerson:         make(map[string]*Breakdown),
	}

	for _, a := range allocations {
		hours := float64(HoursFor(a))
		cost := CostFor(a, rates)

		m.TotalHours += int(hours)
		m.TotalCost += cost

		accumulate(m.ByLocation, a.Location, hours, cost)
		accumulate(m.ByLevel, a.Level, hours, cost)
		accumulate(m.ByFeature, a.FeatureName(), hours, cost)
		if name := personKey(a); name != "" {
			accumulate(m.ByPerson, name, hours, cost)
		}
	}

	persons := UniquePersons(allocations)
	m.TeamSize = len(persons)
	if m.TeamSize > 0 {
		m.AverageHoursPerPerson = float64(m.TotalHours) / float64(m.TeamSize)
	}
	if m.TotalHours > 0 {
		m.AverageCostPerHour = m.TotalCost / float64(m.TotalHours)
	}

	return m
}

// FeatureGroups 按功能域分组（Other 取自定义名称）
func FeatureGroups(allocations []*model.Allocation) map[string][]*model.Allocation {
	groups := make(map[string][]*model.Allocation)
	for _, a := range allocations {
		name := a.FeatureName()
		groups[name] = append(groups[name], a)
	}
	return groups
}

func accumulate(breakdowns map[string]*Breakdown, key string, hours, cost float64) {
	b, ok := breakdowns[key]
	if !ok {
		b = &Breakdown{}
		breakdowns[key] = b
	}
	b.Hours += hours
	b.Cost += cost
}

func personKey(a *model.Allocation) string {
	return strings.TrimSpace(a.Name)
}
