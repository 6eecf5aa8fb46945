package engine

import (
	"fmt"
	"sort"

	"rfqplan/internal/model"
)

// 建议阈值
const (
	// 同一角色合计不足两人月时建议合并
	consolidationHoursThreshold = 320
	// 单一地点成本占比超过 70% 时建议向低成本地点倾斜
	costSkewRatio = 0.7
)

// Suggestion 只读的优化建议，不影响任何数值结果
type Suggestion struct {
	Type        string   `json:"type"` // consolidation / cost_optimization
	Role        string   `json:"role,omitempty"`
	Location    string   `json:"location,omitempty"`
	Allocations []string `json:"allocations,omitempty"`
	Message     string   `json:"message"`
}

// Suggestions 基于汇总结果生成启发式建议
//
// 纯观察层：输出仅供展示，永远不回写或修正计算结果。
func Suggestions(allocations []*model.Allocation, rates model.RateTable) []Suggestion {
	var suggestions []Suggestion

	// 角色合并建议
	roleGroups := make(map[string][]*model.Allocation)
	for _, a := range allocations {
		roleGroups[a.Role] = append(roleGroups[a.Role], a)
	}
	roles := make([]string, 0, len(roleGroups))
	for role := range roleGroups {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	for _, role := range roles {
		group := roleGroups[role]
		if len(group) <= 1 {
			continue
		}
		totalHours := 0
		ids := make([]string, 0, len(group))
		for _, a := range group {
			totalHours += HoursFor(a)
			ids = append(ids, a.ID)
		}
		if totalHours < consolidationHoursThreshold {
			suggestions = append(suggestions, Suggestion{
				Type:        "consolidation",
				Role:        role,
				Allocations: ids,
				Message:     fmt.Sprintf("Consider consolidating %s allocations (%dh total)", role, totalHours),
			})
		}
	}

	// 成本地点倾斜建议
	metrics := Aggregate(allocations, rates)
	if metrics.TotalCost > 0 {
		for _, location := range model.Locations {
			b, ok := metrics.ByLocation[location]
			if !ok {
				continue
			}
			if b.Cost > metrics.TotalCost*costSkewRatio {
				suggestions = append(suggestions, Suggestion{
					Type:     "cost_optimization",
					Location: location,
					Message:  fmt.Sprintf("Consider moving some resources from %s to lower-cost locations", location),
				})
			}
		}
	}

	return suggestions
}
