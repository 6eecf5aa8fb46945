package engine

import (
	"sort"
	"strings"
	"time"

	"rfqplan/internal/model"
)

// Conflict 同一人两条分配的日期区间重叠
type Conflict struct {
	Type        string   `json:"type"` // 目前仅 overlap
	Person      string   `json:"person"`
	Allocations []string `json:"allocations"` // 两条分配的 ID
	Message     string   `json:"message"`
}

// UniquePersons 去重后的人员名单（去除首尾空白，保留大小写，排序输出）
func UniquePersons(allocations []*model.Allocation) []string {
	seen := make(map[string]bool)
	var persons []string
	for _, a := range allocations {
		name := strings.TrimSpace(a.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		persons = append(persons, name)
	}
	sort.Strings(persons)
	return persons
}

// PersonAllocations 某人的全部分配（名称忽略大小写匹配，按开始日期排序）
func PersonAllocations(allocations []*model.Allocation, personName string) []*model.Allocation {
	var result []*model.Allocation
	for _, a := range allocations {
		if strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(personName)) {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate < result[j].StartDate
	})
	return result
}

// PersonTotalHours 某人的总工时
func PersonTotalHours(allocations []*model.Allocation, personName string) int {
	total := 0
	for _, a := range PersonAllocations(allocations, personName) {
		total += HoursFor(a)
	}
	return total
}

// overlaps 闭区间相交判断：端点相接也算重叠（保守策略）
func overlaps(a1, a2 *model.Allocation) bool {
	start1, err := time.Parse(model.DateLayout, a1.StartDate)
	if err != nil {
		return false
	}
	end1, err := time.Parse(model.DateLayout, a1.EndDate)
	if err != nil {
		return false
	}
	start2, err := time.Parse(model.DateLayout, a2.StartDate)
	if err != nil {
		return false
	}
	end2, err := time.Parse(model.DateLayout, a2.EndDate)
	if err != nil {
		return false
	}

	return !start1.After(end2) && !start2.After(end1)
}

// HasOverlap 一组分配中是否存在任意重叠
func HasOverlap(allocations []*model.Allocation) bool {
	for i := 0; i < len(allocations); i++ {
		for j := i + 1; j < len(allocations); j++ {
			if overlaps(allocations[i], allocations[j]) {
				return true
			}
		}
	}
	return false
}

// DetectConflicts 检测全部人员的分配重叠
//
// 逐对报告：三条两两重叠的分配产生三条冲突而非一组，
// 与前端冲突计数保持一致。O(n²) 对每人几十条的规模足够。
// 分组口径与 UniquePersons 一致（去空白、区分大小写），
// 避免同一对分配在不同大小写的名下被重复报告。
func DetectConflicts(allocations []*model.Allocation) []Conflict {
	var conflicts []Conflict

	for _, person := range UniquePersons(allocations) {
		var personAllocs []*model.Allocation
		for _, a := range allocations {
			if strings.TrimSpace(a.Name) == person {
				personAllocs = append(personAllocs, a)
			}
		}
		sort.SliceStable(personAllocs, func(i, j int) bool {
			return personAllocs[i].StartDate < personAllocs[j].StartDate
		})
		for i := 0; i < len(personAllocs); i++ {
			for j := i + 1; j < len(personAllocs); j++ {
				if !overlaps(personAllocs[i], personAllocs[j]) {
					continue
				}
				conflicts = append(conflicts, Conflict{
					Type:        "overlap",
					Person:      person,
					Allocations: []string{personAllocs[i].ID, personAllocs[j].ID},
					Message:     person + " has overlapping allocations",
				})
			}
		}
	}

	return conflicts
}
