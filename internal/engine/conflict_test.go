package engine

import (
	"testing"

	"rfqplan/internal/model"
)

// TestDetectConflicts 测试重叠检测
func TestDetectConflicts(t *testing.T) {
	a := &model.Allocation{
		ID: "a1", Name: "Max Mueller",
		StartDate: "2024-01-01", EndDate: "2024-03-01",
	}
	b := &model.Allocation{
		ID: "a2", Name: "Max Mueller",
		StartDate: "2024-02-01", EndDate: "2024-04-01",
	}

	conflicts := DetectConflicts([]*model.Allocation{a, b})
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(conflicts))
	}
	if conflicts[0].Person != "Max Mueller" {
		t.Errorf("person = %q, want Max Mueller", conflicts[0].Person)
	}

	// 输入顺序对调，结果一致
	reversed := DetectConflicts([]*model.Allocation{b, a})
	if len(reversed) != 1 {
		t.Fatalf("reversed conflicts = %d, want 1", len(reversed))
	}
}

// TestDetectConflictsNoSelfConflict 测试单条分配不与自身冲突
func TestDetectConflictsNoSelfConflict(t *testing.T) {
	a := &model.Allocation{
		ID: "a1", Name: "Ahmed Hassan",
		StartDate: "2024-01-01", EndDate: "2024-12-31",
	}
	if conflicts := DetectConflicts([]*model.Allocation{a}); len(conflicts) != 0 {
		t.Errorf("single allocation produced %d conflicts, want 0", len(conflicts))
	}
}

// TestDetectConflictsCaseSensitiveNames 测试仅大小写不同的名字是两个人
// 同一对分配不得在不同名下重复报告
func TestDetectConflictsCaseSensitiveNames(t *testing.T) {
	a := &model.Allocation{ID: "a1", Name: "Max", StartDate: "2024-01-01", EndDate: "2024-03-01"}
	b := &model.Allocation{ID: "a2", Name: "max", StartDate: "2024-02-01", EndDate: "2024-04-01"}

	if conflicts := DetectConflicts([]*model.Allocation{a, b}); len(conflicts) != 0 {
		t.Errorf("different-case names produced %d conflicts, want 0", len(conflicts))
	}

	// 首尾空白不影响归属：同一人的两条分配报且仅报一次
	c := &model.Allocation{ID: "a3", Name: "Max ", StartDate: "2024-02-01", EndDate: "2024-04-01"}
	conflicts := DetectConflicts([]*model.Allocation{a, c})
	if len(conflicts) != 1 {
		t.Fatalf("trimmed same-name conflicts = %d, want 1", len(conflicts))
	}
	if conflicts[0].Person != "Max" {
		t.Errorf("person = %q, want Max", conflicts[0].Person)
	}
}

// TestDetectConflictsTouchingEndpoints 测试端点相接算重叠
func TestDetectConflictsTouchingEndpoints(t *testing.T) {
	a := &model.Allocation{ID: "a1", Name: "P", StartDate: "2024-01-01", EndDate: "2024-03-01"}
	b := &model.Allocation{ID: "a2", Name: "P", StartDate: "2024-03-01", EndDate: "2024-05-01"}

	if conflicts := DetectConflicts([]*model.Allocation{a, b}); len(conflicts) != 1 {
		t.Errorf("touching endpoints produced %d conflicts, want 1", len(conflicts))
	}
}

// TestDetectConflictsPairwise 测试三条两两重叠产生三条冲突
func TestDetectConflictsPairwise(t *testing.T) {
	allocations := []*model.Allocation{
		{ID: "a1", Name: "P", StartDate: "2024-01-01", EndDate: "2024-06-30"},
		{ID: "a2", Name: "P", StartDate: "2024-02-01", EndDate: "2024-07-31"},
		{ID: "a3", Name: "P", StartDate: "2024-03-01", EndDate: "2024-08-31"},
	}
	if conflicts := DetectConflicts(allocations); len(conflicts) != 3 {
		t.Errorf("three mutually overlapping allocations produced %d conflicts, want 3", len(conflicts))
	}
}

// TestDetectConflictsDifferentPersons 测试不同人员不冲突
func TestDetectConflictsDifferentPersons(t *testing.T) {
	allocations := []*model.Allocation{
		{ID: "a1", Name: "Alice", StartDate: "2024-01-01", EndDate: "2024-06-30"},
		{ID: "a2", Name: "Bob", StartDate: "2024-01-01", EndDate: "2024-06-30"},
	}
	if conflicts := DetectConflicts(allocations); len(conflicts) != 0 {
		t.Errorf("different persons produced %d conflicts, want 0", len(conflicts))
	}
}

// TestHasOverlap 测试布尔快捷判断
func TestHasOverlap(t *testing.T) {
	overlapping := []*model.Allocation{
		{ID: "a1", StartDate: "2024-01-01", EndDate: "2024-03-01"},
		{ID: "a2", StartDate: "2024-02-01", EndDate: "2024-04-01"},
	}
	disjoint := []*model.Allocation{
		{ID: "a1", StartDate: "2024-01-01", EndDate: "2024-02-28"},
		{ID: "a2", StartDate: "2024-03-01", EndDate: "2024-04-01"},
	}

	if !HasOverlap(overlapping) {
		t.Error("HasOverlap(overlapping) = false, want true")
	}
	if HasOverlap(disjoint) {
		t.Error("HasOverlap(disjoint) = true, want false")
	}
}

// TestUniquePersons 测试人员去重
func TestUniquePersons(t *testing.T) {
	allocations := []*model.Allocation{
		{Name: "  Max Mueller "},
		{Name: "Max Mueller"},
		{Name: "ahmed hassan"},
		{Name: "Ahmed Hassan"}, // 大小写敏感，视为不同人
		{Name: "   "},
		{Name: ""},
	}

	persons := UniquePersons(allocations)
	want := []string{"Ahmed Hassan", "Max Mueller", "ahmed hassan"}
	if len(persons) != len(want) {
		t.Fatalf("persons = %v, want %v", persons, want)
	}
	for i := range want {
		if persons[i] != want[i] {
			t.Errorf("persons[%d] = %q, want %q", i, persons[i], want[i])
		}
	}
}

// TestPersonAllocations 测试按人员取分配（忽略大小写，按开始日期排序）
func TestPersonAllocations(t *testing.T) {
	allocations := []*model.Allocation{
		{ID: "a2", Name: "max mueller", StartDate: "2024-03-01", EndDate: "2024-06-01"},
		{ID: "a1", Name: "Max Mueller", StartDate: "2024-01-01", EndDate: "2024-02-01"},
		{ID: "a3", Name: "Someone Else", StartDate: "2024-01-01", EndDate: "2024-02-01"},
	}

	result := PersonAllocations(allocations, "Max Mueller")
	if len(result) != 2 {
		t.Fatalf("len = %d, want 2", len(result))
	}
	if result[0].ID != "a1" || result[1].ID != "a2" {
		t.Errorf("order = [%s %s], want [a1 a2]", result[0].ID, result[1].ID)
	}
}
