package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rfqplan/internal/model"
)

// ErrAllocationNotFound 分配不存在
var ErrAllocationNotFound = errors.New("allocation not found")

// CreateAllocation 新增分配
func (s *Store) CreateAllocation(a *model.Allocation) error {
	monthlyFTE, err := marshalMonthlyFTE(a.MonthlyFTE)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err = s.db.Exec(`
		INSERT INTO allocations (
			id, rfq_id, name, level, location, role, feature, custom_feature,
			allocation_type, start_date, end_date, fte_percentage, monthly_fte,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.RfqID, a.Name, a.Level, a.Location, a.Role, a.Feature, a.CustomFeature,
		a.AllocationType, a.StartDate, a.EndDate, a.FTEPercentage, monthlyFTE,
		now, now)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

// GetAllocation 获取单条分配
func (s *Store) GetAllocation(id string) (*model.Allocation, error) {
	row := s.db.QueryRow(`
		SELECT id, rfq_id, name, level, location, role, feature, custom_feature,
		       allocation_type, start_date, end_date, fte_percentage, monthly_fte,
		       created_at, updated_at
		FROM allocations WHERE id = ?
	`, id)

	a, err := scanAllocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAllocations 获取某 RFQ 的全部分配（按创建顺序）
func (s *Store) ListAllocations(rfqID string) ([]*model.Allocation, error) {
	rows, err := s.db.Query(`
		SELECT id, rfq_id, name, level, location, role, feature, custom_feature,
		       allocation_type, start_date, end_date, fte_percentage, monthly_fte,
		       created_at, updated_at
		FROM allocations WHERE rfq_id = ? ORDER BY created_at, id
	`, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*model.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// UpdateAllocation 整条覆盖更新
func (s *Store) UpdateAllocation(a *model.Allocation) error {
	monthlyFTE, err := marshalMonthlyFTE(a.MonthlyFTE)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE allocations SET
			name = ?, level = ?, location = ?, role = ?, feature = ?, custom_feature = ?,
			allocation_type = ?, start_date = ?, end_date = ?, fte_percentage = ?, monthly_fte = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, a.Name, a.Level, a.Location, a.Role, a.Feature, a.CustomFeature,
		a.AllocationType, a.StartDate, a.EndDate, a.FTEPercentage, monthlyFTE, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

// SetMonthlyFTE 设置单月 FTE 覆盖；fte 为负时删除该月覆盖
func (s *Store) SetMonthlyFTE(allocationID, monthKey string, fte int) (*model.Allocation, error) {
	a, err := s.GetAllocation(allocationID)
	if err != nil {
		return nil, err
	}

	if a.MonthlyFTE == nil {
		a.MonthlyFTE = make(map[string]int)
	}
	if fte < 0 {
		delete(a.MonthlyFTE, monthKey)
	} else {
		a.MonthlyFTE[monthKey] = fte
	}

	if err := s.UpdateAllocation(a); err != nil {
		return nil, err
	}
	return s.GetAllocation(allocationID)
}

// BulkUpdateAllocations 批量更新：对给定 ID 应用同一组字段修改
// updates 中仅非 nil 字段生效
func (s *Store) BulkUpdateAllocations(ids []string, updates model.AllocationPatch) error {
	// 连接池上限为 1：事务持有唯一连接期间不能再经 s.db 查询，
	// 先读出全部待更新行，事务内只做写入
	var allocations []*model.Allocation
	for _, id := range ids {
		a, err := s.GetAllocation(id)
		if err != nil {
			if errors.Is(err, ErrAllocationNotFound) {
				continue
			}
			return err
		}
		updates.Apply(a)
		allocations = append(allocations, a)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range allocations {
		monthlyFTE, err := marshalMonthlyFTE(a.MonthlyFTE)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			UPDATE allocations SET
				name = ?, level = ?, location = ?, role = ?, feature = ?, custom_feature = ?,
				allocation_type = ?, start_date = ?, end_date = ?, fte_percentage = ?, monthly_fte = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, a.Name, a.Level, a.Location, a.Role, a.Feature, a.CustomFeature,
			a.AllocationType, a.StartDate, a.EndDate, a.FTEPercentage, monthlyFTE, a.ID)
		if err != nil {
			return fmt.Errorf("failed to update allocation %s: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteAllocation 删除单条分配
func (s *Store) DeleteAllocation(id string) error {
	res, err := s.db.Exec("DELETE FROM allocations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrAllocationNotFound
	}
	return nil
}

// BulkDeleteAllocations 批量删除
func (s *Store) BulkDeleteAllocations(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.Exec("DELETE FROM allocations WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete allocation %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func marshalMonthlyFTE(m map[string]int) (string, error) {
	if m == nil {
		m = map[string]int{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to marshal monthly FTE: %w", err)
	}
	return string(data), nil
}

func scanAllocation(row rowScanner) (*model.Allocation, error) {
	var a model.Allocation
	var monthlyFTE string
	err := row.Scan(
		&a.ID, &a.RfqID, &a.Name, &a.Level, &a.Location, &a.Role, &a.Feature, &a.CustomFeature,
		&a.AllocationType, &a.StartDate, &a.EndDate, &a.FTEPercentage, &monthlyFTE,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(monthlyFTE), &a.MonthlyFTE); err != nil {
		return nil, fmt.Errorf("failed to unmarshal monthly FTE for %s: %w", a.ID, err)
	}
	return &a, nil
}
