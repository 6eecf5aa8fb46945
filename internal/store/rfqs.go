package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rfqplan/internal/model"
)

// ErrRfqNotFound RFQ 不存在
var ErrRfqNotFound = errors.New("rfq not found")

// ErrNotEditable RFQ 当前状态不允许编辑
var ErrNotEditable = errors.New("rfq is not editable in its current status")

// CreateRfq 创建 RFQ
func (s *Store) CreateRfq(rfq *model.Rfq) error {
	if rfq.Status == "" {
		rfq.Status = model.StatusPlanning
	}
	now := time.Now().UTC()
	rfq.CreatedAt = now
	rfq.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO rfqs (id, name, status, created_date, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rfq.ID, rfq.Name, rfq.Status, rfq.CreatedDate, rfq.Deadline, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert rfq: %w", err)
	}
	return nil
}

// GetRfq 获取单个 RFQ（含全部分配）
func (s *Store) GetRfq(id string) (*model.Rfq, error) {
	row := s.db.QueryRow(`
		SELECT id, name, status, created_date, deadline,
		       approved_by, approval_date, rejection_reason,
		       created_at, updated_at
		FROM rfqs WHERE id = ?
	`, id)

	rfq, err := scanRfq(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRfqNotFound
		}
		return nil, err
	}

	allocations, err := s.ListAllocations(id)
	if err != nil {
		return nil, err
	}
	rfq.Allocations = allocations
	return rfq, nil
}

// ListRfqs 获取全部 RFQ（含分配，按创建时间排序）
func (s *Store) ListRfqs() ([]*model.Rfq, error) {
	rows, err := s.db.Query(`
		SELECT id, name, status, created_date, deadline,
		       approved_by, approval_date, rejection_reason,
		       created_at, updated_at
		FROM rfqs ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rfqs: %w", err)
	}
	defer rows.Close()

	var rfqs []*model.Rfq
	for rows.Next() {
		rfq, err := scanRfq(rows)
		if err != nil {
			return nil, err
		}
		rfqs = append(rfqs, rfq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rfq := range rfqs {
		allocations, err := s.ListAllocations(rfq.ID)
		if err != nil {
			return nil, err
		}
		rfq.Allocations = allocations
	}
	return rfqs, nil
}

// UpdateRfq 更新 RFQ 基本字段
// 仅 Planning / Rejected 状态允许；状态流转走专用方法
func (s *Store) UpdateRfq(id string, name, createdDate, deadline *string) (*model.Rfq, error) {
	rfq, err := s.GetRfq(id)
	if err != nil {
		return nil, err
	}
	if !rfq.Editable() {
		return nil, ErrNotEditable
	}

	if name != nil {
		rfq.Name = *name
	}
	if createdDate != nil {
		rfq.CreatedDate = *createdDate
	}
	if deadline != nil {
		rfq.Deadline = *deadline
	}

	_, err = s.db.Exec(`
		UPDATE rfqs SET name = ?, created_date = ?, deadline = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rfq.Name, rfq.CreatedDate, rfq.Deadline, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update rfq: %w", err)
	}

	return s.GetRfq(id)
}

// DeleteRfq 删除 RFQ 及其分配、审批流水
func (s *Store) DeleteRfq(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM rfqs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rfq: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrRfqNotFound
	}

	// 外键级联在 SQLite 默认关闭，手动清理
	if _, err := tx.Exec("DELETE FROM allocations WHERE rfq_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete allocations: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM rfq_approvals WHERE rfq_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete approvals: %w", err)
	}

	return tx.Commit()
}

// SubmitRfq 提交审批：Planning / Rejected → Submitted
func (s *Store) SubmitRfq(id, userID string) (*model.Rfq, error) {
	rfq, err := s.GetRfq(id)
	if err != nil {
		return nil, err
	}
	if rfq.Status != model.StatusPlanning && rfq.Status != model.StatusRejected {
		return nil, fmt.Errorf("cannot submit rfq in status %q", rfq.Status)
	}

	_, err = s.db.Exec(`
		UPDATE rfqs SET status = ?, rejection_reason = '', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.StatusSubmitted, id)
	if err != nil {
		return nil, fmt.Errorf("failed to submit rfq: %w", err)
	}

	if err := s.appendApproval(id, "submit", userID, ""); err != nil {
		return nil, err
	}
	return s.GetRfq(id)
}

// ApproveRfq 审批通过：Submitted → Approved
func (s *Store) ApproveRfq(id, userID string) (*model.Rfq, error) {
	rfq, err := s.GetRfq(id)
	if err != nil {
		return nil, err
	}
	if rfq.Status != model.StatusSubmitted {
		return nil, fmt.Errorf("cannot approve rfq in status %q", rfq.Status)
	}

	now := time.Now().UTC().Format(model.DateLayout)
	_, err = s.db.Exec(`
		UPDATE rfqs SET status = ?, approved_by = ?, approval_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.StatusApproved, userID, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve rfq: %w", err)
	}

	if err := s.appendApproval(id, "approve", userID, ""); err != nil {
		return nil, err
	}
	return s.GetRfq(id)
}

// RejectRfq 审批驳回：Submitted → Rejected
func (s *Store) RejectRfq(id, userID, reason string) (*model.Rfq, error) {
	rfq, err := s.GetRfq(id)
	if err != nil {
		return nil, err
	}
	if rfq.Status != model.StatusSubmitted {
		return nil, fmt.Errorf("cannot reject rfq in status %q", rfq.Status)
	}

	_, err = s.db.Exec(`
		UPDATE rfqs SET status = ?, rejection_reason = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.StatusRejected, reason, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reject rfq: %w", err)
	}

	if err := s.appendApproval(id, "reject", userID, reason); err != nil {
		return nil, err
	}
	return s.GetRfq(id)
}

// ListApprovals 获取审批流水
func (s *Store) ListApprovals(rfqID string) ([]*model.ApprovalEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, rfq_id, action, user_id, reason, timestamp
		FROM rfq_approvals WHERE rfq_id = ? ORDER BY id
	`, rfqID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	var entries []*model.ApprovalEntry
	for rows.Next() {
		var e model.ApprovalEntry
		if err := rows.Scan(&e.ID, &e.RfqID, &e.Action, &e.UserID, &e.Reason, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (s *Store) appendApproval(rfqID, action, userID, reason string) error {
	_, err := s.db.Exec(`
		INSERT INTO rfq_approvals (rfq_id, action, user_id, reason) VALUES (?, ?, ?, ?)
	`, rfqID, action, userID, reason)
	if err != nil {
		return fmt.Errorf("failed to append approval entry: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRfq(row rowScanner) (*model.Rfq, error) {
	var rfq model.Rfq
	err := row.Scan(
		&rfq.ID, &rfq.Name, &rfq.Status, &rfq.CreatedDate, &rfq.Deadline,
		&rfq.ApprovedBy, &rfq.ApprovalDate, &rfq.RejectionReason,
		&rfq.CreatedAt, &rfq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rfq, nil
}
