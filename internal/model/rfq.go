package model

import "time"

// RFQ 状态流转：Planning → Submitted → Approved / Rejected
// Rejected 可回到编辑再次提交
const (
	StatusPlanning  = "Planning"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
)

// Rfq 一个报价项目及其全部人员分配
type Rfq struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	CreatedDate string `json:"createdDate"` // 项目开始日期
	Deadline    string `json:"deadline"`    // 项目截止日期

	ApprovedBy      string `json:"approvedBy,omitempty"`
	ApprovalDate    string `json:"approvalDate,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`

	Allocations []*Allocation `json:"allocations"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Editable 仅 Planning / Rejected 状态允许编辑
func (r *Rfq) Editable() bool {
	return r.Status == StatusPlanning || r.Status == StatusRejected
}

// ApprovalEntry 审批流水记录
type ApprovalEntry struct {
	ID        int64     `json:"id"`
	RfqID     string    `json:"rfqId"`
	Action    string    `json:"action"` // submit / approve / reject
	UserID    string    `json:"userId"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
