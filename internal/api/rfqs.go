package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfqplan/internal/model"
)

type createRfqRequest struct {
	Name        string `json:"name" binding:"required"`
	CreatedDate string `json:"createdDate" binding:"required"`
	Deadline    string `json:"deadline" binding:"required"`
}

type updateRfqRequest struct {
	Name        *string `json:"name"`
	CreatedDate *string `json:"createdDate"`
	Deadline    *string `json:"deadline"`
}

type workflowRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// ListRfqs 查询全部 RFQ
// GET /api/rfqs
func (h *Handler) ListRfqs(c *gin.Context) {
	rfqs, err := h.store.ListRfqs()
	if err != nil {
		respondError(c, err)
		return
	}
	if rfqs == nil {
		rfqs = []*model.Rfq{}
	}
	c.JSON(http.StatusOK, rfqs)
}

// CreateRfq 创建 RFQ
// POST /api/rfqs
func (h *Handler) CreateRfq(c *gin.Context) {
	var req createRfqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq := &model.Rfq{
		ID:          fmt.Sprintf("r_%s", uuid.New().String()[:8]),
		Name:        req.Name,
		Status:      model.StatusPlanning,
		CreatedDate: req.CreatedDate,
		Deadline:    req.Deadline,
		Allocations: []*model.Allocation{},
	}
	if err := h.store.CreateRfq(rfq); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rfq)
}

// GetRfq 获取单个 RFQ（含分配）
// GET /api/rfqs/:id
func (h *Handler) GetRfq(c *gin.Context) {
	rfq, err := h.store.GetRfq(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// UpdateRfq 更新 RFQ 基本字段
// PATCH /api/rfqs/:id
func (h *Handler) UpdateRfq(c *gin.Context) {
	var req updateRfqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rfq, err := h.store.UpdateRfq(c.Param("id"), req.Name, req.CreatedDate, req.Deadline)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// DeleteRfq 删除 RFQ
// DELETE /api/rfqs/:id
func (h *Handler) DeleteRfq(c *gin.Context) {
	if err := h.store.DeleteRfq(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SubmitRfq 提交审批
// POST /api/rfqs/:id/submit
func (h *Handler) SubmitRfq(c *gin.Context) {
	var req workflowRequest
	_ = c.ShouldBindJSON(&req)

	rfq, err := h.store.SubmitRfq(c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// ApproveRfq 审批通过
// POST /api/rfqs/:id/approve
func (h *Handler) ApproveRfq(c *gin.Context) {
	var req workflowRequest
	_ = c.ShouldBindJSON(&req)

	rfq, err := h.store.ApproveRfq(c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// RejectRfq 审批驳回
// POST /api/rfqs/:id/reject
func (h *Handler) RejectRfq(c *gin.Context) {
	var req workflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason is required"})
		return
	}

	rfq, err := h.store.RejectRfq(c.Param("id"), req.UserID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

// ListApprovals 查询审批流水
// GET /api/rfqs/:id/approvals
func (h *Handler) ListApprovals(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.store.GetRfq(id); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.store.ListApprovals(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []*model.ApprovalEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
