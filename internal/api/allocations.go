package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rfqplan/internal/model"
	"rfqplan/internal/store"
)

type allocationRequest struct {
	Name           string         `json:"name"`
	Level          string         `json:"level"`
	Location       string         `json:"location"`
	Role           string         `json:"role"`
	Feature        string         `json:"feature"`
	CustomFeature  string         `json:"customFeature"`
	AllocationType string         `json:"allocationType"`
	StartDate      string         `json:"startDate"`
	EndDate        string         `json:"endDate"`
	FTEPercentage  *int           `json:"ftePercentage"`
	MonthlyFTE     map[string]int `json:"monthlyFTE"`
}

type bulkUpdateRequest struct {
	IDs     []string              `json:"ids" binding:"required"`
	Updates model.AllocationPatch `json:"updates"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type monthlyFTERequest struct {
	Key string `json:"key" binding:"required"`
	FTE *int   `json:"fte" binding:"required"`
}

// editableRfq 取出 RFQ 并校验当前状态允许编辑
func (h *Handler) editableRfq(c *gin.Context, id string) (*model.Rfq, bool) {
	rfq, err := h.store.GetRfq(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !rfq.Editable() {
		respondError(c, store.ErrNotEditable)
		return nil, false
	}
	return rfq, true
}

// CreateAllocation 新增人员分配
// POST /api/rfqs/:id/allocations
//
// 未给出的字段取默认值：Standard / HCC / Software Developer / Integration，
// 类型默认 Whole Project 并跟随 RFQ 日期。
func (h *Handler) CreateAllocation(c *gin.Context) {
	rfq, ok := h.editableRfq(c, c.Param("id"))
	if !ok {
		return
	}

	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := &model.Allocation{
		ID:             fmt.Sprintf("a_%s", uuid.New().String()[:8]),
		RfqID:          rfq.ID,
		Name:           req.Name,
		Level:          req.Level,
		Location:       req.Location,
		Role:           req.Role,
		Feature:        req.Feature,
		CustomFeature:  req.CustomFeature,
		AllocationType: req.AllocationType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		FTEPercentage:  100,
		MonthlyFTE:     req.MonthlyFTE,
	}
	if req.FTEPercentage != nil {
		a.FTEPercentage = *req.FTEPercentage
	}
	applyAllocationDefaults(a)
	a.InheritDates(rfq)

	if err := a.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.CreateAllocation(a); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

// UpdateAllocation 更新单条分配
// PATCH /api/rfqs/:id/allocations/:allocId
func (h *Handler) UpdateAllocation(c *gin.Context) {
	rfq, ok := h.editableRfq(c, c.Param("id"))
	if !ok {
		return
	}

	a, err := h.store.GetAllocation(c.Param("allocId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var patch model.AllocationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch.Apply(a)
	a.InheritDates(rfq)

	if err := a.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.UpdateAllocation(a); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// DeleteAllocation 删除单条分配
// DELETE /api/rfqs/:id/allocations/:allocId
func (h *Handler) DeleteAllocation(c *gin.Context) {
	if _, ok := h.editableRfq(c, c.Param("id")); !ok {
		return
	}
	if err := h.store.DeleteAllocation(c.Param("allocId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// BulkUpdateAllocations 批量修改：对选中分配应用同一组字段
// POST /api/rfqs/:id/allocations/bulk-update
func (h *Handler) BulkUpdateAllocations(c *gin.Context) {
	if _, ok := h.editableRfq(c, c.Param("id")); !ok {
		return
	}

	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.BulkUpdateAllocations(req.IDs, req.Updates); err != nil {
		respondError(c, err)
		return
	}

	allocations, err := h.store.ListAllocations(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allocations)
}

// BulkDeleteAllocations 批量删除
// POST /api/rfqs/:id/allocations/bulk-delete
func (h *Handler) BulkDeleteAllocations(c *gin.Context) {
	if _, ok := h.editableRfq(c, c.Param("id")); !ok {
		return
	}

	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.BulkDeleteAllocations(req.IDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": len(req.IDs)})
}

// SetMonthlyFTE 设置单月 FTE 覆盖；fte 为负时清除该月覆盖
// PUT /api/rfqs/:id/allocations/:allocId/monthly-fte
func (h *Handler) SetMonthlyFTE(c *gin.Context) {
	if _, ok := h.editableRfq(c, c.Param("id")); !ok {
		return
	}

	var req monthlyFTERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// 键必须与引擎的月份键格式一致，否则覆盖永远匹配不上
	if _, err := time.Parse("2006-01", req.Key); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month key must use YYYY-MM format"})
		return
	}
	if *req.FTE > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monthly FTE must be between 0 and 100"})
		return
	}

	a, err := h.store.SetMonthlyFTE(c.Param("allocId"), req.Key, *req.FTE)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func applyAllocationDefaults(a *model.Allocation) {
	if a.Level == "" {
		a.Level = model.LevelStandard
	}
	if a.Location == "" {
		a.Location = "HCC"
	}
	if a.Role == "" {
		a.Role = "Software Developer"
	}
	if a.Feature == "" {
		a.Feature = "Integration"
	}
	if a.AllocationType == "" {
		a.AllocationType = model.AllocationWholeProject
	}
}
