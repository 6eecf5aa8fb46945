package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfqplan/internal/store"
)

// Handler API 处理器
type Handler struct {
	store *store.Store
}

// NewHandler 创建 API 处理器
func NewHandler(store *store.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 定价配置
	router.GET("/settings", h.GetSettings)
	router.PATCH("/settings", h.UpdateSettings)

	// RFQ 管理
	router.GET("/rfqs", h.ListRfqs)
	router.POST("/rfqs", h.CreateRfq)
	router.GET("/rfqs/:id", h.GetRfq)
	router.PATCH("/rfqs/:id", h.UpdateRfq)
	router.DELETE("/rfqs/:id", h.DeleteRfq)

	// 审批流
	router.POST("/rfqs/:id/submit", h.SubmitRfq)
	router.POST("/rfqs/:id/approve", h.ApproveRfq)
	router.POST("/rfqs/:id/reject", h.RejectRfq)
	router.GET("/rfqs/:id/approvals", h.ListApprovals)

	// 人员分配
	router.POST("/rfqs/:id/allocations", h.CreateAllocation)
	router.PATCH("/rfqs/:id/allocations/:allocId", h.UpdateAllocation)
	router.DELETE("/rfqs/:id/allocations/:allocId", h.DeleteAllocation)
	router.POST("/rfqs/:id/allocations/bulk-update", h.BulkUpdateAllocations)
	router.POST("/rfqs/:id/allocations/bulk-delete", h.BulkDeleteAllocations)
	router.PUT("/rfqs/:id/allocations/:allocId/monthly-fte", h.SetMonthlyFTE)

	// 计算与分析
	router.GET("/rfqs/:id/metrics", h.GetMetrics)
	router.GET("/rfqs/:id/yearly", h.GetYearlyData)
	router.GET("/rfqs/:id/conflicts", h.GetConflicts)
	router.GET("/rfqs/:id/suggestions", h.GetSuggestions)
	router.GET("/rfqs/:id/timeline", h.GetTimeline)
	router.POST("/rfqs/:id/analysis", h.RunAnalysis)

	// 报价导出
	router.GET("/rfqs/:id/export", h.ExportRfq)
}

// respondError 把存储层错误映射为 HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrRfqNotFound), errors.Is(err, store.ErrAllocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotEditable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
