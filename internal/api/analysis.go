package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfqplan/internal/engine"
	"rfqplan/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version   string         `json:"version"`
	RfqCount  int            `json:"rfqCount"`
	ByStatus  map[string]int `json:"byStatus"`
	Allocated int            `json:"allocated"` // 全部 RFQ 下的分配总数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	rfqs, err := h.store.ListRfqs()
	if err != nil {
		respondError(c, err)
		return
	}

	resp := StatusResponse{
		Version:  "1.0.0",
		RfqCount: len(rfqs),
		ByStatus: make(map[string]int),
	}
	for _, rfq := range rfqs {
		resp.ByStatus[rfq.Status]++
		resp.Allocated += len(rfq.Allocations)
	}
	c.JSON(http.StatusOK, resp)
}

// loadRfqForCalc 取出 RFQ 并派生 Whole Project 分配的日期
func (h *Handler) loadRfqForCalc(c *gin.Context) (*model.Rfq, bool) {
	rfq, err := h.store.GetRfq(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	for _, a := range rfq.Allocations {
		a.InheritDates(rfq)
	}
	return rfq, true
}

// GetMetrics 资源指标汇总
// GET /api/rfqs/:id/metrics
func (h *Handler) GetMetrics(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, engine.Aggregate(rfq.Allocations, settings.EngineerRates))
}

// GetYearlyData 按年份分摊的投入视图
// GET /api/rfqs/:id/yearly
func (h *Handler) GetYearlyData(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, engine.YearlyData(rfq, settings.EngineerRates))
}

// GetConflicts 人员时间段冲突检测
// GET /api/rfqs/:id/conflicts
func (h *Handler) GetConflicts(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}

	conflicts := engine.DetectConflicts(rfq.Allocations)
	if conflicts == nil {
		conflicts = []engine.Conflict{}
	}
	c.JSON(http.StatusOK, conflicts)
}

// GetSuggestions 资源优化建议
// GET /api/rfqs/:id/suggestions
func (h *Handler) GetSuggestions(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	suggestions := engine.Suggestions(rfq.Allocations, settings.EngineerRates)
	if suggestions == nil {
		suggestions = []engine.Suggestion{}
	}
	c.JSON(http.StatusOK, suggestions)
}

// GetTimeline 逐月投入时间线
// GET /api/rfqs/:id/timeline
func (h *Handler) GetTimeline(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}

	timeline := engine.Timeline(rfq.Allocations)
	if timeline == nil {
		timeline = []engine.MonthlyFTEView{}
	}
	c.JSON(http.StatusOK, timeline)
}

// RunAnalysis T&M 与 Work Package 两种商业模式的对比分析
// POST /api/rfqs/:id/analysis
func (h *Handler) RunAnalysis(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	var opts engine.AnalysisOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, engine.CompareModels(rfq.Allocations, settings, opts))
}
