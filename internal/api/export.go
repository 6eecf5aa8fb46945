package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"rfqplan/internal/exporter"
)

// ExportRfq 导出报价工作簿
// GET /api/rfqs/:id/export
func (h *Handler) ExportRfq(c *gin.Context) {
	rfq, ok := h.loadRfqForCalc(c)
	if !ok {
		return
	}
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	f, err := exporter.NewExporter(settings).Export(rfq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s-%s.xlsx", rfq.Name, time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))

	if err := f.Write(c.Writer); err != nil {
		// 响应头已发出，只能记录
		_ = c.Error(err)
	}
}
