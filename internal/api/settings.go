package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rfqplan/internal/model"
)

type updateSettingsRequest struct {
	EngineerRates model.RateTable    `json:"engineerRates"`
	TMSellRates   map[string]float64 `json:"tmSellRates"`
	WP            *model.WPConfig    `json:"wpConfig"`
}

// GetSettings 获取定价配置
// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings 更新定价配置；未给出的部分保持不变
// PATCH /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.store.GetSettings()
	if err != nil {
		respondError(c, err)
		return
	}

	if req.EngineerRates != nil {
		settings.EngineerRates = req.EngineerRates
	}
	if req.TMSellRates != nil {
		settings.TMSellRates = req.TMSellRates
	}
	if req.WP != nil {
		if err := req.WP.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		settings.WP = *req.WP
	}

	if err := h.store.SaveSettings(settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
