package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListNews 资讯列表，category 为空或 all 时返回全部
func (h *Handler) ListNews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.NewsByCategory(c.Query("category"))})
}

// ListDestinations 精选目的地
func (h *Handler) ListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Destinations})
}

// ListTips 环保建议
func (h *Handler) ListTips(c *gin.Context) {
	tips := h.catalog.TipsByCategory(c.Query("category"))
	total := 0
	for _, t := range tips {
		total += t.Points
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tips,
		"meta": gin.H{
			"total_points": total,
			"max_points":   h.catalog.TotalTipPoints(),
		},
	})
}

// ListStatistics 气候数据
func (h *Handler) ListStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Statistics})
}
