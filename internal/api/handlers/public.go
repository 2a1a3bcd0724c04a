package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhaysingh-22/EcoTerra/internal/service"
)

// SubmitFeedback 提交反馈
func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req service.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	f, err := h.svc.Feedback.Submit(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, msgSomethingWrong)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":    gin.H{"id": f.ID},
		"message": "Thank you for your feedback!",
	})
}

// Recommend 环保目的地推荐
func (h *Handler) Recommend(c *gin.Context) {
	var req service.RecommendInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	result, err := h.svc.Recommend.Recommend(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to get recommendations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
