package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhaysingh-22/EcoTerra/internal/api/middleware"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
	"github.com/abhaysingh-22/EcoTerra/internal/service"
)

// GetProfile 获取当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.Profiles.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UpsertProfile 创建或覆盖资料
func (h *Handler) UpsertProfile(c *gin.Context) {
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	profile, err := h.svc.Profiles.Upsert(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, err, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// UpdateProfile 部分更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	profile, err := h.svc.Profiles.Update(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

// GetOverview 用户主页：资料、汇总、预算状态和最近行程
func (h *Handler) GetOverview(c *gin.Context) {
	overview, err := h.svc.Profiles.Overview(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to load overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}

// SaveTrip 估算并保存行程
func (h *Handler) SaveTrip(c *gin.Context) {
	var req saveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	in, err := req.toInput()
	if err != nil {
		h.respondError(c, err, "Failed to save trip")
		return
	}

	trip, err := h.svc.Trips.Save(c.Request.Context(), middleware.UserID(c), in, req.TripDetails)
	if err != nil {
		h.respondError(c, err, "Failed to save trip")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": trip})
}

// ListTrips 行程历史
func (h *Handler) ListTrips(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultTripLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := h.svc.Trips.History(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		h.respondError(c, err, "Failed to list trips")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    history.Trips,
		"summary": history.Summary,
		"pagination": gin.H{
			"limit":  history.Limit,
			"offset": history.Offset,
			"total":  history.Total,
		},
	})
}

// GetTrip 行程详情
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.svc.Trips.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get trip")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": trip})
}

// GetSummary 行程汇总和预算状态
func (h *Handler) GetSummary(c *gin.Context) {
	result, err := h.svc.Trips.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to load summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
