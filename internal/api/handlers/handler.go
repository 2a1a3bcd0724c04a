// Package handlers HTTP 接口
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/api/middleware"
	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/service"
	"github.com/abhaysingh-22/EcoTerra/pkg/ws"
)

const healthPingTimeout = 2 * time.Second

// 面向用户的错误信息
const (
	msgSomethingWrong         = "Something went wrong. Please try again."
	msgInvalidBody            = "Invalid request body"
	msgNotFound               = "Not found"
	msgRecommenderUnavailable = "Recommendation service is unavailable. Please try again later."
)

// respondError 将业务错误映射为 HTTP 状态码
// 未识别的错误记录日志并返回 failMsg
func (h *Handler) respondError(c *gin.Context, err error, failMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "errors": verr.Fields})
	case errors.Is(err, emission.ErrInvalidInput), errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, service.ErrFeedbackUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSomethingWrong})
	case errors.Is(err, service.ErrRecommenderUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": msgRecommenderUnavailable})
	default:
		h.logger.Error(failMsg,
			zap.String("request_id", c.GetString(middleware.ContextRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":     "ok",
		"ws_clients": h.wsHub.ClientCount(),
	}

	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			h.logger.Warn("Database ping failed", zap.Error(err))
			resp["status"] = "degraded"
			resp["database"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
	}

	c.JSON(http.StatusOK, resp)
}

// HandleWebSocket WebSocket 处理，连接归属于 token 中的用户
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID := middleware.UserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.String("user_id", userID), zap.Error(err))
		return
	}

	client := ws.NewClient(h.wsHub, conn, userID)
	// 初始数据在当前请求协程中加载
	client.Register()

	// 启动读写协程
	go client.ReadPump()
	go client.WritePump()
}
