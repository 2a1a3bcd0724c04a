package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/api/middleware"
	"github.com/abhaysingh-22/EcoTerra/internal/content"
	"github.com/abhaysingh-22/EcoTerra/internal/service"
	"github.com/abhaysingh-22/EcoTerra/pkg/ws"
)

// Services 处理器依赖的业务服务
type Services struct {
	Trips     *service.TripService
	Profiles  *service.ProfileService
	Feedback  *service.FeedbackService
	Recommend *service.RecommendService
}

// Handler HTTP 处理器
type Handler struct {
	logger   *zap.Logger
	svc      Services
	catalog  *content.Catalog
	jwt      *middleware.JWTService
	limiter  *middleware.RateLimiter
	wsHub    *ws.Hub
	dbPing   func(ctx context.Context) error
	upgrader websocket.Upgrader
}

// NewHandler 创建处理器
// dbPing 可以为 nil，此时健康检查不检查数据库
func NewHandler(
	logger *zap.Logger,
	svc Services,
	catalog *content.Catalog,
	jwt *middleware.JWTService,
	limiter *middleware.RateLimiter,
	wsHub *ws.Hub,
	dbPing func(ctx context.Context) error,
) *Handler {
	return &Handler{
		logger:  logger,
		svc:     svc,
		catalog: catalog,
		jwt:     jwt,
		limiter: limiter,
		wsHub:   wsHub,
		dbPing:  dbPing,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 身份由 token 校验
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// 排放估算
		api.GET("/emission-factors", h.ListEmissionFactors)
		api.POST("/estimates", h.CreateEstimate)
		api.POST("/carbon-footprint", h.CarbonFootprint)

		// 内容
		api.GET("/content/news", h.ListNews)
		api.GET("/content/destinations", h.ListDestinations)
		api.GET("/content/tips", h.ListTips)
		api.GET("/content/statistics", h.ListStatistics)

		// 限流的公开接口
		limited := api.Group("", h.limiter.Middleware())
		limited.POST("/feedback", h.SubmitFeedback)
		limited.POST("/recommendations", h.Recommend)

		// 用户
		user := api.Group("/user", middleware.Auth(h.jwt))
		user.GET("/profile", h.GetProfile)
		user.POST("/profile", h.UpsertProfile)
		user.PUT("/profile", h.UpdateProfile)
		user.GET("/overview", h.GetOverview)
		user.POST("/trips", h.SaveTrip)
		user.GET("/trips", h.ListTrips)
		user.GET("/trips/:id", h.GetTrip)
		user.GET("/summary", h.GetSummary)
	}

	// WebSocket
	r.GET("/ws", middleware.Auth(h.jwt), h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}
