package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// estimateRequest 估算请求体
// passengers 用 *float64 接收，以区分未填写与非整数
type estimateRequest struct {
	Mode          string   `json:"mode"`
	DistanceValue float64  `json:"distance_value"`
	DistanceUnit  string   `json:"distance_unit"`
	Passengers    *float64 `json:"passengers"`
	VehicleType   string   `json:"vehicle_type"`
}

func (r estimateRequest) toInput() (emission.TripInput, error) {
	passengers, err := emission.PassengerCount(r.Passengers)
	if err != nil {
		return emission.TripInput{}, err
	}

	mode, ok := emission.ParseMode(r.Mode)
	if !ok {
		mode = emission.Mode(r.Mode)
	}
	return emission.TripInput{
		Mode:          mode,
		DistanceValue: r.DistanceValue,
		DistanceUnit:  emission.Unit(strings.ToLower(strings.TrimSpace(r.DistanceUnit))),
		Passengers:    passengers,
		VehicleType:   emission.VehicleType(strings.ToLower(strings.TrimSpace(r.VehicleType))),
	}, nil
}

// saveTripRequest 保存行程请求体，展示字段不参与计算
type saveTripRequest struct {
	estimateRequest
	models.TripDetails
}

// ListEmissionFactors 排放因子表
func (h *Handler) ListEmissionFactors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"method":  emission.MethodStaticTable,
			"factors": emission.Factors(),
		},
	})
}

// CreateEstimate 估算单次行程排放
func (h *Handler) CreateEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	in, err := req.toInput()
	if err != nil {
		h.respondError(c, err, "Failed to estimate trip")
		return
	}

	result, err := h.svc.Trips.Estimate(in)
	if err != nil {
		h.respondError(c, err, "Failed to estimate trip")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// CarbonFootprint Carbon Interface 兼容格式的估算
// 该格式本身带有 data 外层，直接返回
func (h *Handler) CarbonFootprint(c *gin.Context) {
	var req emission.CarbonInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.respondError(c, err, "Failed to estimate trip")
		return
	}

	est, err := emission.Calculate(in)
	if err != nil {
		h.respondError(c, err, "Failed to estimate trip")
		return
	}

	c.JSON(http.StatusOK, emission.ToCarbonInterface(est, time.Now()))
}
