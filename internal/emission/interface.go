package emission

import (
	"fmt"
	"strings"
	"time"
)

// Carbon Interface 兼容格式
// 对应 https://www.carboninterface.com/api/v1/estimates 的响应结构，仅做展示转换。

// CarbonInterfaceRequest 旧版前端使用的请求体
type CarbonInterfaceRequest struct {
	Type          string  `json:"type"` // vehicle | flight
	DistanceValue float64 `json:"distance_value"`
	DistanceUnit  string  `json:"distance_unit"`
	VehicleModel  string  `json:"vehicle_model,omitempty"`
}

// CarbonInterfaceResponse 响应体
type CarbonInterfaceResponse struct {
	Data CarbonInterfaceData `json:"data"`
}

// CarbonInterfaceData 响应数据
type CarbonInterfaceData struct {
	ID         string                    `json:"id"`
	Type       string                    `json:"type"`
	Attributes CarbonInterfaceAttributes `json:"attributes"`
}

// CarbonInterfaceAttributes 估算属性
type CarbonInterfaceAttributes struct {
	DistanceValue float64   `json:"distance_value"`
	DistanceUnit  string    `json:"distance_unit"`
	CarbonG       float64   `json:"carbon_g"`
	CarbonLb      float64   `json:"carbon_lb"`
	CarbonKg      float64   `json:"carbon_kg"`
	CarbonMt      float64   `json:"carbon_mt"`
	EstimatedAt   time.Time `json:"estimated_at"`
}

// ToInput 转换为 TripInput
// vehicle 对应 car，vehicle_model 中含 electric / hybrid 时选择对应动力类型
func (r CarbonInterfaceRequest) ToInput() (TripInput, error) {
	in := TripInput{
		DistanceValue: r.DistanceValue,
		DistanceUnit:  Unit(strings.ToLower(r.DistanceUnit)),
	}
	if in.DistanceUnit == "" {
		in.DistanceUnit = UnitKm
	}

	switch strings.ToLower(r.Type) {
	case "flight":
		in.Mode = ModeFlight
	case "vehicle":
		in.Mode = ModeCar
		model := strings.ToLower(r.VehicleModel)
		switch {
		case strings.Contains(model, "electric"):
			in.VehicleType = VehicleElectric
		case strings.Contains(model, "hybrid"):
			in.VehicleType = VehicleHybrid
		default:
			in.VehicleType = VehicleGasoline
		}
	default:
		return TripInput{}, invalid("unknown estimate type %q", r.Type)
	}
	return in, nil
}

// ToCarbonInterface 将估算结果渲染为 Carbon Interface 格式
// 结果本身与时间无关，estimatedAt 只用于展示
func ToCarbonInterface(est Estimate, estimatedAt time.Time) CarbonInterfaceResponse {
	return CarbonInterfaceResponse{
		Data: CarbonInterfaceData{
			ID:   estimateID(est),
			Type: "estimate",
			Attributes: CarbonInterfaceAttributes{
				DistanceValue: est.DistanceKm,
				DistanceUnit:  string(UnitKm),
				CarbonG:       Round2(est.CarbonKg * 1000),
				CarbonLb:      est.CarbonLb,
				CarbonKg:      est.CarbonKg,
				CarbonMt:      est.CarbonKg / 1000,
				EstimatedAt:   estimatedAt.UTC(),
			},
		},
	}
}

// estimateID 由输入决定的稳定 ID
func estimateID(est Estimate) string {
	id := fmt.Sprintf("%s-%.3f-%d", est.Mode, est.DistanceKm, est.Passengers)
	if est.VehicleType != "" {
		id = fmt.Sprintf("%s-%s", id, est.VehicleType)
	}
	return id
}
