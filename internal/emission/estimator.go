// Package emission 行程碳排放估算
//
// 估算是纯函数：相同输入总是得到相同输出，不做任何 I/O。
package emission

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput 输入不合法，是本包唯一的错误类型
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validate 校验输入，返回可用于计算的乘客数
func (in TripInput) Validate() (int, error) {
	if !in.Mode.Valid() {
		return 0, invalid("unknown mode %q", in.Mode)
	}
	if math.IsNaN(in.DistanceValue) || math.IsInf(in.DistanceValue, 0) {
		return 0, invalid("distance_value must be finite")
	}
	if in.DistanceValue <= 0 {
		return 0, invalid("distance_value must be positive")
	}
	if !in.DistanceUnit.Valid() {
		return 0, invalid("unknown distance_unit %q", in.DistanceUnit)
	}
	if ToKm(in.DistanceValue, in.DistanceUnit) > MaxDistanceKm {
		return 0, invalid("distance_value too large (max %d km)", MaxDistanceKm)
	}
	if in.VehicleType != "" && !in.VehicleType.Valid() {
		return 0, invalid("unknown vehicle_type %q", in.VehicleType)
	}

	passengers := in.Passengers
	if passengers == 0 {
		passengers = 1
	}
	if passengers < 1 {
		return 0, invalid("passengers must be at least 1")
	}
	if passengers > math.MaxInt32 {
		return 0, invalid("passengers too large")
	}
	return passengers, nil
}

// Calculate 估算一次行程的碳排放
//
// carbon_kg = distance_km * factor * passengers，保留两位小数（四舍五入，远离零）；
// carbon_lb 由取整后的 carbon_kg 换算再取整。
func Calculate(in TripInput) (Estimate, error) {
	passengers, err := in.Validate()
	if err != nil {
		return Estimate{}, err
	}

	vehicle := in.VehicleType
	if in.Mode == ModeCar && vehicle == "" {
		vehicle = VehicleGasoline
	}
	if in.Mode != ModeCar {
		vehicle = ""
	}

	factor, ok := Factor(in.Mode, vehicle)
	if !ok {
		return Estimate{}, invalid("no emission factor for mode %q", in.Mode)
	}

	distanceKm := ToKm(in.DistanceValue, in.DistanceUnit)
	carbonKg := Round2(distanceKm * factor * float64(passengers))
	carbonLb := Round2(carbonKg * LbPerKg)
	if math.IsInf(carbonKg, 0) || math.IsInf(carbonLb, 0) {
		return Estimate{}, invalid("distance_value too large")
	}

	return Estimate{
		Mode:          in.Mode,
		VehicleType:   vehicle,
		Passengers:    passengers,
		DistanceKm:    distanceKm,
		FactorKgPerKm: factor,
		CarbonKg:      carbonKg,
		CarbonLb:      carbonLb,
		Method:        MethodStaticTable,
	}, nil
}

// ToKm 距离换算为公里
func ToKm(value float64, unit Unit) float64 {
	if unit == UnitMi {
		return value * KmPerMile
	}
	return value
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PassengerCount 将请求中的乘客数转换为整数
// nil 表示未填写，返回 1；非整数或小于 1 返回 ErrInvalidInput
func PassengerCount(v *float64) (int, error) {
	if v == nil {
		return 1, nil
	}
	p := *v
	if math.IsNaN(p) || math.IsInf(p, 0) || p != math.Trunc(p) {
		return 0, invalid("passengers must be an integer")
	}
	if p < 1 {
		return 0, invalid("passengers must be at least 1")
	}
	if p > math.MaxInt32 {
		return 0, invalid("passengers too large")
	}
	return int(p), nil
}

// GreenerAlternative 更低碳的替代方式（flight、car 建议改乘火车）
func GreenerAlternative(mode Mode) (Mode, bool) {
	switch mode {
	case ModeFlight, ModeCar:
		return ModeTrain, true
	}
	return "", false
}
