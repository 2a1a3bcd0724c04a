package emission

import "strings"

// Mode 交通方式
type Mode string

const (
	ModeFlight Mode = "flight"
	ModeCar    Mode = "car"
	ModeTrain  Mode = "train"
	ModeBus    Mode = "bus"
	ModeShip   Mode = "ship"
)

// Modes 所有支持的交通方式（固定顺序，用于展示）
var Modes = []Mode{ModeFlight, ModeCar, ModeTrain, ModeBus, ModeShip}

// Valid 是否为可识别的交通方式
func (m Mode) Valid() bool {
	switch m {
	case ModeFlight, ModeCar, ModeTrain, ModeBus, ModeShip:
		return true
	}
	return false
}

// ParseMode 解析交通方式（大小写不敏感，"Flight" 与 "flight" 等价）
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Unit 距离单位
type Unit string

const (
	UnitKm Unit = "km"
	UnitMi Unit = "mi"
)

// Valid 是否为可识别的距离单位
func (u Unit) Valid() bool {
	return u == UnitKm || u == UnitMi
}

// VehicleType 汽车动力类型，只对 car 生效
type VehicleType string

const (
	VehicleGasoline VehicleType = "gasoline"
	VehicleElectric VehicleType = "electric"
	VehicleHybrid   VehicleType = "hybrid"
)

// Valid 是否为可识别的动力类型
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleGasoline, VehicleElectric, VehicleHybrid:
		return true
	}
	return false
}

// TripInput 行程输入
type TripInput struct {
	Mode          Mode        `json:"mode"`
	DistanceValue float64     `json:"distance_value"`
	DistanceUnit  Unit        `json:"distance_unit"`
	Passengers    int         `json:"passengers"`             // 0 表示未填写，按 1 计算
	VehicleType   VehicleType `json:"vehicle_type,omitempty"` // 空值按 gasoline 计算
}

// Estimate 排放估算结果，计算完成后不再修改
type Estimate struct {
	Mode          Mode        `json:"mode"`
	VehicleType   VehicleType `json:"vehicle_type,omitempty"`
	Passengers    int         `json:"passengers"`
	DistanceKm    float64     `json:"distance_km"`
	FactorKgPerKm float64     `json:"factor_kg_per_km"`
	CarbonKg      float64     `json:"carbon_kg"`
	CarbonLb      float64     `json:"carbon_lb"`
	Method        string      `json:"method"`
}
