package emission

// MethodStaticTable 唯一的排放因子表标识
const MethodStaticTable = "static-factor-table"

// 单位换算常量
const (
	KmPerMile = 1.60934
	LbPerKg   = 2.20462
)

// MaxDistanceKm 单次行程距离上限（公里），超出视为输入错误
const MaxDistanceKm = 1_000_000

// 排放因子 (kg CO2 / 人·公里)
//
// 历史资料中存在两张互相矛盾的表（flight 0.175 vs 0.255），
// 这里统一采用包含 bus/ship 和汽车动力细分的那一张，不做混用。
// bus 的备选值 0.032 不使用。
const (
	FactorFlight      = 0.255
	FactorCarGasoline = 0.171
	FactorCarElectric = 0.05
	FactorCarHybrid   = 0.12
	FactorTrain       = 0.041
	FactorBus         = 0.089
	FactorShip        = 0.113
)

// Factor 查询排放因子；vehicle 只对 car 生效，空值视为 gasoline
func Factor(mode Mode, vehicle VehicleType) (float64, bool) {
	switch mode {
	case ModeFlight:
		return FactorFlight, true
	case ModeCar:
		switch vehicle {
		case "", VehicleGasoline:
			return FactorCarGasoline, true
		case VehicleElectric:
			return FactorCarElectric, true
		case VehicleHybrid:
			return FactorCarHybrid, true
		}
		return 0, false
	case ModeTrain:
		return FactorTrain, true
	case ModeBus:
		return FactorBus, true
	case ModeShip:
		return FactorShip, true
	}
	return 0, false
}

// FactorEntry 因子表中的一行
type FactorEntry struct {
	Mode          Mode        `json:"mode"`
	VehicleType   VehicleType `json:"vehicle_type,omitempty"`
	FactorKgPerKm float64     `json:"factor_kg_per_km"`
}

// Factors 返回完整因子表（用于展示）
func Factors() []FactorEntry {
	return []FactorEntry{
		{Mode: ModeFlight, FactorKgPerKm: FactorFlight},
		{Mode: ModeCar, VehicleType: VehicleGasoline, FactorKgPerKm: FactorCarGasoline},
		{Mode: ModeCar, VehicleType: VehicleElectric, FactorKgPerKm: FactorCarElectric},
		{Mode: ModeCar, VehicleType: VehicleHybrid, FactorKgPerKm: FactorCarHybrid},
		{Mode: ModeTrain, FactorKgPerKm: FactorTrain},
		{Mode: ModeBus, FactorKgPerKm: FactorBus},
		{Mode: ModeShip, FactorKgPerKm: FactorShip},
	}
}
