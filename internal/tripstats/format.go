package tripstats

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
)

// 等效换算常量（kg CO2e / 单位）
const (
	TreeSeedlingKg     = 60.0    // 一棵树苗 10 年的吸收量
	SmartphoneChargeKg = 0.00822 // 一次手机充电
)

//nolint:gochecknoglobals
var printer = message.NewPrinter(language.English)

// Equivalency 碳排放的直观换算
type Equivalency struct {
	TreeSeedlings     float64 `json:"tree_seedlings"`
	CarKm             float64 `json:"car_km"`
	SmartphoneCharges float64 `json:"smartphone_charges"`
	Text              string  `json:"text"`
}

// Equivalencies 将碳排放换算为树苗、汽车里程和手机充电次数
func Equivalencies(kg float64) Equivalency {
	if kg <= 0 {
		return Equivalency{Text: "No emissions"}
	}

	eq := Equivalency{
		TreeSeedlings:     emission.Round2(kg / TreeSeedlingKg),
		CarKm:             emission.Round2(kg / emission.FactorCarGasoline),
		SmartphoneCharges: emission.Round2(kg / SmartphoneChargeKg),
	}
	eq.Text = printer.Sprintf("Equivalent to driving ~%d km or charging ~%d smartphones",
		int64(eq.CarKm+0.5), int64(eq.SmartphoneCharges+0.5))
	return eq
}

// FormatKg 带千分位的展示字符串，例如 "1,234.56 kg CO2"
func FormatKg(kg float64) string {
	return printer.Sprintf("%.2f kg CO2", emission.Round2(kg))
}
