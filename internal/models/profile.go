package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 偏好默认值
const (
	DefaultCarbonBudgetKg     = 1000.0 // 每年 1000 kg CO2
	DefaultPreferredTransport = "train"
)

// Profile 用户资料
type Profile struct {
	UID         string      `json:"uid" db:"uid"`
	Email       string      `json:"email" db:"email"`
	DisplayName string      `json:"display_name" db:"display_name"`
	PhotoURL    *string     `json:"photo_url,omitempty" db:"photo_url"`
	Preferences Preferences `json:"preferences" db:"preferences"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Preferences 用户偏好（以 JSONB 存储）
type Preferences struct {
	SustainabilityGoals []string `json:"sustainability_goals"`
	CarbonBudgetKg      float64  `json:"carbon_budget_kg"`
	PreferredTransport  string   `json:"preferred_transport"`
}

// WithDefaults 补全未填写的偏好
func (p Preferences) WithDefaults() Preferences {
	if p.SustainabilityGoals == nil {
		p.SustainabilityGoals = []string{}
	}
	if p.CarbonBudgetKg <= 0 {
		p.CarbonBudgetKg = DefaultCarbonBudgetKg
	}
	if p.PreferredTransport == "" {
		p.PreferredTransport = DefaultPreferredTransport
	}
	return p
}

// Value 实现 driver.Valuer 接口，用于存储到数据库
func (p Preferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口，用于从数据库读取
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported preferences type %T", value)
	}
}

// ProfileUpdate 资料的部分更新，nil 字段保持不变
type ProfileUpdate struct {
	DisplayName *string      `json:"display_name,omitempty"`
	PhotoURL    *string      `json:"photo_url,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}
