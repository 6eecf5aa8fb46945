package model

import "fmt"

// RateTable 成本费率表：级别 → 地点 → 小时费率（€/h）
// 分配引用的 (level, location) 缺失时按 0 处理，不视为错误
type RateTable map[string]map[string]float64

// Rate 查询费率，缺失返回 0
func (t RateTable) Rate(level, location string) float64 {
	if t == nil {
		return 0
	}
	return t[level][location]
}

// TicketTier 工作包 Ticket 档位配置
type TicketTier struct {
	StoryPoints     int     `json:"storyPoints"`
	Price           float64 `json:"price"` // 参考价，不参与报价计算
	QuotePercentage float64 `json:"quotePercentage"`
}

// WPConfig 工作包（Work Package）报价配置
//
// 各档位 QuotePercentage 是商务谈判确定的分成比例，允许合计不等于 100%，
// 引擎不做归一化（上游产品待澄清项，保留原始行为）
type WPConfig struct {
	StoryPointsToHours  float64 `json:"storyPointsToHours"`
	HardwareCostPerHour float64 `json:"hardwareCostPerHour"`
	RiskFactor          float64 `json:"riskFactor"` // 百分比，如 15 表示 +15%

	Tickets struct {
		Small  TicketTier `json:"small"`
		Medium TicketTier `json:"medium"`
		Large  TicketTier `json:"large"`
	} `json:"tickets"`
}

// Validate 结构性校验：非正的档位故事点会导致装箱除零
func (c *WPConfig) Validate() error {
	if c.StoryPointsToHours <= 0 {
		return fmt.Errorf("storyPointsToHours must be positive, got %v", c.StoryPointsToHours)
	}
	tiers := map[string]TicketTier{
		"small":  c.Tickets.Small,
		"medium": c.Tickets.Medium,
		"large":  c.Tickets.Large,
	}
	for name, tier := range tiers {
		if tier.StoryPoints <= 0 {
			return fmt.Errorf("%s ticket story points must be positive, got %d", name, tier.StoryPoints)
		}
	}
	return nil
}

// Settings 全部定价配置，以只读快照传入引擎
type Settings struct {
	EngineerRates RateTable          `json:"engineerRates"`
	TMSellRates   map[string]float64 `json:"tmSellRates"` // 地点 → T&M 销售费率（€/h）
	WP            WPConfig           `json:"wpConfig"`
}

// DefaultSettings 默认定价配置
func DefaultSettings() *Settings {
	s := &Settings{
		EngineerRates: RateTable{
			LevelJunior:          {"HCC": 45, "BCC": 35, "MCC": 25},
			LevelStandard:        {"HCC": 60, "BCC": 50, "MCC": 35},
			LevelSenior:          {"HCC": 80, "BCC": 65, "MCC": 50},
			LevelPrincipal:       {"HCC": 100, "BCC": 80, "MCC": 65},
			LevelTechnicalLeader: {"HCC": 120, "BCC": 95, "MCC": 75},
			LevelFO:              {"HCC": 140, "BCC": 110, "MCC": 85},
		},
		TMSellRates: map[string]float64{
			"HCC": 120,
			"BCC": 95,
			"MCC": 75,
		},
	}
	s.WP.StoryPointsToHours = 8
	s.WP.HardwareCostPerHour = 5
	s.WP.RiskFactor = 15
	s.WP.Tickets.Small = TicketTier{StoryPoints: 5, Price: 2500, QuotePercentage: 25}
	s.WP.Tickets.Medium = TicketTier{StoryPoints: 13, Price: 6500, QuotePercentage: 25}
	s.WP.Tickets.Large = TicketTier{StoryPoints: 21, Price: 12000, QuotePercentage: 50}
	return s
}
