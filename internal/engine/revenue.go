package engine

import (
	"fmt"
	"math"

	"rfqplan/internal/model"
)

// LocationRevenue T&M 模式下单一地点的收入明细
type LocationRevenue struct {
	Location string  `json:"location"`
	Hours    float64 `json:"hours"`
	SellRate float64 `json:"sellRate"`
	Revenue  float64 `json:"revenue"`
}

// TMAnalysis Time & Material 模式分析结果
type TMAnalysis struct {
	TotalRevenue      float64           `json:"totalRevenue"`
	TotalCost         float64           `json:"totalCost"`
	Profit            float64           `json:"profit"`
	Margin            float64           `json:"margin"` // 百分比；收入为 0 时报 0
	LocationBreakdown []LocationRevenue `json:"locationBreakdown"`
}

// TicketCounts 三档 Ticket 数量
type TicketCounts struct {
	Small  int `json:"small"`
	Medium int `json:"medium"`
	Large  int `json:"large"`
}

// Empty 三档数量是否全为 0
func (t TicketCounts) Empty() bool {
	return t.Small <= 0 && t.Medium <= 0 && t.Large <= 0
}

// TicketQuote 三档的金额分布
type TicketQuote struct {
	Small  float64 `json:"small"`
	Medium float64 `json:"medium"`
	Large  float64 `json:"large"`
}

// Total 三档金额合计
func (q TicketQuote) Total() float64 {
	return q.Small + q.Medium + q.Large
}

// WPAnalysis Work Package 模式分析结果
type WPAnalysis struct {
	EstimatedStoryPoints int     `json:"estimatedStoryPoints"`
	EstimationMethod     string  `json:"estimationMethod"` // storyPoints / tickets
	HardwareCost         float64 `json:"hardwareCost"`
	DevelopmentCost      float64 `json:"developmentCost"`
	BaseCost             float64 `json:"baseCost"`
	RiskAdjustedCost     float64 `json:"riskAdjustedCost"`

	Tickets           TicketCounts `json:"tickets"`
	QuoteDistribution TicketQuote  `json:"quoteDistribution"`
	TicketPrices      TicketQuote  `json:"ticketPrices"` // 单张价格；数量为 0 的档位为 0
	TotalStoryPoints  int          `json:"totalStoryPoints"`

	TotalRevenue float64 `json:"totalRevenue"`
	Profit       float64 `json:"profit"`
	Margin       float64 `json:"margin"`
}

// Comparison 两种商业模式的对比结果
type Comparison struct {
	TM     TMAnalysis `json:"tm"`
	WP     WPAnalysis `json:"wp"`
	Winner string     `json:"winner"` // tm / wp
	Delta  float64    `json:"delta"`  // 利润差的绝对值
	// 面向展示的结论语句
	Statement string `json:"statement"`
}

// AnalysisOptions 收入分析的可选输入
type AnalysisOptions struct {
	// 正数时覆盖自动估算的故事点
	StoryPointOverride int `json:"storyPointOverride"`
	// 非空时跳过装箱启发式，直接使用给定的档位数量
	DirectTickets *TicketCounts `json:"directTickets"`
}

// TMRevenue 计算 T&M 模式收入
// 各地点工时 × 地点销售费率，未配置费率的地点按 0 计
func TMRevenue(allocations []*model.Allocation, settings *model.Settings) TMAnalysis {
	hoursByLocation := make(map[string]float64)
	for _, a := range allocations {
		hoursByLocation[a.Location] += float64(HoursFor(a))
	}

	analysis := TMAnalysis{
		TotalCost: TotalCost(allocations, settings.EngineerRates),
	}

	// 地点顺序固定，保证输出稳定
	for _, location := range model.Locations {
		hours := hoursByLocation[location]
		sellRate := settings.TMSellRates[location]
		revenue := hours * sellRate
		analysis.TotalRevenue += revenue
		analysis.LocationBreakdown = append(analysis.LocationBreakdown, LocationRevenue{
			Location: location,
			Hours:    hours,
			SellRate: sellRate,
			Revenue:  revenue,
		})
	}

	analysis.Profit = analysis.TotalRevenue - analysis.TotalCost
	analysis.Margin = safeMargin(analysis.Profit, analysis.TotalRevenue)
	return analysis
}

// BinPackTickets 故事点 → Ticket 组合的贪心装箱
//
// 大 → 中 → 小 顺序：大、中档位取整除，余量用小档位向上取整兜底，
// 组合覆盖的故事点永远不少于请求值。确定性启发式，不保证张数最少，
// 顺序不可更改（与既有报价口径兼容）。
func BinPackTickets(storyPoints int, wp *model.WPConfig) TicketCounts {
	var combination TicketCounts
	if storyPoints <= 0 {
		return combination
	}

	remaining := storyPoints
	combination.Large = remaining / wp.Tickets.Large.StoryPoints
	remaining -= combination.Large * wp.Tickets.Large.StoryPoints

	combination.Medium = remaining / wp.Tickets.Medium.StoryPoints
	remaining -= combination.Medium * wp.Tickets.Medium.StoryPoints

	if remaining > 0 {
		combination.Small = (remaining + wp.Tickets.Small.StoryPoints - 1) / wp.Tickets.Small.StoryPoints
	}

	return combination
}

// WPRevenue 计算 Work Package 模式收入
//
// 成本侧：开发成本 + 硬件成本，再按风险系数上浮。
// 收入侧：各档位按 QuotePercentage 分得风险调整后成本的份额；
// 总收入只由百分比决定，Ticket 数量只稀释单张价格。
func WPRevenue(allocations []*model.Allocation, settings *model.Settings, opts AnalysisOptions) WPAnalysis {
	wp := &settings.WP

	totalHours := TotalHours(allocations)
	hardwareCost := float64(totalHours) * wp.HardwareCostPerHour
	developmentCost := TotalCost(allocations, settings.EngineerRates)
	baseCost := developmentCost + hardwareCost
	riskAdjustedCost := baseCost * (1 + wp.RiskFactor/100)

	analysis := WPAnalysis{
		HardwareCost:     hardwareCost,
		DevelopmentCost:  developmentCost,
		BaseCost:         baseCost,
		RiskAdjustedCost: riskAdjustedCost,
	}

	if opts.DirectTickets != nil && !opts.DirectTickets.Empty() {
		// 直接给定档位数量：估算故事点反推为展示值
		analysis.Tickets = *opts.DirectTickets
		analysis.EstimatedStoryPoints = ticketStoryPoints(analysis.Tickets, wp)
		analysis.EstimationMethod = "tickets"
	} else {
		sp := opts.StoryPointOverride
		if sp <= 0 && wp.StoryPointsToHours > 0 {
			sp = int(math.Ceil(float64(totalHours) / wp.StoryPointsToHours))
		}
		analysis.EstimatedStoryPoints = sp
		analysis.Tickets = BinPackTickets(sp, wp)
		analysis.EstimationMethod = "storyPoints"
	}

	analysis.QuoteDistribution = TicketQuote{
		Small:  riskAdjustedCost * wp.Tickets.Small.QuotePercentage / 100,
		Medium: riskAdjustedCost * wp.Tickets.Medium.QuotePercentage / 100,
		Large:  riskAdjustedCost * wp.Tickets.Large.QuotePercentage / 100,
	}
	analysis.TicketPrices = TicketQuote{
		Small:  perTicketPrice(analysis.QuoteDistribution.Small, analysis.Tickets.Small),
		Medium: perTicketPrice(analysis.QuoteDistribution.Medium, analysis.Tickets.Medium),
		Large:  perTicketPrice(analysis.QuoteDistribution.Large, analysis.Tickets.Large),
	}
	analysis.TotalStoryPoints = ticketStoryPoints(analysis.Tickets, wp)

	analysis.TotalRevenue = analysis.QuoteDistribution.Total()
	analysis.Profit = analysis.TotalRevenue - riskAdjustedCost
	analysis.Margin = safeMargin(analysis.Profit, analysis.TotalRevenue)
	return analysis
}

// CompareModels 对比 T&M 与 WP 两种商业模式
func CompareModels(allocations []*model.Allocation, settings *model.Settings, opts AnalysisOptions) Comparison {
	cmp := Comparison{
		TM: TMRevenue(allocations, settings),
		WP: WPRevenue(allocations, settings, opts),
	}

	if cmp.WP.Profit > cmp.TM.Profit {
		cmp.Winner = "wp"
		cmp.Delta = cmp.WP.Profit - cmp.TM.Profit
		cmp.Statement = fmt.Sprintf("Work Package model is more profitable by €%.0f", cmp.Delta)
	} else {
		cmp.Winner = "tm"
		cmp.Delta = cmp.TM.Profit - cmp.WP.Profit
		cmp.Statement = fmt.Sprintf("Time & Material model is more profitable by €%.0f", cmp.Delta)
	}

	return cmp
}

func ticketStoryPoints(t TicketCounts, wp *model.WPConfig) int {
	return t.Small*wp.Tickets.Small.StoryPoints +
		t.Medium*wp.Tickets.Medium.StoryPoints +
		t.Large*wp.Tickets.Large.StoryPoints
}

func perTicketPrice(quota float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return quota / float64(count)
}

// safeMargin 利润率（百分比）；收入为 0 时报 0 而非除零
func safeMargin(profit, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return profit / revenue * 100
}
