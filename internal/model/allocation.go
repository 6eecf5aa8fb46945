package model

import (
	"errors"
	"strings"
	"time"
)

// DateLayout 日期字符串格式（与前端保持一致）
const DateLayout = "2006-01-02"

// 经验级别
const (
	LevelJunior          = "Junior"
	LevelStandard        = "Standard"
	LevelSenior          = "Senior"
	LevelPrincipal       = "Principal"
	LevelTechnicalLeader = "Technical Leader"
	LevelFO              = "FO"
)

// EngineerLevels 全部经验级别（顺序固定，用于展示与导出）
var EngineerLevels = []string{
	LevelJunior, LevelStandard, LevelSenior,
	LevelPrincipal, LevelTechnicalLeader, LevelFO,
}

// Locations 成本中心（三字码）
var Locations = []string{"HCC", "BCC", "MCC"}

// Roles 可选角色
var Roles = []string{
	"Project Manager", "Defect Manager", "Technical Lead", "Test Lead",
	"Architect", "BSW SW Architect", "FO", "Integration Lead", "Integration",
	"Integrator", "Software Developer", "Software Test Engineer (UT, IT)",
	"Software Test Engineer (QT)",
}

// Features 可选功能域；选择 Other 时必须填写 CustomFeature
var Features = []string{
	"Diagnostics & Degradation", "Log & Trace", "Flashing & Coding", "Life Cycle",
	"Cluster (MCAL, OS)", "FUSA", "Cyber Security", "Network", "Integration",
	"Architecture", "Project Management", "Resident Engineer", "Other",
}

// FeatureOther 自定义功能域标记值
const FeatureOther = "Other"

// 分配类型
const (
	AllocationWholeProject   = "Whole Project"
	AllocationSpecificPeriod = "Specific Period"
)

// Allocation 一条人员分配记录：某人在某时间段内以一定 FTE 投入某角色/功能域
type Allocation struct {
	ID            string `json:"id"`
	RfqID         string `json:"rfqId"`
	Name          string `json:"name"` // 空字符串表示未命名占位
	Level         string `json:"level"`
	Location      string `json:"location"`
	Role          string `json:"role"`
	Feature       string `json:"feature"`
	CustomFeature string `json:"customFeature"`

	// Whole Project 跟随 RFQ 日期；Specific Period 使用显式日期
	AllocationType string `json:"allocationType"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`

	// 默认投入比例 [0,100]；MonthlyFTE 以月份键（"2024-01"）覆盖单月
	FTEPercentage int            `json:"ftePercentage"`
	MonthlyFTE    map[string]int `json:"monthlyFTE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FeatureName 功能域展示名：Other 时取自定义名称
func (a *Allocation) FeatureName() string {
	if a.Feature == FeatureOther {
		return a.CustomFeature
	}
	return a.Feature
}

// Validate 编辑边界校验
// 引擎本身对缺失数据宽容降级，这里拦截结构性错误
func (a *Allocation) Validate() error {
	var errs []string

	// 人员名允许为空（未命名占位行），人均视图会跳过
	if a.StartDate == "" {
		errs = append(errs, "start date is required")
	}
	if a.EndDate == "" {
		errs = append(errs, "end date is required")
	}
	if a.StartDate != "" && a.EndDate != "" {
		start, err1 := time.Parse(DateLayout, a.StartDate)
		end, err2 := time.Parse(DateLayout, a.EndDate)
		if err1 != nil || err2 != nil {
			errs = append(errs, "dates must use YYYY-MM-DD format")
		} else if start.After(end) {
			errs = append(errs, "start date must be before end date")
		}
	}
	if a.FTEPercentage < 0 || a.FTEPercentage > 100 {
		errs = append(errs, "FTE percentage must be between 0 and 100")
	}
	for key, fte := range a.MonthlyFTE {
		if fte < 0 || fte > 100 {
			errs = append(errs, "monthly FTE for "+key+" must be between 0 and 100")
		}
	}
	if a.Feature == FeatureOther && strings.TrimSpace(a.CustomFeature) == "" {
		errs = append(errs, "custom feature name is required when feature is Other")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// InheritDates Whole Project 类型的分配跟随 RFQ 日期
// 调用方在传入引擎前显式派生，引擎不感知 RFQ 上下文
func (a *Allocation) InheritDates(rfq *Rfq) {
	if a.AllocationType != AllocationWholeProject || rfq == nil {
		return
	}
	if rfq.CreatedDate != "" {
		a.StartDate = rfq.CreatedDate
	}
	if rfq.Deadline != "" {
		a.EndDate = rfq.Deadline
	}
}
