package model

// AllocationPatch 分配的部分字段更新；nil 字段不修改
type AllocationPatch struct {
	Name           *string `json:"name"`
	Level          *string `json:"level"`
	Location       *string `json:"location"`
	Role           *string `json:"role"`
	Feature        *string `json:"feature"`
	CustomFeature  *string `json:"customFeature"`
	AllocationType *string `json:"allocationType"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	FTEPercentage  *int    `json:"ftePercentage"`
}

// Apply 将非 nil 字段写入分配
func (p AllocationPatch) Apply(a *Allocation) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Level != nil {
		a.Level = *p.Level
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	if p.Feature != nil {
		a.Feature = *p.Feature
	}
	if p.CustomFeature != nil {
		a.CustomFeature = *p.CustomFeature
	}
	if p.AllocationType != nil {
		a.AllocationType = *p.AllocationType
	}
	if p.StartDate != nil {
		a.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		a.EndDate = *p.EndDate
	}
	if p.FTEPercentage != nil {
		a.FTEPercentage = *p.FTEPercentage
	}
}
