package engine

import (
	"fmt"
	"time"

	"rfqplan/internal/model"
)

// MonthPeriod 一个日历月份
// Key 形如 "2024-01"，按字典序排序即时间序，可直接用作 map 键
type MonthPeriod struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Key   string     `json:"key"`
}

// MonthKey 生成月份键
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// MonthsBetween 枚举两个日期跨越的全部日历月份（含两端）
//
// 任一日期缺失或不可解析时返回空序列：不完整的分配贡献 0 小时，而非报错。
// 起止倒置同样返回空序列，不会反向迭代。
func MonthsBetween(startDate, endDate string) []MonthPeriod {
	var months []MonthPeriod

	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return months
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return months
	}

	// 归一化到各自月份的 1 号再逐月前进
	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !current.After(endMonth) {
		months = append(months, MonthPeriod{
			Year:  current.Year(),
			Month: current.Month(),
			Key:   MonthKey(current.Year(), current.Month()),
		})
		current = current.AddDate(0, 1, 0)
	}

	return months
}

// YearsBetween 枚举两个日期跨越的全部年份（含两端）
func YearsBetween(startDate, endDate string) []int {
	var years []int

	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return years
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return years
	}

	for year := start.Year(); year <= end.Year(); year++ {
		years = append(years, year)
	}

	return years
}
