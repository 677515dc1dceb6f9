package models

import "sort"

// WeightLog is a single day's weight measurement
type WeightLog struct {
	Date   string  `json:"date"` // YYYY-MM-DD format
	Weight float64 `json:"weight"`
}

// SortWeightLogs orders logs ascending by calendar day.
func SortWeightLogs(logs []WeightLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
}

