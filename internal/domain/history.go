package domain

import (
	"strings"
	"time"
)

// HistoryWindow is how far back regional outbreak history reaches.
const HistoryWindow = 3 * 365 * 24 * time.Hour

// OutbreakHistory summarises past outbreaks in a region by calendar month.
type OutbreakHistory struct {
	Total          int         `json:"total_outbreaks"`
	MonthlyPattern map[int]int `json:"monthly_pattern"`
}

// SummarizeHistory counts outbreaks per reporting month. A non-empty
// disease restricts the count to that disease, case-insensitively.
func SummarizeHistory(outbreaks []Outbreak, disease string) OutbreakHistory {
	h := OutbreakHistory{MonthlyPattern: make(map[int]int)}
	for _, o := range outbreaks {
		if disease != "" && !strings.EqualFold(o.Disease, disease) {
			continue
		}
		h.Total++
		h.MonthlyPattern[int(o.ReportedAt.Month())]++
	}
	return h
}
