package dto

// StatsResponse carries the service-wide counters.
type StatsResponse struct {
	Users    int `json:"users"`
	Notepads int `json:"notepads"`
	Entries  int `json:"entries"`
	Feedback int `json:"feedback"`
}

// DayCountItem is one per-day aggregate row.
type DayCountItem struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TopNotepadItem is one row of the most active notepads.
type TopNotepadItem struct {
	Code       string `json:"code"`
	EntryCount int    `json:"entry_count"`
}

// AnalyticsTotals carries the headline numbers of the analytics page.
type AnalyticsTotals struct {
	Users       int `json:"users"`
	Notepads    int `json:"notepads"`
	Entries     int `json:"entries"`
	ActiveToday int `json:"active_today"`
}

// AnalyticsResponse is the admin analytics dataset.
type AnalyticsResponse struct {
	EntriesByDay []DayCountItem  `json:"entries_by_day"`
	UsersByDay   []DayCountItem  `json:"users_by_day"`
	TopNotepads  []TopNotepadItem `json:"top_notepads"`
	Totals       AnalyticsTotals `json:"totals"`
}

// CleanupResponse reports one on-demand expiry sweep.
type CleanupResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}
