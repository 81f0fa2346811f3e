package domain

// VisitStats is the process-wide visit counter persisted to a single JSON
// file. LastDate holds the calendar date (as sent by the client) of the most
// recent visit; TodayVisits resets when a visit arrives with a new date.
type VisitStats struct {
	TotalVisits int    `json:"totalVisits"`
	TodayVisits int    `json:"todayVisits"`
	LastDate    string `json:"lastDate"`
}
