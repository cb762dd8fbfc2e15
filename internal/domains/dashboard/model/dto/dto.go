package dto

// StatsResponse aggregates the dashboard counters. Revenue is in cents.
type StatsResponse struct {
	TodayBookings    int   `json:"todayBookings"`
	UpcomingBookings int   `json:"upcomingBookings"`
	PendingForms     int   `json:"pendingForms"`
	LowStockItems    int   `json:"lowStockItems"`
	UnreadAlerts     int   `json:"unreadAlerts"`
	Revenue          int64 `json:"revenue"`
	TotalContacts    int   `json:"totalContacts"`
	ActiveContacts   int   `json:"activeContacts"`
	TotalBookings    int   `json:"totalBookings"`
}
