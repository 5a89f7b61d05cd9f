package domain

// DashboardStats aggregates headline counts for the admin dashboard.
type DashboardStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalAgents     int64 `json:"totalAgents"`
	TotalListings   int64 `json:"totalListings"`
	TotalProperties int64 `json:"totalProperties"`
	TotalRent       int64 `json:"totalRent"`
	TotalSale       int64 `json:"totalSale"`
}
