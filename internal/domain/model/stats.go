package model

// DashboardStats is the read-only aggregate shown on the back-office
// landing page. All figures are derived; nothing here is authoritative.
type DashboardStats struct {
	TotalCustomers       int     `json:"total_customers"`
	NewCustomersMonth    int     `json:"new_customers_month"`
	ActiveSubscriptions  int     `json:"active_subscriptions"`
	PendingSubscriptions int     `json:"pending_subscriptions"`
	ExpiredSubscriptions int     `json:"expired_subscriptions"`
	ActiveLicenses       int     `json:"active_licenses"`
	TotalRevenue         float64 `json:"total_revenue"`
	MonthlyRevenue       float64 `json:"monthly_revenue"`
	PendingRevenue       float64 `json:"pending_revenue"`
	SalesThisMonth       int     `json:"sales_this_month"`
}
