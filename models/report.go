package models

type Dashboard struct {
	KPIs                KPIs                  `json:"kpis"`
	SalesTrend          SalesTrend            `json:"salesTrend"`
	TopItems            []TopItem             `json:"topItems"`
	EmployeePerformance []EmployeePerformance `json:"employeePerformance"`
}

type KPIs struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	NewCustomers      int     `json:"newCustomers"`
}

// SalesTrend holds parallel label/value series, one point per day.
type SalesTrend struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type TopItem struct {
	Name          string `json:"name"`
	TotalQuantity int    `json:"totalQuantity"`
}

type EmployeePerformance struct {
	WorkerID   string  `json:"workerId"`
	WorkerName string  `json:"workerName"`
	BillsCount int     `json:"billsCount"`
	TotalSales float64 `json:"totalSales"`
	AOV        float64 `json:"aov"`
}
