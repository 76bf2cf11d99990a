package services

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/restaurant-pos/models"
)

// PerformanceByWorker indexes dashboard performance rows by worker id.
func PerformanceByWorker(rows []models.EmployeePerformance) map[string]models.EmployeePerformance {
	index := make(map[string]models.EmployeePerformance, len(rows))
	for _, r := range rows {
		index[r.WorkerID] = r
	}
	return index
}

// RosterEntry is an employee next to their billing stats. Staff without
// bills get zeroes.
type RosterEntry struct {
	models.Employee
	BillsCount int     `json:"billsCount"`
	TotalSales float64 `json:"totalSales"`
	AOV        float64 `json:"aov"`
}

func Roster(employees []models.Employee, performance []models.EmployeePerformance) []RosterEntry {
	stats := PerformanceByWorker(performance)
	out := make([]RosterEntry, 0, len(employees))
	for _, e := range employees {
		p := stats[e.ID]
		out = append(out, RosterEntry{
			Employee:   e,
			BillsCount: p.BillsCount,
			TotalSales: p.TotalSales,
			AOV:        p.AOV,
		})
	}
	return out
}

// RenderSalesTrend draws the dashboard's daily sales as a PNG line chart.
func RenderSalesTrend(trend models.SalesTrend, currency string, w io.Writer) error {
	n := len(trend.Data)
	if n < 2 || len(trend.Labels) != n {
		return ErrNotEnoughData
	}

	xs := make([]float64, n)
	ticks := make([]chart.Tick, n)
	top := 0.0
	for i, v := range trend.Data {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: trend.Labels[i]}
		if v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}

	graph := chart.Chart{
		Title:  "Sales Trend",
		Width:  900,
		Height: 400,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%s %.0f", currency, f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Sales",
				XValues: xs,
				YValues: trend.Data,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
