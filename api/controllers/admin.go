package controllers

import (
	"net/http"

	"github.com/rmarchetti/posplus-backend/api/responses"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
)

type dailySalesPoint struct {
	Day          string `json:"day"`
	Sales        int    `json:"sales"`
	Transactions int    `json:"transactions"`
}

type categoryShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type monthlyRevenuePoint struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
}

type analyticsPayload struct {
	DailySales   []dailySalesPoint     `json:"dailySales"`
	Categories   []categoryShare       `json:"categories"`
	MonthlyTrend []monthlyRevenuePoint `json:"monthlyTrend"`
}

// Analytics serves the dashboard's demo dataset. The numbers are static;
// real reporting is out of scope for the till.
func Analytics(logg *logger.Logger) http.HandlerFunc {
	payload := analyticsPayload{
		DailySales: []dailySalesPoint{
			{Day: "Mon", Sales: 4500, Transactions: 45},
			{Day: "Tue", Sales: 5200, Transactions: 52},
			{Day: "Wed", Sales: 4800, Transactions: 48},
			{Day: "Thu", Sales: 6100, Transactions: 61},
			{Day: "Fri", Sales: 7500, Transactions: 75},
			{Day: "Sat", Sales: 8200, Transactions: 82},
			{Day: "Sun", Sales: 6800, Transactions: 68},
		},
		Categories: []categoryShare{
			{Name: "Drinks", Value: 35},
			{Name: "Snacks", Value: 25},
			{Name: "Canned Foods", Value: 20},
			{Name: "Fresh Foods", Value: 15},
			{Name: "Dairy", Value: 5},
		},
		MonthlyTrend: []monthlyRevenuePoint{
			{Month: "Jan", Revenue: 125000},
			{Month: "Feb", Revenue: 138000},
			{Month: "Mar", Revenue: 145000},
			{Month: "Apr", Revenue: 152000},
			{Month: "May", Revenue: 148000},
			{Month: "Jun", Revenue: 165000},
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, payload)
	}
}
