package payout

type EmployeePayoutRequest struct {
	EmployeeID     string   `json:"employee_id" binding:"required,uuid"`
	PayType        string   `json:"pay_type" binding:"required,oneof=PERCENTAGE HOURLY"`
	PercentageRate *float64 `json:"percentage_rate"`
	HourlyRate     *float64 `json:"hourly_rate"`
	Hours          *float64 `json:"hours"`
}

type CreatePayoutRequest struct {
	Date            string                  `json:"date" binding:"required"`
	TotalRevenue    *float64                `json:"total_revenue" binding:"required"`
	JobCosts        float64                 `json:"job_costs"`
	Materials       float64                 `json:"materials"`
	LaborCosts      *float64                `json:"labor_costs"`
	EmployeePayouts []EmployeePayoutRequest `json:"employee_payouts" binding:"required,min=1,dive"`
}

type ListPayoutsFilter struct {
	From       string `form:"from"`
	To         string `form:"to"`
	EmployeeID string `form:"employee_id"`
	SortBy     string `form:"sort_by"` // date (default) or created_at
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type EmployeePayoutResponse struct {
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	PayType        string   `json:"pay_type"`
	PercentageRate *float64 `json:"percentage_rate,omitempty"`
	HourlyRate     *float64 `json:"hourly_rate,omitempty"`
	Hours          *float64 `json:"hours,omitempty"`
	FlatRate       *float64 `json:"flat_rate,omitempty"`
	PayoutAmount   float64  `json:"payout_amount"`
}

type PayoutResponse struct {
	ID                    string                   `json:"id"`
	Date                  string                   `json:"date"`
	TotalRevenue          float64                  `json:"total_revenue"`
	JobCosts              float64                  `json:"job_costs"`
	Materials             float64                  `json:"materials"`
	LaborCosts            float64                  `json:"labor_costs"`
	GasMoney              float64                  `json:"gas_money"`
	TotalCosts            float64                  `json:"total_costs"`
	TotalProfit           float64                  `json:"total_profit"`
	TotalPercentagePayout float64                  `json:"total_percentage_payout"`
	ProfitPercentage      float64                  `json:"profit_percentage"`
	CalculatedPayout      float64                  `json:"calculated_payout"`
	EmployeePayouts       []EmployeePayoutResponse `json:"employee_payouts"`
}

const (
	SourceRecorded = "RECORDED"
	SourceDerived  = "DERIVED"
)

// ReconciledPayoutResponse is one row of the merged day/range view: either an
// embedded row of a stored payout or a transient one synthesized from
// approved hourly time entries.
type ReconciledPayoutResponse struct {
	Date           string   `json:"date"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	PayType        string   `json:"pay_type"`
	PayoutAmount   float64  `json:"payout_amount"`
	Source         string   `json:"source"`
	PercentageRate *float64 `json:"percentage_rate,omitempty"`
	HourlyRate     *float64 `json:"hourly_rate,omitempty"`
	Hours          *float64 `json:"hours,omitempty"`
	FlatRate       *float64 `json:"flat_rate,omitempty"`
}

type EmployeePayoutSummary struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeName string                     `json:"employee_name,omitempty"`
	TotalPayout  float64                    `json:"total_payout"`
	PayoutCount  int                        `json:"payout_count"`
	Payouts      []ReconciledPayoutResponse `json:"payouts"`
}

// PayoutSummaryResponse rolls the merged set up per employee and for the
// range as a whole. At this level total_profit is revenue minus employee
// payouts, not the cost-derived day profit.
type PayoutSummaryResponse struct {
	From                string                  `json:"from"`
	To                  string                  `json:"to"`
	TotalRevenue        float64                 `json:"total_revenue"`
	TotalCosts          float64                 `json:"total_costs"`
	TotalEmployeePayout float64                 `json:"total_employee_payout"`
	TotalProfit         float64                 `json:"total_profit"`
	TotalCompanyPayout  float64                 `json:"total_company_payout"`
	Employees           []EmployeePayoutSummary `json:"employees"`
}
