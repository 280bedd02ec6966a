package payperiod

type CreatePayPeriodRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ListPayPeriodsFilter struct {
	Status string `form:"status"`
}

type PayPeriodResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

type MarkPaidRequest struct {
	PaymentStatus string  `json:"payment_status" binding:"required"`
	PaymentMethod *string `json:"payment_method"`
	PaidAt        *string `json:"paid_at"`
}

type PayrollRecordResponse struct {
	ID                     string  `json:"id"`
	PayPeriodID            string  `json:"pay_period_id"`
	EmployeeID             string  `json:"employee_id"`
	EmployeeName           string  `json:"employee_name,omitempty"`
	EmployeeEmail          string  `json:"employee_email,omitempty"`
	TotalRegularHours      float64 `json:"total_regular_hours"`
	TotalOvertimeHours     float64 `json:"total_overtime_hours"`
	TotalPTOHours          float64 `json:"total_pto_hours"`
	TotalGrossPay          float64 `json:"total_gross_pay"`
	TotalDailyPayouts      float64 `json:"total_daily_payouts"`
	OvertimeMultiplierUsed float64 `json:"overtime_multiplier_used"`
	PaymentStatus          string  `json:"payment_status"`
	PaidAt                 *string `json:"paid_at,omitempty"`
	PaymentMethod          *string `json:"payment_method,omitempty"`
}
