package timeentry

type CreateTimeEntryRequest struct {
	EmployeeID    string   `json:"employee_id" binding:"required,uuid"`
	Date          string   `json:"date" binding:"required"`
	StartTime     *string  `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	BreakMinutes  int      `json:"break_minutes"`
	HoursWorked   float64  `json:"hours_worked"`
	Type          string   `json:"type"`
	FlatRate      *float64 `json:"flat_rate"`
	GasMoney      *float64 `json:"gas_money"`
	JobIDs        []string `json:"job_ids"`
}

type UpdateTimeEntryRequest struct {
	Date         string   `json:"date" binding:"required"`
	StartTime    *string  `json:"start_time"`
	EndTime      *string  `json:"end_time"`
	BreakMinutes int      `json:"break_minutes"`
	HoursWorked  float64  `json:"hours_worked"`
	Type         string   `json:"type"`
	FlatRate     *float64 `json:"flat_rate"`
	GasMoney     *float64 `json:"gas_money"`
	JobIDs       []string `json:"job_ids"`
}

type ListTimeEntriesFilter struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Approved   *bool  `form:"approved"`
}

type TimeEntryResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  string   `json:"employee_name,omitempty"`
	Date          string   `json:"date"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
	BreakMinutes  int      `json:"break_minutes"`
	HoursWorked   float64  `json:"hours_worked"`
	OvertimeHours float64  `json:"overtime_hours"`
	Type          string   `json:"type"`
	FlatRate      *float64 `json:"flat_rate,omitempty"`
	GasMoney      *float64 `json:"gas_money,omitempty"`
	JobIDs        []string `json:"job_ids,omitempty"`
	Approved      bool     `json:"approved"`
	ApprovedBy    *string  `json:"approved_by,omitempty"`
}
