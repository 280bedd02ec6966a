package employee

type CreateEmployeeRequest struct {
	FirstName          string   `json:"first_name" binding:"required"`
	LastName           string   `json:"last_name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	EmployeeNumber     string   `json:"employee_number"`
	Phone              *string  `json:"phone"`
	PayTypes           []string `json:"pay_types" binding:"required"`
	HourlyRate         *float64 `json:"hourly_rate"`
	AnnualSalary       *float64 `json:"annual_salary"`
	PercentageRate     *float64 `json:"percentage_rate"`
	OvertimeMultiplier *float64 `json:"overtime_multiplier"`
	HireDate           string   `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FirstName          string   `json:"first_name" binding:"required"`
	LastName           string   `json:"last_name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	EmployeeNumber     string   `json:"employee_number" binding:"required"`
	Phone              *string  `json:"phone"`
	PayTypes           []string `json:"pay_types" binding:"required"`
	HourlyRate         *float64 `json:"hourly_rate"`
	AnnualSalary       *float64 `json:"annual_salary"`
	PercentageRate     *float64 `json:"percentage_rate"`
	OvertimeMultiplier *float64 `json:"overtime_multiplier"`
	HireDate           string   `json:"hire_date" binding:"required"`
}

type ArchiveEmployeeRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED ON_LEAVE"`
}

type EmployeeResponse struct {
	ID                 string   `json:"id"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Email              string   `json:"email"`
	EmployeeNumber     string   `json:"employee_number"`
	Phone              *string  `json:"phone,omitempty"`
	PayTypes           []string `json:"pay_types"`
	HourlyRate         *float64 `json:"hourly_rate,omitempty"`
	AnnualSalary       *float64 `json:"annual_salary,omitempty"`
	PercentageRate     *float64 `json:"percentage_rate,omitempty"`
	OvertimeMultiplier float64  `json:"overtime_multiplier"`
	Status             string   `json:"status"`
	HireDate           string   `json:"hire_date"`
	TerminationDate    *string  `json:"termination_date,omitempty"`
}
