package payout

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PayTypePercentage = "PERCENTAGE"
	PayTypeHourly     = "HOURLY"
)

// PercentagePayout is one day's profit-sharing computation: the day's
// financials plus the embedded per-employee payout rows. Immutable after
// creation except for deletion.
type PercentagePayout struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	// PayoutDate carries UTC-midnight day semantics; see shared/calendar.
	PayoutDate time.Time `gorm:"type:date;not null;index"`

	TotalRevenue float64 `gorm:"type:numeric(14,2);not null;default:0"`
	JobCosts     float64 `gorm:"type:numeric(14,2);not null;default:0"`
	Materials    float64 `gorm:"type:numeric(14,2);not null;default:0"`
	LaborCosts   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	GasMoney     float64 `gorm:"type:numeric(14,2);not null;default:0"`
	TotalCosts   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	TotalProfit  float64 `gorm:"type:numeric(14,2);not null;default:0"`

	// TotalPercentagePayout sums percentage-type rows only. The reference
	// figures below are informational: profit_percentage is the company-wide
	// share constant and calculated_payout applies it to the day's profit,
	// independent of the per-employee custom rates actually paid.
	TotalPercentagePayout float64 `gorm:"type:numeric(14,2);not null;default:0"`
	ProfitPercentage      float64 `gorm:"type:numeric(5,2);not null;default:20"`
	CalculatedPayout      float64 `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	EmployeePayouts []EmployeePayout `gorm:"foreignKey:PayoutID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PercentagePayout) TableName() string {
	return "percentage_payouts"
}

type EmployeePayout struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayoutID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	PayType        string   `gorm:"type:varchar(20);not null"`
	PercentageRate *float64 `gorm:"type:numeric(5,2)"`
	HourlyRate     *float64 `gorm:"type:numeric(12,2)"`
	Hours          *float64 `gorm:"type:numeric(6,2)"`
	FlatRate       *float64 `gorm:"type:numeric(12,2)"`
	PayoutAmount   float64  `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedAt time.Time
}

func (EmployeePayout) TableName() string {
	return "employee_payouts"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// EmployeePayoutWithDate carries the parent payout's date alongside an
// embedded row, for range queries that cross the join.
type EmployeePayoutWithDate struct {
	EmployeePayout
	PayoutDate time.Time
}
