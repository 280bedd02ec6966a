package payperiod

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen      = "OPEN"
	StatusLocked    = "LOCKED"
	StatusProcessed = "PROCESSED"

	PaymentUnpaid    = "UNPAID"
	PaymentScheduled = "SCHEDULED"
	PaymentPaid      = "PAID"
)

// PayPeriod is an administrative date range. The status moves one way:
// OPEN to LOCKED to PROCESSED. Locking flips the flag that shields covered
// time entries from edits; processing aggregates them into payroll records.
type PayPeriod struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(120);not null"`

	// Boundaries carry UTC-midnight day semantics; see shared/calendar.
	StartDate time.Time `gorm:"type:date;not null;index"`
	EndDate   time.Time `gorm:"type:date;not null;index"`

	Status      string     `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	ProcessedAt *time.Time `gorm:"type:timestamptz"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayPeriod) TableName() string {
	return "pay_periods"
}

// PayrollRecord is the derived aggregate for one employee in one period.
// Reprocessing overwrites the aggregate columns; the payment columns are
// operator-owned and survive a rerun.
type PayrollRecord struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PayPeriodID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_record_period_employee"`
	EmployeeID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_record_period_employee"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	TotalRegularHours  float64 `gorm:"type:numeric(8,2);not null;default:0"`
	TotalOvertimeHours float64 `gorm:"type:numeric(8,2);not null;default:0"`
	TotalPTOHours      float64 `gorm:"type:numeric(8,2);not null;default:0"`
	TotalGrossPay      float64 `gorm:"type:numeric(14,2);not null;default:0"`
	TotalDailyPayouts  float64 `gorm:"type:numeric(14,2);not null;default:0"`

	// Multiplier snapshot taken at processing time.
	OvertimeMultiplierUsed float64 `gorm:"type:numeric(4,2);not null;default:1.5"`

	PaymentStatus string     `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaidAt        *time.Time `gorm:"type:timestamptz"`
	PaymentMethod *string    `gorm:"type:varchar(40)"`
	PayslipPath   *string    `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (r EmployeeRef) FullName() string {
	return r.FirstName + " " + r.LastName
}
