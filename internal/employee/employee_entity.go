package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PayTypeHourly     = "HOURLY"
	PayTypeSalary     = "SALARY"
	PayTypePercentage = "PERCENTAGE"

	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
	StatusOnLeave    = "ON_LEAVE"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName      string    `gorm:"type:varchar(120);not null"`
	LastName       string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	EmployeeNumber string    `gorm:"type:varchar(30);uniqueIndex:uq_employee_number;not null"`
	Phone          *string   `gorm:"type:varchar(40)"`

	// Pay configuration. An employee carries one or more pay types; the
	// matching rate field is required for each type present.
	PayTypes           []string `gorm:"type:jsonb;serializer:json;not null"`
	HourlyRate         *float64 `gorm:"type:numeric(12,2)"`
	AnnualSalary       *float64 `gorm:"type:numeric(14,2)"`
	PercentageRate     *float64 `gorm:"type:numeric(5,2)"`
	OvertimeMultiplier float64  `gorm:"type:numeric(4,2);not null;default:1.5"`

	Status          string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	HireDate        time.Time  `gorm:"type:date;not null"`
	TerminationDate *time.Time `gorm:"type:date"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) HasPayType(payType string) bool {
	for _, pt := range e.PayTypes {
		if pt == payType {
			return true
		}
	}
	return false
}
