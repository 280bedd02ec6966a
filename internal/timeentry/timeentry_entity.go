package timeentry

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeRegular  = "REGULAR"
	TypeOvertime = "OVERTIME"
	TypePTO      = "PTO"
	TypeSick     = "SICK"
	TypeHoliday  = "HOLIDAY"
)

// dailyOvertimeThreshold is the simplified daily rule: regular hours beyond
// this become overtime. There is no weekly 40-hour aggregation.
const dailyOvertimeThreshold = 8.0

type TimeEntry struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index:idx_entries_employee_date"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	// EntryDate carries local-midnight day semantics; see shared/calendar.
	EntryDate time.Time  `gorm:"type:date;not null;index:idx_entries_employee_date"`
	StartTime *time.Time `gorm:"type:timestamptz"`
	EndTime   *time.Time `gorm:"type:timestamptz"`

	BreakMinutes  int     `gorm:"type:int;not null;default:0"`
	HoursWorked   float64 `gorm:"type:numeric(6,2);not null;default:0"`
	OvertimeHours float64 `gorm:"type:numeric(6,2);not null;default:0"`
	EntryType     string  `gorm:"column:entry_type;type:varchar(20);not null;default:'REGULAR'"`

	// Pay overrides recorded on the entry itself.
	FlatRate *float64 `gorm:"type:numeric(12,2)"`
	GasMoney *float64 `gorm:"type:numeric(12,2)"`

	JobIDs []string `gorm:"type:jsonb;serializer:json"`

	Approved   bool       `gorm:"not null;default:false;index"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

type EmployeeRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// RegularHours is the non-overtime share of the worked hours.
func (e TimeEntry) RegularHours() float64 {
	return e.HoursWorked - e.OvertimeHours
}
