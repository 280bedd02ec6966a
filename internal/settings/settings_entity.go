package settings

import (
	"time"

	"github.com/google/uuid"
)

// CompanySettings is a single-row table read by payout calculation, payslip
// rendering and exports. Callers must tolerate its absence and fall back to
// the defaults below.
type CompanySettings struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyName string    `gorm:"type:varchar(200);not null"`
	Address     *string   `gorm:"type:varchar(255)"`
	Phone       *string   `gorm:"type:varchar(40)"`
	Email       *string   `gorm:"type:varchar(255)"`

	TaxRate float64 `gorm:"type:numeric(5,2);not null;default:0"`

	// Company-wide percentage of daily profit used for the informational
	// calculated payout figure.
	ProfitReferencePercent float64 `gorm:"type:numeric(5,2);not null;default:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanySettings) TableName() string {
	return "company_settings"
}

const DefaultProfitReferencePercent = 20.0
