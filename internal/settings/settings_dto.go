package settings

type UpdateSettingsRequest struct {
	CompanyName            string   `json:"company_name" binding:"required"`
	Address                *string  `json:"address"`
	Phone                  *string  `json:"phone"`
	Email                  *string  `json:"email" binding:"omitempty,email"`
	TaxRate                *float64 `json:"tax_rate" binding:"omitempty,gte=0,lte=100"`
	ProfitReferencePercent *float64 `json:"profit_reference_percent" binding:"omitempty,gt=0,lte=100"`
}

type SettingsResponse struct {
	CompanyName            string  `json:"company_name"`
	Address                *string `json:"address,omitempty"`
	Phone                  *string `json:"phone,omitempty"`
	Email                  *string `json:"email,omitempty"`
	TaxRate                float64 `json:"tax_rate"`
	ProfitReferencePercent float64 `json:"profit_reference_percent"`
}
