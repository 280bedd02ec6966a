package events

import "time"

const PayPeriodProcessedTopic = "payroll.period.processed.v1"

type PayPeriodProcessedEvent struct {
	EventType   string    `json:"event_type"`
	PayPeriodID string    `json:"pay_period_id"`
	PeriodName  string    `json:"period_name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	RecordCount int       `json:"record_count"`
	ProcessedBy string    `json:"processed_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
