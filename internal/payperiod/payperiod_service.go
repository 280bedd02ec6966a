package payperiod

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"poolops/internal/employee"
	"poolops/internal/events"
	"poolops/internal/messaging/kafka"
	payperioderrors "poolops/internal/payperiod/errors"
	"poolops/internal/payout"
	"poolops/internal/shared/calendar"
	"poolops/internal/shared/contextutil"
	"poolops/internal/timeentry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// daysPerYear is the divisor for the salaried daily rate.
const daysPerYear = 365.0

//go:generate mockgen -source=payperiod_service.go -destination=mock/payperiod_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayPeriodRequest) (PayPeriodResponse, error)
	GetAll(ctx context.Context, filter ListPayPeriodsFilter) ([]PayPeriodResponse, error)
	GetByID(ctx context.Context, id string) (PayPeriodResponse, error)
	Lock(ctx context.Context, id string) (PayPeriodResponse, error)
	Process(ctx context.Context, id string) (PayPeriodResponse, error)
	Records(ctx context.Context, periodID string) ([]PayrollRecordResponse, error)
	MarkPaid(ctx context.Context, recordID string, req MarkPaidRequest) (PayrollRecordResponse, error)
	AttachPayslip(ctx context.Context, recordID, path string) error
	ExportRows(ctx context.Context, periodID string) (string, [][]string, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	entries   timeentry.Repository
	payouts   payout.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	entries timeentry.Repository,
	payouts payout.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payperiod.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payperiod.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		entries:   entries,
		payouts:   payouts,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePayPeriodRequest) (PayPeriodResponse, error) {
	if req.Name == "" {
		return PayPeriodResponse{}, payperioderrors.ErrNameRequired
	}

	start, err := calendar.ParseUTCDate(req.StartDate)
	if err != nil {
		return PayPeriodResponse{}, err
	}
	end, err := calendar.ParseUTCDate(req.EndDate)
	if err != nil {
		return PayPeriodResponse{}, err
	}
	if end.Before(start) {
		return PayPeriodResponse{}, payperioderrors.ErrInvalidDateRange
	}

	row := &PayPeriod{
		ID:        uuid.New(),
		Name:      req.Name,
		StartDate: start.Time(),
		EndDate:   end.Time(),
		Status:    StatusOpen,
		CreatedBy: actorUUID(ctx),
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create pay period persist failed", zap.Error(err))
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create pay period success",
		zap.String("period_id", row.ID.String()),
		zap.String("start", start.Key()),
		zap.String("end", end.Key()),
	)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, filter ListPayPeriodsFilter) ([]PayPeriodResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayPeriodResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayPeriodResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayPeriodResponse{}, payperioderrors.ErrInvalidPeriodID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

// Lock flips OPEN to LOCKED. No computation happens; the flag is the gate
// that freezes covered time entries.
func (s *service) Lock(ctx context.Context, id string) (PayPeriodResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayPeriodResponse{}, payperioderrors.ErrInvalidPeriodID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	if row.Status != StatusOpen {
		return PayPeriodResponse{}, payperioderrors.ErrNotOpen
	}

	row.Status = StatusLocked
	if err := s.repo.Update(ctx, row); err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("lock pay period success", zap.String("period_id", id))
	return mapToResponse(*row), nil
}

// Process aggregates approved entries and percentage payouts into one payroll
// record per employee, then flips the period to PROCESSED. The whole run sits
// behind one transaction so a failed rerun leaves prior records intact.
func (s *service) Process(ctx context.Context, id string) (PayPeriodResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayPeriodResponse{}, payperioderrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	if period.Status != StatusLocked {
		return PayPeriodResponse{}, payperioderrors.ErrNotLocked
	}

	startKey := calendar.Key(period.StartDate)
	endKey := calendar.Key(period.EndDate)

	entries, err := s.entries.FindApprovedInRange(ctx, startKey, endKey)
	if err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	payoutRows, err := s.payouts.FindEmployeePayoutsInRange(ctx, startKey, endKey)
	if err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	// Only percentage-type amounts roll into gross pay here; hourly rows in
	// a payout document duplicate wages the hour aggregation already covers.
	percentageByEmployee := map[string]float64{}
	for _, row := range payoutRows {
		if row.PayType != payout.PayTypePercentage {
			continue
		}
		percentageByEmployee[row.EmployeeID.String()] += row.PayoutAmount
	}

	entriesByEmployee := map[string][]timeentry.TimeEntry{}
	order := []string{}
	for _, entry := range entries {
		employeeID := entry.EmployeeID.String()
		if _, ok := entriesByEmployee[employeeID]; !ok {
			order = append(order, employeeID)
		}
		entriesByEmployee[employeeID] = append(entriesByEmployee[employeeID], entry)
	}

	daysInPeriod := calendar.DaysInclusive(
		calendar.UTCDateOf(period.StartDate),
		calendar.UTCDateOf(period.EndDate),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayPeriodResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	recordCount := 0
	for _, employeeID := range order {
		emp, err := s.employees.FindByID(ctx, employeeID)
		if err != nil {
			return PayPeriodResponse{}, mapRepositoryError(err)
		}

		rec := buildRecord(period.ID, emp, entriesByEmployee[employeeID], percentageByEmployee[employeeID], daysInPeriod)
		if err := qtx.UpsertRecord(ctx, rec); err != nil {
			s.logger.Error("upsert payroll record failed",
				zap.String("period_id", id),
				zap.String("employee_id", employeeID),
				zap.Error(err),
			)
			return PayPeriodResponse{}, mapRepositoryError(err)
		}
		recordCount++
	}

	now := time.Now()
	period.Status = StatusProcessed
	period.ProcessedAt = &now
	if err := qtx.Update(ctx, period); err != nil {
		return PayPeriodResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := s.publishProcessed(ctx, tx, period, recordCount); err != nil {
			return PayPeriodResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayPeriodResponse{}, err
	}

	s.logger.Info("process pay period success",
		zap.String("period_id", id),
		zap.Int("records", recordCount),
	)

	return mapToResponse(*period), nil
}

func (s *service) Records(ctx context.Context, periodID string) ([]PayrollRecordResponse, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return nil, payperioderrors.ErrInvalidPeriodID
	}

	if _, err := s.repo.FindByID(ctx, periodID); err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.repo.FindRecordsByPeriod(ctx, periodID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]PayrollRecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapRecordToResponse(r)
	}
	return res, nil
}

func (s *service) MarkPaid(ctx context.Context, recordID string, req MarkPaidRequest) (PayrollRecordResponse, error) {
	if _, err := uuid.Parse(recordID); err != nil {
		return PayrollRecordResponse{}, payperioderrors.ErrInvalidRecordID
	}

	switch req.PaymentStatus {
	case PaymentUnpaid, PaymentScheduled, PaymentPaid:
	default:
		return PayrollRecordResponse{}, payperioderrors.ErrInvalidPaymentStatus
	}

	rec, err := s.repo.FindRecordByID(ctx, recordID)
	if err != nil {
		return PayrollRecordResponse{}, mapRecordError(err)
	}

	rec.PaymentStatus = req.PaymentStatus
	rec.PaymentMethod = req.PaymentMethod

	switch req.PaymentStatus {
	case PaymentPaid:
		paidAt := time.Now()
		if req.PaidAt != nil && *req.PaidAt != "" {
			parsed, err := time.Parse(time.RFC3339, *req.PaidAt)
			if err == nil {
				paidAt = parsed
			}
		}
		rec.PaidAt = &paidAt
	default:
		rec.PaidAt = nil
	}

	if err := s.repo.UpdateRecord(ctx, rec); err != nil {
		return PayrollRecordResponse{}, mapRecordError(err)
	}

	s.logger.Info("mark payroll record paid",
		zap.String("record_id", recordID),
		zap.String("payment_status", req.PaymentStatus),
	)

	return mapRecordToResponse(*rec), nil
}

// AttachPayslip stores the rendered payslip location on a record. Called by
// the payslip consumer after PDF generation.
func (s *service) AttachPayslip(ctx context.Context, recordID, path string) error {
	if _, err := uuid.Parse(recordID); err != nil {
		return payperioderrors.ErrInvalidRecordID
	}

	rec, err := s.repo.FindRecordByID(ctx, recordID)
	if err != nil {
		return mapRecordError(err)
	}

	rec.PayslipPath = &path
	if err := s.repo.UpdateRecord(ctx, rec); err != nil {
		return mapRecordError(err)
	}

	return nil
}

// ExportRows flattens a period's records into CSV rows, header included.
func (s *service) ExportRows(ctx context.Context, periodID string) (string, [][]string, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return "", nil, payperioderrors.ErrInvalidPeriodID
	}

	period, err := s.repo.FindByID(ctx, periodID)
	if err != nil {
		return "", nil, mapRepositoryError(err)
	}

	records, err := s.repo.FindRecordsByPeriod(ctx, periodID)
	if err != nil {
		return "", nil, mapRepositoryError(err)
	}

	rows := [][]string{{
		"employee_name",
		"employee_email",
		"pay_period",
		"regular_hours",
		"overtime_hours",
		"pto_hours",
		"gross_pay",
		"payment_status",
		"payment_date",
		"payment_method",
	}}

	for _, rec := range records {
		name, email := "", ""
		if rec.Employee != nil {
			name = rec.Employee.FullName()
			email = rec.Employee.Email
		}

		paidAt := ""
		if rec.PaidAt != nil {
			paidAt = rec.PaidAt.Format("2006-01-02")
		}
		method := ""
		if rec.PaymentMethod != nil {
			method = *rec.PaymentMethod
		}

		rows = append(rows, []string{
			name,
			email,
			period.Name,
			fmt.Sprintf("%.2f", rec.TotalRegularHours),
			fmt.Sprintf("%.2f", rec.TotalOvertimeHours),
			fmt.Sprintf("%.2f", rec.TotalPTOHours),
			fmt.Sprintf("%.2f", rec.TotalGrossPay),
			rec.PaymentStatus,
			paidAt,
			method,
		})
	}

	return period.Name, rows, nil
}

func (s *service) publishProcessed(ctx context.Context, tx *sql.Tx, period *PayPeriod, recordCount int) error {
	event := events.PayPeriodProcessedEvent{
		EventType:   "PAY_PERIOD_PROCESSED",
		PayPeriodID: period.ID.String(),
		PeriodName:  period.Name,
		StartDate:   calendar.Key(period.StartDate),
		EndDate:     calendar.Key(period.EndDate),
		RecordCount: recordCount,
		ProcessedBy: contextutil.GetActorID(ctx),
		OccurredAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "pay_period",
		AggregateID:   period.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayPeriodProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// buildRecord applies the gross pay formula for one employee: wages from the
// hour aggregates per pay type, plus the percentage payouts in range.
func buildRecord(periodID uuid.UUID, emp *employee.Employee, entries []timeentry.TimeEntry, dailyPayouts float64, daysInPeriod int) *PayrollRecord {
	var regular, overtime, pto float64
	for _, entry := range entries {
		switch entry.EntryType {
		case timeentry.TypePTO:
			pto += entry.HoursWorked
		default:
			regular += entry.HoursWorked
			overtime += entry.OvertimeHours
		}
	}

	gross := 0.0
	if emp.HasPayType(employee.PayTypeHourly) && emp.HourlyRate != nil {
		rate := *emp.HourlyRate
		gross += (regular-overtime)*rate +
			overtime*rate*emp.OvertimeMultiplier +
			pto*rate
	}
	if emp.HasPayType(employee.PayTypeSalary) && emp.AnnualSalary != nil {
		gross += *emp.AnnualSalary / daysPerYear * float64(daysInPeriod)
	}
	gross += dailyPayouts

	return &PayrollRecord{
		ID:                     uuid.New(),
		PayPeriodID:            periodID,
		EmployeeID:             emp.ID,
		TotalRegularHours:      regular,
		TotalOvertimeHours:     overtime,
		TotalPTOHours:          pto,
		TotalGrossPay:          gross,
		TotalDailyPayouts:      dailyPayouts,
		OvertimeMultiplierUsed: emp.OvertimeMultiplier,
	}
}

func mapToResponse(p PayPeriod) PayPeriodResponse {
	res := PayPeriodResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		StartDate: calendar.Key(p.StartDate),
		EndDate:   calendar.Key(p.EndDate),
		Status:    p.Status,
	}
	if p.ProcessedAt != nil {
		v := p.ProcessedAt.Format(time.RFC3339)
		res.ProcessedAt = &v
	}
	return res
}

func mapRecordToResponse(r PayrollRecord) PayrollRecordResponse {
	res := PayrollRecordResponse{
		ID:                     r.ID.String(),
		PayPeriodID:            r.PayPeriodID.String(),
		EmployeeID:             r.EmployeeID.String(),
		TotalRegularHours:      r.TotalRegularHours,
		TotalOvertimeHours:     r.TotalOvertimeHours,
		TotalPTOHours:          r.TotalPTOHours,
		TotalGrossPay:          r.TotalGrossPay,
		TotalDailyPayouts:      r.TotalDailyPayouts,
		OvertimeMultiplierUsed: r.OvertimeMultiplierUsed,
		PaymentStatus:          r.PaymentStatus,
		PaymentMethod:          r.PaymentMethod,
	}
	if r.Employee != nil {
		res.EmployeeName = r.Employee.FullName()
		res.EmployeeEmail = r.Employee.Email
	}
	if r.PaidAt != nil {
		v := r.PaidAt.Format(time.RFC3339)
		res.PaidAt = &v
	}
	return res
}

func actorUUID(ctx context.Context) uuid.UUID {
	actor, err := uuid.Parse(contextutil.GetActorID(ctx))
	if err != nil {
		return uuid.Nil
	}
	return actor
}
